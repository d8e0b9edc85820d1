package auth

import (
	"context"
	"errors"

	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/pkg/constants"
	"launchpad-backend/internal/pkg/validation"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SessionAccount is the object stored in the session and returned by /me.
type SessionAccount struct {
	Address string `json:"address"`
	Role    string `json:"role"`
}

// AccountFinder abstracts account lookup by address+secret (GORM in production, fakes in tests).
type AccountFinder interface {
	FindByCredentials(address, secret string) (*domain.Account, error)
}

type Service struct {
	DB *gorm.DB
	// Reserved reports addresses owned by the platform, which cannot be registered.
	Reserved func(address string) bool
}

// FindByCredentials implements AccountFinder.
func (s *Service) FindByCredentials(address, secret string) (*domain.Account, error) {
	return Login(s.DB, address, secret)
}

// Login finds the account and verifies its secret.
func Login(db *gorm.DB, address, secret string) (*domain.Account, error) {
	if address == "" || secret == "" {
		return nil, ErrCredentialsRequired
	}
	var a domain.Account
	if err := db.Where("address = ?", address).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownAccount
		}
		return nil, err
	}
	if a.SecretHash == "" {
		return nil, ErrUnknownAccount
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.SecretHash), []byte(secret)); err != nil {
		return nil, ErrIncorrectSecret
	}
	return &a, nil
}

// Register creates an account with a bcrypt-hashed secret.
func (s *Service) Register(ctx context.Context, address, secret, role string) (*domain.Account, error) {
	address = validation.NormalizeAddress(address)
	if !validation.IsValidAddress(address) {
		return nil, ErrInvalidAddress
	}
	if s.Reserved != nil && s.Reserved(address) {
		return nil, ErrReservedAddress
	}
	if !validation.IsValidSecret(secret) {
		return nil, ErrWeakSecret
	}
	if role == "" {
		role = constants.Member
	}
	if !constants.IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	a := domain.Account{Address: address, Role: role, SecretHash: string(hash)}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.Account{}).Where("address = ?", address).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAccountExists
		}
		return tx.Create(&a).Error
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("address", address).Str("role", role).Msg("account registered")
	return &a, nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
func (s *Service) EnsureAdmin(ctx context.Context, address, secret string) error {
	if address == "" || secret == "" {
		return nil
	}
	_, err := s.Register(ctx, address, secret, constants.Admin)
	if errors.Is(err, ErrAccountExists) {
		return nil
	}
	return err
}

// VerifyAccount validates the session user and returns the shape for /me.
func VerifyAccount(sessionUser interface{}) (*SessionAccount, error) {
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	addr, _ := m["address"].(string)
	if addr == "" {
		return nil, ErrNotAuthenticated
	}
	role, _ := m["role"].(string)
	return &SessionAccount{Address: addr, Role: role}, nil
}
