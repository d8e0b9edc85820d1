// Package ledger keeps fungible token balances and allowances. It backs the currency tokens
// investors pay with as well as the tokens minted for approved proposals.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"launchpad-backend/internal/application/txn"
	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var tokenNamespace = uuid.MustParse("6f1c8a52-3b8e-4d2a-9a7e-1f0f3c1de0a1")

// Prefixes of accounts the platform derives itself.
const (
	PoolPrefix  = "pool:"
	TokenPrefix = "token:"
)

type Service struct {
	DB   *gorm.DB
	Exec *txn.Executor
	// Custody lists the platform's own accounts. Holders cannot move funds out of them.
	Custody []string
}

// IsCustody reports whether account belongs to the platform rather than a participant.
func (s *Service) IsCustody(account string) bool {
	if strings.HasPrefix(account, PoolPrefix) || strings.HasPrefix(account, TokenPrefix) {
		return true
	}
	for _, c := range s.Custody {
		if c != "" && c == account {
			return true
		}
	}
	return false
}

// AddressOf derives the address a proposal's token is deployed at. It is deterministic so the
// address can be written into vesting schedules before the token exists.
func (s *Service) AddressOf(proposalID uint64, symbol string) string {
	return TokenPrefix + uuid.NewSHA1(tokenNamespace, []byte(fmt.Sprintf("%d/%s", proposalID, strings.ToUpper(symbol)))).String()
}

// Deploy registers a new token with zero supply.
func (s *Service) Deploy(tx *gorm.DB, address, name, symbol string, proposalID uint64) error {
	var n int64
	if err := tx.Model(&domain.Token{}).Where("address = ?", address).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrTokenExists
	}
	pid := proposalID
	return tx.Create(&domain.Token{
		Address:    address,
		Name:       name,
		Symbol:     symbol,
		Supply:     decimal.Zero,
		ProposalID: &pid,
	}).Error
}

// EnsureToken registers address as a plain token if it is not known yet.
func (s *Service) EnsureToken(tx *gorm.DB, address string) error {
	if !validation.IsValidAddress(address) {
		return ErrInvalidAccount
	}
	var n int64
	if err := tx.Model(&domain.Token{}).Where("address = ?", address).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return tx.Create(&domain.Token{Address: address, Name: address, Symbol: address, Supply: decimal.Zero}).Error
}

// Mint creates amount new units of token in to's balance.
func (s *Service) Mint(tx *gorm.DB, token, to string, amount decimal.Decimal) error {
	if !domain.IsWholeAmount(amount) {
		return ErrInvalidAmount
	}
	var t domain.Token
	if err := tx.Where("address = ?", token).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownToken
		}
		return err
	}
	if err := tx.Model(&domain.Token{}).Where("address = ?", token).Update("supply", t.Supply.Add(amount)).Error; err != nil {
		return err
	}
	return credit(tx, token, to, amount)
}

// Transfer moves amount of token from one account to another.
func (s *Service) Transfer(tx *gorm.DB, token, from, to string, amount decimal.Decimal) error {
	if !domain.IsWholeAmount(amount) {
		return ErrInvalidAmount
	}
	if err := requireToken(tx, token); err != nil {
		return err
	}
	if err := debit(tx, token, from, amount); err != nil {
		return err
	}
	return credit(tx, token, to, amount)
}

// TransferFrom moves amount out of from's balance on behalf of spender, consuming allowance.
func (s *Service) TransferFrom(tx *gorm.DB, token, spender, from, to string, amount decimal.Decimal) error {
	if !domain.IsWholeAmount(amount) {
		return ErrInvalidAmount
	}
	if err := requireToken(tx, token); err != nil {
		return err
	}
	var a domain.Allowance
	err := tx.Where("token = ? AND owner = ? AND spender = ?", token, from, spender).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && a.Amount.LessThan(amount)) {
		return ErrInsufficientAllowance
	}
	if err != nil {
		return err
	}
	if err := tx.Model(&domain.Allowance{}).Where("id = ?", a.ID).Update("amount", a.Amount.Sub(amount)).Error; err != nil {
		return err
	}
	if err := debit(tx, token, from, amount); err != nil {
		return err
	}
	return credit(tx, token, to, amount)
}

// BalanceIn reads a balance inside tx.
func (s *Service) BalanceIn(tx *gorm.DB, token, account string) (decimal.Decimal, error) {
	var b domain.Balance
	err := tx.Where("token = ? AND account = ?", token, account).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return b.Amount, nil
}

// Approve sets the allowance of spender over owner's token balance. Zero clears it.
func (s *Service) Approve(ctx context.Context, token, owner, spender string, amount decimal.Decimal) error {
	if amount.IsNegative() || !amount.Equal(amount.Truncate(0)) {
		return ErrInvalidAmount
	}
	if !validation.IsValidAddress(spender) {
		return ErrInvalidAccount
	}
	if s.IsCustody(owner) {
		return ErrCustodyAccount
	}
	return s.Exec.Run(ctx, func(tx *gorm.DB, _ *txn.Hooks) error {
		if err := requireToken(tx, token); err != nil {
			return err
		}
		var a domain.Allowance
		err := tx.Where("token = ? AND owner = ? AND spender = ?", token, owner, spender).First(&a).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&domain.Allowance{Token: token, Owner: owner, Spender: spender, Amount: amount}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&domain.Allowance{}).Where("id = ?", a.ID).Update("amount", amount).Error
	})
}

// Send is a direct transfer initiated by the holder.
func (s *Service) Send(ctx context.Context, token, from, to string, amount decimal.Decimal) error {
	if !validation.IsValidAddress(to) {
		return ErrInvalidAccount
	}
	if s.IsCustody(from) {
		return ErrCustodyAccount
	}
	return s.Exec.Run(ctx, func(tx *gorm.DB, _ *txn.Hooks) error {
		return s.Transfer(tx, token, from, to, amount)
	})
}

// Faucet mints currency tokens for testing deployments, registering the token on first use.
func (s *Service) Faucet(ctx context.Context, token, to string, amount decimal.Decimal) error {
	if !validation.IsValidAddress(to) {
		return ErrInvalidAccount
	}
	return s.Exec.Run(ctx, func(tx *gorm.DB, _ *txn.Hooks) error {
		if err := s.EnsureToken(tx, token); err != nil {
			return err
		}
		return s.Mint(tx, token, to, amount)
	})
}

func (s *Service) BalanceOf(ctx context.Context, token, account string) (decimal.Decimal, error) {
	return s.BalanceIn(s.DB.WithContext(ctx), token, account)
}

func (s *Service) AllowanceOf(ctx context.Context, token, owner, spender string) (decimal.Decimal, error) {
	var a domain.Allowance
	err := s.DB.WithContext(ctx).Where("token = ? AND owner = ? AND spender = ?", token, owner, spender).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return a.Amount, nil
}

func (s *Service) GetToken(ctx context.Context, address string) (*domain.Token, error) {
	var t domain.Token
	if err := s.DB.WithContext(ctx).Where("address = ?", address).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownToken
		}
		return nil, err
	}
	return &t, nil
}

// ListBalances returns every non-empty balance of account.
func (s *Service) ListBalances(ctx context.Context, account string) ([]domain.Balance, error) {
	var out []domain.Balance
	if err := s.DB.WithContext(ctx).Where("account = ?", account).Order("token ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	kept := out[:0]
	for _, b := range out {
		if b.Amount.IsPositive() {
			kept = append(kept, b)
		}
	}
	return kept, nil
}

func requireToken(tx *gorm.DB, token string) error {
	var n int64
	if err := tx.Model(&domain.Token{}).Where("address = ?", token).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrUnknownToken
	}
	return nil
}

func credit(tx *gorm.DB, token, account string, amount decimal.Decimal) error {
	var b domain.Balance
	err := tx.Where("token = ? AND account = ?", token, account).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&domain.Balance{Token: token, Account: account, Amount: amount}).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&domain.Balance{}).Where("id = ?", b.ID).Update("amount", b.Amount.Add(amount)).Error
}

func debit(tx *gorm.DB, token, account string, amount decimal.Decimal) error {
	var b domain.Balance
	err := tx.Where("token = ? AND account = ?", token, account).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && b.Amount.LessThan(amount)) {
		return ErrInsufficientBalance
	}
	if err != nil {
		return err
	}
	return tx.Model(&domain.Balance{}).Where("id = ?", b.ID).Update("amount", b.Amount.Sub(amount)).Error
}
