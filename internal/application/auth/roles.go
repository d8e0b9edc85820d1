package auth

import (
	"context"
	"errors"

	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/pkg/constants"
	"launchpad-backend/internal/pkg/validation"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrCannotModifyOwnRole = errors.New("Accounts cannot modify their own role")
	ErrLastAdmin           = errors.New("At least one admin account must remain")
)

// RoleChange describes an actor assigning a new role to a target account.
type RoleChange struct {
	ActorAddress  string
	TargetAddress string
	Role          string
}

// ValidateRoleChange checks the governance rules for a role change inside tx and returns the
// target account on success.
func ValidateRoleChange(tx *gorm.DB, rc RoleChange) (*domain.Account, error) {
	if !constants.IsValidRole(rc.Role) {
		return nil, ErrInvalidRole
	}
	if rc.ActorAddress == rc.TargetAddress {
		return nil, ErrCannotModifyOwnRole
	}
	var target domain.Account
	if err := tx.Where("address = ?", rc.TargetAddress).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownAccount
		}
		return nil, err
	}
	if target.Role == constants.Admin && rc.Role != constants.Admin {
		var admins int64
		if err := tx.Model(&domain.Account{}).Where("role = ?", constants.Admin).Count(&admins).Error; err != nil {
			return nil, err
		}
		if admins <= 1 {
			return nil, ErrLastAdmin
		}
	}
	return &target, nil
}

// UpdateRole assigns role to the target account. It returns the previous role so callers can
// decide whether existing sessions need to be invalidated.
func (s *Service) UpdateRole(ctx context.Context, actor, target, role string) (string, error) {
	target = validation.NormalizeAddress(target)
	var previous string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		acct, err := ValidateRoleChange(tx, RoleChange{ActorAddress: actor, TargetAddress: target, Role: role})
		if err != nil {
			return err
		}
		previous = acct.Role
		if previous == role {
			return nil
		}
		return tx.Model(&domain.Account{}).Where("address = ?", target).Update("role", role).Error
	})
	if err != nil {
		return "", err
	}
	if previous != role {
		log.Info().Str("actor", actor).Str("address", target).Str("from", previous).Str("to", role).Msg("account role changed")
	}
	return previous, nil
}
