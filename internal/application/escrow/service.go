// Package escrow holds pooled investment for approved proposals until they are minted or
// refunded.
package escrow

import (
	"context"
	"errors"
	"time"

	"launchpad-backend/internal/application/events"
	"launchpad-backend/internal/application/registry"
	"launchpad-backend/internal/application/txn"
	"launchpad-backend/internal/clock"
	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/pkg/capability"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Currency moves the reference currency. TransferFrom relies on an allowance the investor
// granted to the escrow account beforehand.
type Currency interface {
	TransferFrom(tx *gorm.DB, token, spender, from, to string, amount decimal.Decimal) error
	Transfer(tx *gorm.DB, token, from, to string, amount decimal.Decimal) error
}

type Service struct {
	DB       *gorm.DB
	Exec     *txn.Executor
	Clock    clock.Clock
	Registry *registry.Service
	Events   *events.Service
	Currency Currency
	// Account is the custody account holding escrowed funds.
	Account string
	Policy  domain.MintPolicy
}

// Invest adds amount of currencyToken from account to proposal id. The whole amount is
// rejected if it would overshoot the target.
func (s *Service) Invest(ctx context.Context, id uint64, currencyToken string, amount decimal.Decimal, account string) (*domain.Investment, error) {
	if !domain.IsWholeAmount(amount) {
		return nil, ErrInvalidAmount
	}
	var inv domain.Investment
	err := s.Exec.Run(ctx, func(tx *gorm.DB, hooks *txn.Hooks) error {
		now := s.Clock.Now()
		p, err := s.Registry.Load(tx, id)
		if err != nil {
			return err
		}
		if currencyToken != p.Requirement.CurrencyToken {
			return ErrWrongCurrency
		}
		if p.Status != domain.StatusApproved {
			return ErrProposalNotApproved
		}
		if p.FundingExpired(now) {
			return ErrFundingClosed
		}
		if p.TotalInvested.Add(amount).GreaterThan(p.Requirement.TargetAmount) {
			return ErrCapExceeded
		}

		err = tx.Where("proposal_id = ? AND account = ?", id, account).First(&inv).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			inv = domain.Investment{ProposalID: id, Account: account, Amount: amount, FirstAt: now, LastAt: now}
			if err := tx.Create(&inv).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			inv.Amount = inv.Amount.Add(amount)
			inv.LastAt = now
			if err := tx.Model(&domain.Investment{}).Where("id = ?", inv.ID).Updates(map[string]interface{}{
				"amount":  inv.Amount,
				"last_at": now,
			}).Error; err != nil {
				return err
			}
		}
		if err := s.Registry.AddInvested(tx, capability.Escrow, id, amount); err != nil {
			return err
		}
		if err := s.Events.Record(tx, hooks, id, domain.EventInvestmentReceived, account, now, map[string]interface{}{
			"account": account,
			"amount":  amount.String(),
			"total":   p.TotalInvested.Add(amount).String(),
		}); err != nil {
			return err
		}
		return s.Currency.TransferFrom(tx, currencyToken, s.Account, account, s.Account, amount)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint64("proposal_id", id).Str("account", account).Str("amount", amount.String()).Msg("investment received")
	return &inv, nil
}

// Refund returns account's whole contribution to a rejected proposal, once.
func (s *Service) Refund(ctx context.Context, id uint64, account string) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := s.Exec.Run(ctx, func(tx *gorm.DB, hooks *txn.Hooks) error {
		now := s.Clock.Now()
		p, err := s.Registry.Load(tx, id)
		if err != nil {
			return err
		}
		if p.Status != domain.StatusRejected {
			return ErrProposalNotRejected
		}
		var inv domain.Investment
		if err := tx.Where("proposal_id = ? AND account = ?", id, account).First(&inv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNothingToRefund
			}
			return err
		}
		if inv.Refunded {
			return ErrAlreadyRefunded
		}
		if !inv.Amount.IsPositive() {
			return ErrNothingToRefund
		}
		amount = inv.Amount
		if err := tx.Model(&domain.Investment{}).Where("id = ?", inv.ID).Updates(map[string]interface{}{
			"refunded":    true,
			"refunded_at": now,
		}).Error; err != nil {
			return err
		}
		if err := s.Events.Record(tx, hooks, id, domain.EventInvestmentRefunded, account, now, map[string]interface{}{
			"account": account,
			"amount":  amount.String(),
		}); err != nil {
			return err
		}
		return s.Currency.Transfer(tx, p.Requirement.CurrencyToken, s.Account, account, amount)
	})
	if err != nil {
		return decimal.Zero, err
	}
	log.Info().Uint64("proposal_id", id).Str("account", account).Str("amount", amount.String()).Msg("investment refunded")
	return amount, nil
}

// ExpireFunding rejects an approved proposal whose funding deadline passed without it
// becoming mintable, so its investors can claim refunds.
func (s *Service) ExpireFunding(ctx context.Context, id uint64, actor string) error {
	err := s.Exec.Run(ctx, func(tx *gorm.DB, hooks *txn.Hooks) error {
		now := s.Clock.Now()
		p, err := s.Registry.Load(tx, id)
		if err != nil {
			return err
		}
		if p.Status != domain.StatusApproved {
			return ErrProposalNotApproved
		}
		if !p.FundingExpired(now) {
			return ErrFundingOpen
		}
		if p.FundingSatisfied(s.Policy, now) {
			return ErrFundingComplete
		}
		if _, err := s.Registry.Transition(tx, capability.Escrow, id, domain.StatusRejected, now); err != nil {
			return err
		}
		return s.Events.Record(tx, hooks, id, domain.EventFundingExpired, actor, now, map[string]interface{}{
			"id":             id,
			"total_invested": p.TotalInvested.String(),
		})
	})
	if err != nil {
		return err
	}
	log.Info().Uint64("proposal_id", id).Msg("funding expired")
	return nil
}

// Contributions lists the open contributions of id in arrival order.
func (s *Service) Contributions(tx *gorm.DB, id uint64) ([]domain.Investment, error) {
	var out []domain.Investment
	err := tx.Where("proposal_id = ? AND refunded = ? AND settled = ?", id, false, false).Order("id ASC").Find(&out).Error
	return out, err
}

// Consume settles every open contribution of id and forwards the pooled currency to `to`.
func (s *Service) Consume(tx *gorm.DB, caller capability.Component, id uint64, to string, at time.Time) (decimal.Decimal, error) {
	if err := capability.Check(capability.OpConsumeEscrow, caller); err != nil {
		return decimal.Zero, err
	}
	p, err := s.Registry.Load(tx, id)
	if err != nil {
		return decimal.Zero, err
	}
	invs, err := s.Contributions(tx, id)
	if err != nil {
		return decimal.Zero, err
	}
	pooled := decimal.Zero
	for _, inv := range invs {
		pooled = pooled.Add(inv.Amount)
	}
	if err := tx.Model(&domain.Investment{}).
		Where("proposal_id = ? AND refunded = ? AND settled = ?", id, false, false).
		Updates(map[string]interface{}{"settled": true, "last_at": at}).Error; err != nil {
		return decimal.Zero, err
	}
	if pooled.IsPositive() {
		if err := s.Currency.Transfer(tx, p.Requirement.CurrencyToken, s.Account, to, pooled); err != nil {
			return decimal.Zero, err
		}
	}
	return pooled, nil
}

// GetContribution returns account's contribution to id.
func (s *Service) GetContribution(ctx context.Context, id uint64, account string) (*domain.Investment, error) {
	var inv domain.Investment
	if err := s.DB.WithContext(ctx).Where("proposal_id = ? AND account = ?", id, account).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContributionNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// ListContributions returns all contributions to id, refunded or not.
func (s *Service) ListContributions(ctx context.Context, id uint64) ([]domain.Investment, error) {
	var out []domain.Investment
	err := s.DB.WithContext(ctx).Where("proposal_id = ?", id).Order("id ASC").Find(&out).Error
	return out, err
}
