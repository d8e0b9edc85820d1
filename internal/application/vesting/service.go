// Package vesting keeps per-beneficiary unlock schedules for minted tokens and pays out
// whatever has vested.
package vesting

import (
	"context"
	"time"

	"launchpad-backend/internal/application/events"
	"launchpad-backend/internal/application/txn"
	"launchpad-backend/internal/clock"
	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/pkg/capability"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payout transfers released tokens to the beneficiary.
type Payout interface {
	Transfer(tx *gorm.DB, token, from, to string, amount decimal.Decimal) error
}

type Service struct {
	DB     *gorm.DB
	Exec   *txn.Executor
	Clock  clock.Clock
	Events *events.Service
	Payout Payout
	// Account is the custody account holding unreleased tokens.
	Account string
}

// Terms are the timing parameters of a schedule.
type Terms struct {
	Start    time.Time
	Cliff    time.Duration
	Duration time.Duration
}

// Schedule creates the schedule of the given kind for beneficiary on proposal id.
func (s *Service) Schedule(tx *gorm.DB, caller capability.Component, beneficiary string, id uint64, token, kind string, amount decimal.Decimal, terms Terms) (*domain.VestingSchedule, error) {
	if err := capability.Check(capability.OpCreateSchedule, caller); err != nil {
		return nil, err
	}
	if !domain.IsWholeAmount(amount) || terms.Cliff < 0 || terms.Duration < terms.Cliff {
		return nil, ErrInvalidSchedule
	}
	var n int64
	if err := tx.Model(&domain.VestingSchedule{}).
		Where("beneficiary = ? AND proposal_id = ? AND kind = ?", beneficiary, id, kind).
		Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrScheduleExists
	}
	v := domain.VestingSchedule{
		Beneficiary:      beneficiary,
		ProposalID:       id,
		Token:            token,
		Kind:             kind,
		TotalEntitlement: amount,
		Released:         decimal.Zero,
		Start:            terms.Start,
		CliffSeconds:     int64(terms.Cliff / time.Second),
		DurationSeconds:  int64(terms.Duration / time.Second),
	}
	if err := tx.Create(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Service) schedules(tx *gorm.DB, beneficiary string, id uint64) ([]domain.VestingSchedule, error) {
	var out []domain.VestingSchedule
	if err := tx.Where("beneficiary = ? AND proposal_id = ?", beneficiary, id).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrScheduleNotFound
	}
	return out, nil
}

// GetReleasable is what beneficiary could release on id at now.
func (s *Service) GetReleasable(ctx context.Context, beneficiary string, id uint64, now time.Time) (decimal.Decimal, error) {
	list, err := s.schedules(s.DB.WithContext(ctx), beneficiary, id)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range list {
		total = total.Add(list[i].Releasable(now))
	}
	return total, nil
}

// Release pays beneficiary everything vested on id and not yet released.
func (s *Service) Release(ctx context.Context, id uint64, beneficiary string) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := s.Exec.Run(ctx, func(tx *gorm.DB, hooks *txn.Hooks) error {
		now := s.Clock.Now()
		list, err := s.schedules(tx, beneficiary, id)
		if err != nil {
			return err
		}
		amount = decimal.Zero
		for i := range list {
			v := &list[i]
			r := v.Releasable(now)
			if !r.IsPositive() {
				continue
			}
			if err := tx.Model(&domain.VestingSchedule{}).Where("id = ?", v.ID).Updates(map[string]interface{}{
				"released":         v.Released.Add(r),
				"last_released_at": now,
			}).Error; err != nil {
				return err
			}
			amount = amount.Add(r)
		}
		if !amount.IsPositive() {
			return ErrNothingToRelease
		}
		if err := s.Events.Record(tx, hooks, id, domain.EventTokensReleased, beneficiary, now, map[string]interface{}{
			"beneficiary": beneficiary,
			"id":          id,
			"amount":      amount.String(),
		}); err != nil {
			return err
		}
		return s.Payout.Transfer(tx, list[0].Token, s.Account, beneficiary, amount)
	})
	if err != nil {
		return decimal.Zero, err
	}
	log.Info().Uint64("proposal_id", id).Str("beneficiary", beneficiary).Str("amount", amount.String()).Msg("tokens released")
	return amount, nil
}

// GetSchedules returns beneficiary's schedules on id.
func (s *Service) GetSchedules(ctx context.Context, beneficiary string, id uint64) ([]domain.VestingSchedule, error) {
	return s.schedules(s.DB.WithContext(ctx), beneficiary, id)
}

// ListByBeneficiary returns every schedule of beneficiary, oldest proposal first.
func (s *Service) ListByBeneficiary(ctx context.Context, beneficiary string) ([]domain.VestingSchedule, error) {
	var out []domain.VestingSchedule
	err := s.DB.WithContext(ctx).Where("beneficiary = ?", beneficiary).Order("proposal_id ASC, id ASC").Find(&out).Error
	return out, err
}

// ListByProposal returns every schedule registered for id.
func (s *Service) ListByProposal(ctx context.Context, id uint64) ([]domain.VestingSchedule, error) {
	var out []domain.VestingSchedule
	err := s.DB.WithContext(ctx).Where("proposal_id = ?", id).Order("id ASC").Find(&out).Error
	return out, err
}
