// Package minting turns a funded proposal into a live token: it mints the supply, splits it,
// seeds the liquidity position and registers the vesting entitlements.
package minting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"launchpad-backend/internal/application/escrow"
	"launchpad-backend/internal/application/events"
	"launchpad-backend/internal/application/registry"
	"launchpad-backend/internal/application/txn"
	"launchpad-backend/internal/application/vesting"
	"launchpad-backend/internal/clock"
	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/pkg/capability"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Settings struct {
	Policy domain.MintPolicy
	// Account receives the fresh supply and pooled currency before they are distributed.
	Account string
	// VaultAccount owns the liquidity positions.
	VaultAccount string
	// VestingAccount holds investor and owner shares until they are released.
	VestingAccount   string
	InvestorCliff    time.Duration
	InvestorDuration time.Duration
	OwnerCliff       time.Duration
	OwnerDuration    time.Duration
}

type Service struct {
	Exec     *txn.Executor
	Clock    clock.Clock
	Registry *registry.Service
	Escrow   *escrow.Service
	Vesting  *vesting.Service
	Events   *events.Service
	Settings Settings

	mu        sync.Mutex
	minter    TokenMinter
	positions PositionManager
	payout    Payout
	treasury  string
}

// Result is the outcome of minting one id of a batch.
type Result struct {
	ID         uint64 `json:"id"`
	Minted     bool   `json:"minted"`
	Token      string `json:"token,omitempty"`
	PositionID string `json:"position_id,omitempty"`
	Error      string `json:"error,omitempty"`
	Err        error  `json:"-"`
}

// Mint mints every id independently: one failing id never affects the others.
func (s *Service) Mint(ctx context.Context, ids []uint64, actor string) ([]Result, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyBatch
	}
	w, err := s.wiring()
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(ids))
	for _, id := range ids {
		r := Result{ID: id}
		token, position, err := s.mintOne(ctx, w, id, actor)
		if err != nil {
			r.Err = err
			r.Error = err.Error()
			log.Warn().Err(err).Uint64("proposal_id", id).Msg("mint failed")
		} else {
			r.Minted = true
			r.Token = token
			r.PositionID = position
			log.Info().Uint64("proposal_id", id).Str("token", token).Str("position_id", position).Msg("proposal minted")
		}
		out = append(out, r)
	}
	return out, nil
}

func collaborator(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrCollaboratorFailed, step, err)
}

func (s *Service) mintOne(ctx context.Context, w wiring, id uint64, actor string) (string, string, error) {
	var token, position string
	err := s.Exec.Run(ctx, func(tx *gorm.DB, hooks *txn.Hooks) error {
		now := s.Clock.Now()
		p, err := s.Registry.Load(tx, id)
		if err != nil {
			return err
		}
		switch p.Status {
		case domain.StatusApproved:
		case domain.StatusMinted:
			return ErrAlreadyMinted
		default:
			return ErrProposalNotApproved
		}
		if !p.FundingSatisfied(s.Settings.Policy, now) {
			return ErrNotInvestmentComplete
		}

		alloc := p.Requirement.Split(p.Supply)
		contributions, err := s.Escrow.Contributions(tx, id)
		if err != nil {
			return err
		}
		shares := InvestorShares(alloc.Investor, contributions)
		token = w.minter.AddressOf(id, p.Symbol)

		// own state
		if _, err := s.Registry.Transition(tx, capability.Minting, id, domain.StatusMinted, now); err != nil {
			return err
		}
		vested := decimal.Zero
		investorTerms := vesting.Terms{Start: now, Cliff: s.Settings.InvestorCliff, Duration: s.Settings.InvestorDuration}
		for _, sh := range shares {
			if !sh.Amount.IsPositive() {
				continue
			}
			if _, err := s.Vesting.Schedule(tx, capability.Minting, sh.Account, id, token, domain.VestingKindInvestor, sh.Amount, investorTerms); err != nil {
				return err
			}
			vested = vested.Add(sh.Amount)
		}
		if alloc.Owner.IsPositive() {
			ownerTerms := vesting.Terms{Start: now, Cliff: s.Settings.OwnerCliff, Duration: s.Settings.OwnerDuration}
			if _, err := s.Vesting.Schedule(tx, capability.Minting, p.Creator, id, token, domain.VestingKindOwner, alloc.Owner, ownerTerms); err != nil {
				return err
			}
			vested = vested.Add(alloc.Owner)
		}

		// collaborators
		if err := w.minter.Deploy(tx, token, p.Name, p.Symbol, id); err != nil {
			return collaborator("deploy token", err)
		}
		if err := w.minter.Mint(tx, token, s.Settings.Account, p.Supply); err != nil {
			return collaborator("mint supply", err)
		}
		pooled, err := s.Escrow.Consume(tx, capability.Minting, id, s.Settings.Account, now)
		if err != nil {
			return collaborator("consume escrow", err)
		}
		currency := p.Requirement.CurrencyToken
		if alloc.Liquidity.IsPositive() && pooled.IsPositive() {
			position, err = w.positions.OpenPosition(tx, token, currency, alloc.Liquidity, pooled, s.Settings.Account, s.Settings.VaultAccount, now)
			if err != nil {
				return collaborator("open position", err)
			}
		} else {
			// no pool to seed: both sides go to the treasury
			if err := transferIfPositive(tx, w.payout, token, s.Settings.Account, w.treasury, alloc.Liquidity); err != nil {
				return collaborator("treasury transfer", err)
			}
			if err := transferIfPositive(tx, w.payout, currency, s.Settings.Account, w.treasury, pooled); err != nil {
				return collaborator("treasury transfer", err)
			}
		}
		if err := transferIfPositive(tx, w.payout, token, s.Settings.Account, w.treasury, alloc.Treasury); err != nil {
			return collaborator("treasury transfer", err)
		}
		if err := transferIfPositive(tx, w.payout, token, s.Settings.Account, s.Settings.VestingAccount, vested); err != nil {
			return collaborator("vesting custody transfer", err)
		}

		if err := s.Registry.RecordMint(tx, capability.Minting, id, token, position); err != nil {
			return err
		}
		return s.Events.Record(tx, hooks, id, domain.EventProposalMinted, actor, now, map[string]interface{}{
			"id":          id,
			"token":       token,
			"position_id": position,
			"liquidity":   alloc.Liquidity.String(),
			"investor":    alloc.Investor.String(),
			"owner":       alloc.Owner.String(),
			"treasury":    alloc.Treasury.String(),
			"pooled":      pooled.String(),
		})
	})
	if err != nil {
		return "", "", err
	}
	return token, position, nil
}

func transferIfPositive(tx *gorm.DB, p Payout, token, from, to string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return nil
	}
	return p.Transfer(tx, token, from, to, amount)
}

// Share is one investor's cut of the investor allocation.
type Share struct {
	Account string
	Amount  decimal.Decimal
}

// InvestorShares divides pool among contributions pro rata, rounding down. The rounding
// dust goes to the earliest contribution so the shares always add up to pool.
func InvestorShares(pool decimal.Decimal, contributions []domain.Investment) []Share {
	total := decimal.Zero
	for _, c := range contributions {
		total = total.Add(c.Amount)
	}
	if !total.IsPositive() {
		return nil
	}
	out := make([]Share, 0, len(contributions))
	sum := decimal.Zero
	for _, c := range contributions {
		q, _ := pool.Mul(c.Amount).QuoRem(total, 0)
		out = append(out, Share{Account: c.Account, Amount: q})
		sum = sum.Add(q)
	}
	if dust := pool.Sub(sum); dust.IsPositive() {
		out[0].Amount = out[0].Amount.Add(dust)
	}
	return out
}
