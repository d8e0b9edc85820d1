// Package registry owns proposals: creation, identifiers, status transitions and the
// paginated views over them.
package registry

import (
	"context"
	"errors"
	"strings"
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

const proposalSequence = "proposal"

// DefaultMaxPageSize caps every paginated query when Settings leaves it unset.
const DefaultMaxPageSize = 100

type Settings struct {
	VotingPeriod  time.Duration
	FundingPeriod time.Duration
	MaxPageSize   int
}

type Service struct {
	DB       *gorm.DB
	Exec     *txn.Executor
	Clock    clock.Clock
	Events   *events.Service
	Settings Settings
}

// Metadata is the descriptive part of a proposal, fixed at creation.
type Metadata struct {
	Name          string               `json:"name"`
	Symbol        string               `json:"symbol"`
	Supply        decimal.Decimal      `json:"supply"`
	Story         string               `json:"story"`
	Logo          string               `json:"logo"`
	SocialChannel domain.SocialChannel `json:"social_channel"`
}

func (m Metadata) Validate() error {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Symbol) == "" || !domain.IsWholeAmount(m.Supply) {
		return ErrInvalidMetadata
	}
	return nil
}

// Create validates and stores a new proposal, opening its voting window.
func (s *Service) Create(ctx context.Context, creator string, md Metadata, req domain.Requirement) (uint64, error) {
	if err := md.Validate(); err != nil {
		return 0, err
	}
	if err := req.Validate(); err != nil {
		return 0, err
	}

	var id uint64
	err := s.Exec.Run(ctx, func(tx *gorm.DB, hooks *txn.Hooks) error {
		now := s.Clock.Now()
		next, err := nextID(tx, proposalSequence)
		if err != nil {
			return err
		}
		p := domain.Proposal{
			ID:             next,
			Name:           strings.TrimSpace(md.Name),
			Symbol:         strings.TrimSpace(md.Symbol),
			Supply:         md.Supply,
			Story:          md.Story,
			Logo:           md.Logo,
			SocialChannel:  md.SocialChannel,
			Requirement:    req,
			Status:         domain.StatusInProcess,
			Creator:        creator,
			CreatedAt:      now,
			VotingDeadline: now.Add(s.Settings.VotingPeriod),
			VotesFor:       decimal.Zero,
			VotesAgainst:   decimal.Zero,
			TotalInvested:  decimal.Zero,
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		id = next
		return s.Events.Record(tx, hooks, id, domain.EventProposalCreated, creator, now, map[string]interface{}{
			"creator": creator,
			"id":      id,
		})
	})
	if err != nil {
		return 0, err
	}
	log.Info().Uint64("proposal_id", id).Str("creator", creator).Msg("proposal created")
	return id, nil
}

func nextID(tx *gorm.DB, name string) (uint64, error) {
	var seq domain.Sequence
	err := tx.Where("name = ?", name).First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := tx.Create(&domain.Sequence{Name: name, Next: 1}).Error; err != nil {
			return 0, err
		}
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if err := tx.Model(&domain.Sequence{}).Where("name = ?", name).Update("next", seq.Next+1).Error; err != nil {
		return 0, err
	}
	return seq.Next, nil
}

// Get returns a proposal by id.
func (s *Service) Get(ctx context.Context, id uint64) (*domain.Proposal, error) {
	return s.Load(s.DB.WithContext(ctx), id)
}

// Load reads a proposal inside tx.
func (s *Service) Load(tx *gorm.DB, id uint64) (*domain.Proposal, error) {
	var p domain.Proposal
	if err := tx.Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &p, nil
}

type edge struct {
	from, to domain.ProposalStatus
}

var edges = map[capability.Op]edge{
	capability.OpApprove: {domain.StatusInProcess, domain.StatusApproved},
	capability.OpReject:  {domain.StatusInProcess, domain.StatusRejected},
	capability.OpExpire:  {domain.StatusApproved, domain.StatusRejected},
	capability.OpMint:    {domain.StatusApproved, domain.StatusMinted},
}

// opFor picks the guarded operation that moves a proposal to `to` on behalf of caller.
func opFor(to domain.ProposalStatus, caller capability.Component) (capability.Op, error) {
	known := false
	for op, e := range edges {
		if e.to != to {
			continue
		}
		known = true
		if capability.Check(op, caller) == nil {
			return op, nil
		}
	}
	if !known {
		return "", ErrInvalidTransition
	}
	return "", capability.ErrUnauthorizedCaller
}

// Transition moves proposal id to status `to`. Only the edges InProcess→Approved,
// InProcess→Rejected, Approved→Minted exist, plus Approved→Rejected when a funding
// period is configured.
func (s *Service) Transition(tx *gorm.DB, caller capability.Component, id uint64, to domain.ProposalStatus, at time.Time) (*domain.Proposal, error) {
	op, err := opFor(to, caller)
	if err != nil {
		return nil, err
	}
	if op == capability.OpExpire && s.Settings.FundingPeriod <= 0 {
		return nil, ErrInvalidTransition
	}
	p, err := s.Load(tx, id)
	if err != nil {
		return nil, err
	}
	e := edges[op]
	if p.Status != e.from {
		return nil, ErrInvalidTransition
	}

	updates := map[string]interface{}{"status": e.to}
	switch op {
	case capability.OpApprove:
		updates["finalized_at"] = at
		p.FinalizedAt = &at
		if s.Settings.FundingPeriod > 0 {
			deadline := at.Add(s.Settings.FundingPeriod)
			updates["funding_deadline"] = deadline
			p.FundingDeadline = &deadline
		}
	case capability.OpReject:
		updates["finalized_at"] = at
		p.FinalizedAt = &at
	case capability.OpMint:
		updates["minted_at"] = at
		p.MintedAt = &at
	}
	if err := tx.Model(&domain.Proposal{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	p.Status = e.to
	return p, nil
}

// AddVotes adds weight to the for or against tally.
func (s *Service) AddVotes(tx *gorm.DB, caller capability.Component, id uint64, support bool, weight decimal.Decimal) error {
	if err := capability.Check(capability.OpWriteTally, caller); err != nil {
		return err
	}
	if !weight.IsPositive() {
		return ErrInvalidAmount
	}
	p, err := s.Load(tx, id)
	if err != nil {
		return err
	}
	if support {
		return tx.Model(&domain.Proposal{}).Where("id = ?", id).Update("votes_for", p.VotesFor.Add(weight)).Error
	}
	return tx.Model(&domain.Proposal{}).Where("id = ?", id).Update("votes_against", p.VotesAgainst.Add(weight)).Error
}

// AddInvested raises totalInvested by amount.
func (s *Service) AddInvested(tx *gorm.DB, caller capability.Component, id uint64, amount decimal.Decimal) error {
	if err := capability.Check(capability.OpWriteInvested, caller); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	p, err := s.Load(tx, id)
	if err != nil {
		return err
	}
	return tx.Model(&domain.Proposal{}).Where("id = ?", id).Update("total_invested", p.TotalInvested.Add(amount)).Error
}

// RecordMint stores where the minted token and its liquidity position live.
func (s *Service) RecordMint(tx *gorm.DB, caller capability.Component, id uint64, token, positionID string) error {
	if err := capability.Check(capability.OpRecordMint, caller); err != nil {
		return err
	}
	return tx.Model(&domain.Proposal{}).Where("id = ?", id).Updates(map[string]interface{}{
		"token_address": token,
		"position_id":   positionID,
	}).Error
}
