// Package voting runs the time-boxed vote on each proposal and settles its outcome.
package voting

import (
	"context"
	"errors"

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

type Service struct {
	DB       *gorm.DB
	Exec     *txn.Executor
	Clock    clock.Clock
	Registry *registry.Service
	Events   *events.Service
	Weights  WeightSource
	// Quorum is the minimum total weight (for + against) a passing vote needs.
	Quorum decimal.Decimal
}

// Vote records account's ballot on proposal id.
func (s *Service) Vote(ctx context.Context, id uint64, support bool, account string) (*domain.Vote, error) {
	var vote domain.Vote
	err := s.Exec.Run(ctx, func(tx *gorm.DB, hooks *txn.Hooks) error {
		now := s.Clock.Now()
		p, err := s.Registry.Load(tx, id)
		if err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&domain.Vote{}).Where("proposal_id = ? AND account = ?", id, account).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAlreadyVoted
		}
		if p.Status != domain.StatusInProcess || !p.VotingOpen(now) {
			return ErrVotingClosed
		}

		weight, err := s.Weights.WeightOf(tx, account)
		if err != nil {
			return err
		}
		if !weight.IsPositive() {
			return ErrNoVotingWeight
		}

		vote = domain.Vote{ProposalID: id, Account: account, Weight: weight, Support: support, CastAt: now}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}
		if err := s.Registry.AddVotes(tx, capability.Voting, id, support, weight); err != nil {
			return err
		}
		return s.Events.Record(tx, hooks, id, domain.EventVoteCast, account, now, map[string]interface{}{
			"account": account,
			"support": support,
			"weight":  weight.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint64("proposal_id", id).Str("account", account).Bool("support", support).Str("weight", vote.Weight.String()).Msg("vote cast")
	return &vote, nil
}

// Passed applies the majority-plus-quorum rule to a tally.
func (s *Service) Passed(p *domain.Proposal) bool {
	total := p.VotesFor.Add(p.VotesAgainst)
	return p.VotesFor.GreaterThan(p.VotesAgainst) && total.GreaterThanOrEqual(s.Quorum)
}

// IsPassed reports the current outcome of proposal id. It is only authoritative once
// voting has closed.
func (s *Service) IsPassed(ctx context.Context, id uint64) (bool, error) {
	p, err := s.Registry.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return s.Passed(p), nil
}

// Finalize closes the vote on id and moves the proposal to Approved or Rejected.
func (s *Service) Finalize(ctx context.Context, id uint64, actor string) (bool, error) {
	var passed bool
	err := s.Exec.Run(ctx, func(tx *gorm.DB, hooks *txn.Hooks) error {
		now := s.Clock.Now()
		p, err := s.Registry.Load(tx, id)
		if err != nil {
			return err
		}
		if p.Status != domain.StatusInProcess {
			return ErrAlreadyFinalized
		}
		if p.VotingOpen(now) {
			return ErrVotingOpen
		}

		passed = s.Passed(p)
		to := domain.StatusRejected
		if passed {
			to = domain.StatusApproved
		}
		if _, err := s.Registry.Transition(tx, capability.Voting, id, to, now); err != nil {
			return err
		}
		return s.Events.Record(tx, hooks, id, domain.EventProposalFinalized, actor, now, map[string]interface{}{
			"id":            id,
			"passed":        passed,
			"votes_for":     p.VotesFor.String(),
			"votes_against": p.VotesAgainst.String(),
		})
	})
	if err != nil {
		return false, err
	}
	log.Info().Uint64("proposal_id", id).Bool("passed", passed).Msg("voting finalized")
	return passed, nil
}

// GetVote returns account's ballot on id.
func (s *Service) GetVote(ctx context.Context, id uint64, account string) (*domain.Vote, error) {
	var v domain.Vote
	if err := s.DB.WithContext(ctx).Where("proposal_id = ? AND account = ?", id, account).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoteNotFound
		}
		return nil, err
	}
	return &v, nil
}
