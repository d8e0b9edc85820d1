package registry

import (
	"context"

	"launchpad-backend/internal/domain"

	"gorm.io/gorm"
)

// Page is an offset/limit window over an id-ordered collection.
type Page struct {
	Offset int
	Limit  int
}

func (s *Service) maxPage() int {
	if s.Settings.MaxPageSize > 0 {
		return s.Settings.MaxPageSize
	}
	return DefaultMaxPageSize
}

// paginate orders by creation (id) and applies the window. The bool is false when the
// window is empty by construction.
func (s *Service) paginate(q *gorm.DB, pg Page) (*gorm.DB, bool) {
	if pg.Limit <= 0 {
		return q, false
	}
	if pg.Limit > s.maxPage() {
		pg.Limit = s.maxPage()
	}
	if pg.Offset < 0 {
		pg.Offset = 0
	}
	return q.Order("proposals.id ASC").Offset(pg.Offset).Limit(pg.Limit), true
}

func (s *Service) find(q *gorm.DB, pg Page) ([]domain.Proposal, error) {
	out := []domain.Proposal{}
	q, ok := s.paginate(q, pg)
	if !ok {
		return out, nil
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListByStatus returns proposals in status, in creation order.
func (s *Service) ListByStatus(ctx context.Context, status domain.ProposalStatus, pg Page) ([]domain.Proposal, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Proposal{}).Where("proposals.status = ?", status)
	return s.find(q, pg)
}

// ListByCreator returns the proposals created by account.
func (s *Service) ListByCreator(ctx context.Context, account string, pg Page) ([]domain.Proposal, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Proposal{}).Where("proposals.creator = ?", account)
	return s.find(q, pg)
}

// ListVoted returns the proposals account has voted on.
func (s *Service) ListVoted(ctx context.Context, account string, pg Page) ([]domain.Proposal, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Proposal{}).
		Joins("JOIN votes ON votes.proposal_id = proposals.id AND votes.account = ?", account)
	return s.find(q, pg)
}

// ListInvested returns the proposals account has contributed to.
func (s *Service) ListInvested(ctx context.Context, account string, pg Page) ([]domain.Proposal, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Proposal{}).
		Joins("JOIN investments ON investments.proposal_id = proposals.id AND investments.account = ?", account)
	return s.find(q, pg)
}

// CountByStatus is used for pagination metadata.
func (s *Service) CountByStatus(ctx context.Context, status domain.ProposalStatus) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&domain.Proposal{}).Where("status = ?", status).Count(&n).Error
	return n, err
}
