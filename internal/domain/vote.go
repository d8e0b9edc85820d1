package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vote is the single ballot an account may cast on a proposal.
type Vote struct {
	ID         uint            `gorm:"column:id;primaryKey" json:"-"`
	ProposalID uint64          `gorm:"column:proposal_id;not null;uniqueIndex:idx_votes_proposal_account,priority:1;index:idx_votes_account_proposal,priority:2" json:"proposal_id"`
	Account    string          `gorm:"column:account;type:varchar(128);not null;uniqueIndex:idx_votes_proposal_account,priority:2;index:idx_votes_account_proposal,priority:1" json:"account"`
	Weight     decimal.Decimal `gorm:"column:weight;type:varchar(80);not null" json:"weight"`
	Support    bool            `gorm:"column:support;not null" json:"support"`
	CastAt     time.Time       `gorm:"column:cast_at;not null" json:"cast_at"`
}

func (Vote) TableName() string {
	return "votes"
}
