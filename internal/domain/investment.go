package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment is the running contribution of one account to one proposal.
type Investment struct {
	ID         uint            `gorm:"column:id;primaryKey" json:"-"`
	ProposalID uint64          `gorm:"column:proposal_id;not null;uniqueIndex:idx_investments_proposal_account,priority:1;index:idx_investments_account_proposal,priority:2" json:"proposal_id"`
	Account    string          `gorm:"column:account;type:varchar(128);not null;uniqueIndex:idx_investments_proposal_account,priority:2;index:idx_investments_account_proposal,priority:1" json:"account"`
	Amount     decimal.Decimal `gorm:"column:amount;type:varchar(80);not null" json:"amount"`
	Refunded   bool            `gorm:"column:refunded;not null;default:false" json:"refunded"`
	Settled    bool            `gorm:"column:settled;not null;default:false" json:"settled"`
	FirstAt    time.Time       `gorm:"column:first_at;not null" json:"first_at"`
	LastAt     time.Time       `gorm:"column:last_at;not null" json:"last_at"`
	RefundedAt *time.Time      `gorm:"column:refunded_at" json:"refunded_at,omitempty"`
}

func (Investment) TableName() string {
	return "investments"
}
