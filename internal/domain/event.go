package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	EventProposalCreated    = "PROPOSAL_CREATED"
	EventVoteCast           = "VOTE_CAST"
	EventProposalFinalized  = "PROPOSAL_FINALIZED"
	EventInvestmentReceived = "INVESTMENT_RECEIVED"
	EventInvestmentRefunded = "INVESTMENT_REFUNDED"
	EventFundingExpired     = "FUNDING_EXPIRED"
	EventProposalMinted     = "PROPOSAL_MINTED"
	EventTokensReleased     = "TOKENS_RELEASED"
)

// ProposalEvent is an append-only record observable by indexers.
type ProposalEvent struct {
	ID         uint64         `gorm:"column:id;primaryKey" json:"id"`
	ProposalID uint64         `gorm:"column:proposal_id;not null;index" json:"proposal_id"`
	EventType  string         `gorm:"column:event_type;type:varchar(32);not null" json:"event_type"`
	Actor      string         `gorm:"column:actor;type:varchar(128)" json:"actor"`
	EventData  datatypes.JSON `gorm:"column:event_data" json:"event_data"`
	OccurredAt time.Time      `gorm:"column:occurred_at;not null" json:"occurred_at"`
}

func (ProposalEvent) TableName() string {
	return "proposal_events"
}
