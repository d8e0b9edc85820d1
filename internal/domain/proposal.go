package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProposalStatus is the lifecycle state of a proposal. Values match the original contract strings.
type ProposalStatus string

const (
	StatusInProcess ProposalStatus = "IN-PROCESS"
	StatusApproved  ProposalStatus = "APPROVED"
	StatusRejected  ProposalStatus = "REJECTED"
	StatusMinted    ProposalStatus = "MINTED"
)

// ParseStatus accepts the canonical value or a lower-case alias ("in-process", "approved", ...).
func ParseStatus(s string) (ProposalStatus, bool) {
	switch ProposalStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusInProcess:
		return StatusInProcess, true
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	case StatusMinted:
		return StatusMinted, true
	}
	return "", false
}

// SocialChannel holds optional links; presence is the only thing checked.
type SocialChannel struct {
	X        string `gorm:"column:social_x" json:"x,omitempty"`
	Website  string `gorm:"column:social_website" json:"website,omitempty"`
	Telegram string `gorm:"column:social_telegram" json:"telegram,omitempty"`
	Discord  string `gorm:"column:social_discord" json:"discord,omitempty"`
}

// Proposal is a request to launch a token. Metadata and Requirement never change after creation.
type Proposal struct {
	ID            uint64          `gorm:"column:id;primaryKey;autoIncrement:false;index:idx_proposals_status_id,priority:2;index:idx_proposals_creator_id,priority:2" json:"id"`
	Name          string          `gorm:"column:name;not null" json:"name"`
	Symbol        string          `gorm:"column:symbol;type:varchar(32);not null" json:"symbol"`
	Supply        decimal.Decimal `gorm:"column:supply;type:varchar(80);not null" json:"supply"`
	Story         string          `gorm:"column:story;type:text" json:"story"`
	Logo          string          `gorm:"column:logo" json:"logo"`
	SocialChannel SocialChannel   `gorm:"embedded" json:"social_channel"`
	Requirement   Requirement     `gorm:"embedded" json:"requirement"`

	Status  ProposalStatus `gorm:"column:status;type:varchar(20);not null;index:idx_proposals_status_id,priority:1" json:"status"`
	Creator string         `gorm:"column:creator;type:varchar(128);not null;index:idx_proposals_creator_id,priority:1" json:"creator"`

	CreatedAt       time.Time  `gorm:"column:created_at;not null" json:"created_at"`
	VotingDeadline  time.Time  `gorm:"column:voting_deadline;not null" json:"voting_deadline"`
	FinalizedAt     *time.Time `gorm:"column:finalized_at" json:"finalized_at,omitempty"`
	FundingDeadline *time.Time `gorm:"column:funding_deadline" json:"funding_deadline,omitempty"`
	MintedAt        *time.Time `gorm:"column:minted_at" json:"minted_at,omitempty"`

	VotesFor      decimal.Decimal `gorm:"column:votes_for;type:varchar(80);not null" json:"votes_for"`
	VotesAgainst  decimal.Decimal `gorm:"column:votes_against;type:varchar(80);not null" json:"votes_against"`
	TotalInvested decimal.Decimal `gorm:"column:total_invested;type:varchar(80);not null" json:"total_invested"`

	TokenAddress string `gorm:"column:token_address;type:varchar(128)" json:"token_address,omitempty"`
	PositionID   string `gorm:"column:position_id;type:varchar(64)" json:"position_id,omitempty"`

	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Proposal) TableName() string {
	return "proposals"
}

// VotingOpen reports whether now is inside the voting window.
func (p *Proposal) VotingOpen(now time.Time) bool {
	return !now.After(p.VotingDeadline)
}

// FundingComplete reports whether the target amount has been raised exactly.
func (p *Proposal) FundingComplete() bool {
	return p.TotalInvested.Equal(p.Requirement.TargetAmount)
}

// FundingExpired reports whether a funding deadline exists and has passed.
func (p *Proposal) FundingExpired(now time.Time) bool {
	return p.FundingDeadline != nil && now.After(*p.FundingDeadline)
}

// Sequence hands out monotonically increasing identifiers per name.
type Sequence struct {
	Name string `gorm:"column:name;primaryKey;type:varchar(64)"`
	Next uint64 `gorm:"column:next;not null"`
}

func (Sequence) TableName() string {
	return "sequences"
}
