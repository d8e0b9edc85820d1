package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Token is a fungible asset known to the ledger.
type Token struct {
	Address    string          `gorm:"column:address;type:varchar(128);primaryKey" json:"address"`
	Name       string          `gorm:"column:name;not null" json:"name"`
	Symbol     string          `gorm:"column:symbol;type:varchar(32);not null" json:"symbol"`
	Supply     decimal.Decimal `gorm:"column:supply;type:varchar(80);not null" json:"supply"`
	ProposalID *uint64         `gorm:"column:proposal_id" json:"proposal_id,omitempty"`
	CreatedAt  time.Time       `gorm:"column:created_at" json:"created_at"`
}

func (Token) TableName() string {
	return "tokens"
}

// Balance is the holding of one account in one token.
type Balance struct {
	ID      uint            `gorm:"column:id;primaryKey" json:"-"`
	Token   string          `gorm:"column:token;type:varchar(128);not null;uniqueIndex:idx_balances_token_account,priority:1" json:"token"`
	Account string          `gorm:"column:account;type:varchar(128);not null;uniqueIndex:idx_balances_token_account,priority:2" json:"account"`
	Amount  decimal.Decimal `gorm:"column:amount;type:varchar(80);not null" json:"amount"`
}

func (Balance) TableName() string {
	return "balances"
}

// Allowance is how much Spender may move out of Owner's balance.
type Allowance struct {
	ID      uint            `gorm:"column:id;primaryKey" json:"-"`
	Token   string          `gorm:"column:token;type:varchar(128);not null;uniqueIndex:idx_allowances_key,priority:1" json:"token"`
	Owner   string          `gorm:"column:owner;type:varchar(128);not null;uniqueIndex:idx_allowances_key,priority:2" json:"owner"`
	Spender string          `gorm:"column:spender;type:varchar(128);not null;uniqueIndex:idx_allowances_key,priority:3" json:"spender"`
	Amount  decimal.Decimal `gorm:"column:amount;type:varchar(80);not null" json:"amount"`
}

func (Allowance) TableName() string {
	return "allowances"
}
