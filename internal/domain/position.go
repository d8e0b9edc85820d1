package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pool is the liquidity pool of an ordered token pair (TokenA < TokenB).
type Pool struct {
	ID       uint            `gorm:"column:id;primaryKey" json:"id"`
	TokenA   string          `gorm:"column:token_a;type:varchar(128);not null;uniqueIndex:idx_pools_pair,priority:1" json:"token_a"`
	TokenB   string          `gorm:"column:token_b;type:varchar(128);not null;uniqueIndex:idx_pools_pair,priority:2" json:"token_b"`
	Account  string          `gorm:"column:account;type:varchar(128);not null" json:"account"`
	ReserveA decimal.Decimal `gorm:"column:reserve_a;type:varchar(80);not null" json:"reserve_a"`
	ReserveB decimal.Decimal `gorm:"column:reserve_b;type:varchar(80);not null" json:"reserve_b"`
}

func (Pool) TableName() string {
	return "pools"
}

// Position is a liquidity position held by the LP vault.
type Position struct {
	ID       string          `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	PoolID   uint            `gorm:"column:pool_id;not null;index" json:"pool_id"`
	Owner    string          `gorm:"column:owner;type:varchar(128);not null;index" json:"owner"`
	TokenA   string          `gorm:"column:token_a;type:varchar(128);not null" json:"token_a"`
	TokenB   string          `gorm:"column:token_b;type:varchar(128);not null" json:"token_b"`
	AmountA  decimal.Decimal `gorm:"column:amount_a;type:varchar(80);not null" json:"amount_a"`
	AmountB  decimal.Decimal `gorm:"column:amount_b;type:varchar(80);not null" json:"amount_b"`
	OpenedAt time.Time       `gorm:"column:opened_at;not null" json:"opened_at"`
}

func (Position) TableName() string {
	return "positions"
}
