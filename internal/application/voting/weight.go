package voting

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WeightSource supplies the vote weight of an account at the moment it votes.
type WeightSource interface {
	WeightOf(tx *gorm.DB, account string) (decimal.Decimal, error)
}

// FlatWeight gives every account one vote.
type FlatWeight struct{}

func (FlatWeight) WeightOf(_ *gorm.DB, _ string) (decimal.Decimal, error) {
	return decimal.NewFromInt(1), nil
}

// BalanceReader reads a token balance inside a transaction.
type BalanceReader interface {
	BalanceIn(tx *gorm.DB, token, account string) (decimal.Decimal, error)
}

// BalanceWeight weighs a vote by the voter's balance of Token.
type BalanceWeight struct {
	Token    string
	Balances BalanceReader
}

func (w BalanceWeight) WeightOf(tx *gorm.DB, account string) (decimal.Decimal, error) {
	return w.Balances.BalanceIn(tx, w.Token, account)
}
