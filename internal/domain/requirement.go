package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// BasisPoints is the denominator every rate is expressed against.
const BasisPoints = 10000

var bps = decimal.NewFromInt(BasisPoints)

var (
	ErrInvalidRequirement = errors.New("Invalid requirement")
	ErrInvalidMetadata    = errors.New("Invalid metadata")
)

// Requirement is the funding target and the allocation table of a proposal.
type Requirement struct {
	CurrencyToken string          `gorm:"column:currency_token;type:varchar(128);not null" json:"currency_token"`
	TargetAmount  decimal.Decimal `gorm:"column:target_amount;type:varchar(80);not null" json:"target_amount"`
	LiquidityRate uint32          `gorm:"column:liquidity_rate;not null" json:"liquidity_rate"`
	InvestorRate  uint32          `gorm:"column:investor_rate;not null" json:"investor_rate"`
	OwnerRate     uint32          `gorm:"column:owner_rate;not null" json:"owner_rate"`
	TreasuryRate  uint32          `gorm:"column:treasury_rate;not null" json:"treasury_rate"`
}

// ValidateRates checks each rate is within [0, 10000] and that together they make exactly 10000.
func ValidateRates(rates ...uint32) error {
	var sum uint64
	for _, r := range rates {
		if r > BasisPoints {
			return ErrInvalidRequirement
		}
		sum += uint64(r)
	}
	if sum != BasisPoints {
		return ErrInvalidRequirement
	}
	return nil
}

func (r Requirement) Validate() error {
	if strings.TrimSpace(r.CurrencyToken) == "" || !IsWholeAmount(r.TargetAmount) {
		return ErrInvalidRequirement
	}
	return ValidateRates(r.LiquidityRate, r.InvestorRate, r.OwnerRate, r.TreasuryRate)
}

// Allocation is the split of a token supply across the four buckets.
type Allocation struct {
	Liquidity decimal.Decimal `json:"liquidity"`
	Investor  decimal.Decimal `json:"investor"`
	Owner     decimal.Decimal `json:"owner"`
	Treasury  decimal.Decimal `json:"treasury"`
}

// Split divides supply by the rate table. Integer-division remainders go to the liquidity share,
// so the four shares always add up to supply.
func (r Requirement) Split(supply decimal.Decimal) Allocation {
	investor := Share(supply, r.InvestorRate)
	owner := Share(supply, r.OwnerRate)
	treasury := Share(supply, r.TreasuryRate)
	return Allocation{
		Liquidity: supply.Sub(investor).Sub(owner).Sub(treasury),
		Investor:  investor,
		Owner:     owner,
		Treasury:  treasury,
	}
}

// Share returns floor(amount * rate / 10000).
func Share(amount decimal.Decimal, rate uint32) decimal.Decimal {
	q, _ := amount.Mul(decimal.NewFromInt(int64(rate))).QuoRem(bps, 0)
	return q
}

// Total adds the four shares.
func (a Allocation) Total() decimal.Decimal {
	return a.Liquidity.Add(a.Investor).Add(a.Owner).Add(a.Treasury)
}

// IsWholeAmount reports whether d is a strictly positive whole number of base units.
func IsWholeAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Truncate(0))
}
