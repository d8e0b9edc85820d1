package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func req(l, i, o, t uint32) Requirement {
	return Requirement{
		CurrencyToken: "USDC",
		TargetAmount:  decimal.NewFromInt(10000),
		LiquidityRate: l,
		InvestorRate:  i,
		OwnerRate:     o,
		TreasuryRate:  t,
	}
}

func TestRequirementValidate(t *testing.T) {
	assert.NoError(t, req(2000, 3000, 1000, 4000).Validate())
	assert.NoError(t, req(10000, 0, 0, 0).Validate())
	assert.ErrorIs(t, req(2000, 3000, 1000, 1000).Validate(), ErrInvalidRequirement)
	assert.ErrorIs(t, req(2000, 3000, 1000, 3999).Validate(), ErrInvalidRequirement)
	assert.ErrorIs(t, req(2000, 3000, 1000, 4001).Validate(), ErrInvalidRequirement)
	assert.ErrorIs(t, req(10001, 0, 0, 0).Validate(), ErrInvalidRequirement)

	r := req(2000, 3000, 1000, 4000)
	r.CurrencyToken = " "
	assert.ErrorIs(t, r.Validate(), ErrInvalidRequirement)

	r = req(2000, 3000, 1000, 4000)
	r.TargetAmount = decimal.Zero
	assert.ErrorIs(t, r.Validate(), ErrInvalidRequirement)
}

func TestSplit_ConservesSupply(t *testing.T) {
	supply := decimal.NewFromInt(1000000)
	a := req(2000, 3000, 1000, 4000).Split(supply)
	assert.True(t, a.Investor.Equal(decimal.NewFromInt(300000)))
	assert.True(t, a.Owner.Equal(decimal.NewFromInt(100000)))
	assert.True(t, a.Treasury.Equal(decimal.NewFromInt(400000)))
	assert.True(t, a.Liquidity.Equal(decimal.NewFromInt(200000)))

	odd := decimal.NewFromInt(999)
	b := req(3333, 3333, 3333, 1).Split(odd)
	assert.True(t, b.Total().Equal(odd))
	assert.True(t, b.Investor.Equal(decimal.NewFromInt(332)))
	assert.True(t, b.Liquidity.Equal(decimal.NewFromInt(335)))
}

func TestVestingSchedule_Releasable(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	v := VestingSchedule{
		TotalEntitlement: decimal.NewFromInt(1000),
		Released:         decimal.Zero,
		Start:            start,
		CliffSeconds:     100,
		DurationSeconds:  1000,
	}
	assert.True(t, v.Releasable(start.Add(99*time.Second)).IsZero())
	assert.True(t, v.Releasable(start.Add(100*time.Second)).Equal(decimal.NewFromInt(100)))
	assert.True(t, v.Releasable(start.Add(500*time.Second)).Equal(decimal.NewFromInt(500)))
	assert.True(t, v.Releasable(start.Add(1000*time.Second)).Equal(decimal.NewFromInt(1000)))
	assert.True(t, v.Releasable(start.Add(5000*time.Second)).Equal(decimal.NewFromInt(1000)))

	v.Released = decimal.NewFromInt(600)
	assert.True(t, v.Releasable(start.Add(500*time.Second)).IsZero())
	assert.True(t, v.Releasable(start.Add(2000*time.Second)).Equal(decimal.NewFromInt(400)))

	prev := decimal.Zero
	v.Released = decimal.Zero
	for s := 0; s <= 1200; s += 37 {
		cur := v.Releasable(start.Add(time.Duration(s) * time.Second))
		assert.True(t, cur.GreaterThanOrEqual(prev))
		prev = cur
	}
}

func TestFundingSatisfied(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	deadline := now.Add(-time.Second)
	p := Proposal{Requirement: req(2000, 3000, 1000, 4000), TotalInvested: decimal.NewFromInt(400), FundingDeadline: &deadline}

	assert.False(t, p.FundingSatisfied(MintExact, now))
	assert.True(t, p.FundingSatisfied(MintDeadline, now))

	p.TotalInvested = decimal.Zero
	assert.False(t, p.FundingSatisfied(MintDeadline, now))

	p.TotalInvested = decimal.NewFromInt(10000)
	assert.True(t, p.FundingSatisfied(MintExact, now))
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("in-process")
	assert.True(t, ok)
	assert.Equal(t, StatusInProcess, s)
	_, ok = ParseStatus("pending")
	assert.False(t, ok)
}
