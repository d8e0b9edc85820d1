package vesting_test

import (
	"context"
	"testing"
	"time"

	"launchpad-backend/internal/application/platform"
	"launchpad-backend/internal/application/txn"
	"launchpad-backend/internal/application/vesting"
	"launchpad-backend/internal/clock"
	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/infrastructure/database"
	"launchpad-backend/internal/pkg/capability"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func setupVestingTest(t *testing.T) (*platform.Platform, *clock.Manual) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	clk := clock.NewManual(t0)
	p, err := platform.New(db, nil, clk, platform.DefaultSettings())
	require.NoError(t, err)
	// custody holds the tokens to be released
	require.NoError(t, p.Ledger.Faucet(context.Background(), "TOK", "vesting", d(1000000)))
	return p, clk
}

func schedule(p *platform.Platform, caller capability.Component, beneficiary, kind string, amount int64, terms vesting.Terms) error {
	return p.Exec.Run(context.Background(), func(tx *gorm.DB, _ *txn.Hooks) error {
		_, err := p.Vesting.Schedule(tx, caller, beneficiary, 0, "TOK", kind, d(amount), terms)
		return err
	})
}

func TestSchedule_OncePerBeneficiaryAndKind(t *testing.T) {
	p, _ := setupVestingTest(t)
	terms := vesting.Terms{Start: t0, Cliff: time.Hour, Duration: 10 * time.Hour}

	require.NoError(t, schedule(p, capability.Minting, "bob", domain.VestingKindInvestor, 1000, terms))
	assert.ErrorIs(t, schedule(p, capability.Minting, "bob", domain.VestingKindInvestor, 1000, terms), vesting.ErrScheduleExists)
	require.NoError(t, schedule(p, capability.Minting, "bob", domain.VestingKindOwner, 500, terms))

	assert.ErrorIs(t, schedule(p, capability.Escrow, "carol", domain.VestingKindInvestor, 1000, terms), capability.ErrUnauthorizedCaller)
	assert.ErrorIs(t, schedule(p, capability.Minting, "carol", domain.VestingKindInvestor, 0, terms), vesting.ErrInvalidSchedule)
	bad := vesting.Terms{Start: t0, Cliff: 2 * time.Hour, Duration: time.Hour}
	assert.ErrorIs(t, schedule(p, capability.Minting, "carol", domain.VestingKindInvestor, 10, bad), vesting.ErrInvalidSchedule)

	list, err := p.Vesting.GetSchedules(context.Background(), "bob", 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRelease_Scenario(t *testing.T) {
	p, clk := setupVestingTest(t)
	ctx := context.Background()
	terms := vesting.Terms{Start: t0, Cliff: 24 * time.Hour, Duration: 240 * time.Hour}
	require.NoError(t, schedule(p, capability.Minting, "bob", domain.VestingKindInvestor, 300000, terms))

	// before the cliff
	clk.Set(t0.Add(23 * time.Hour))
	r, err := p.Vesting.GetReleasable(ctx, "bob", 0, clk.Now())
	require.NoError(t, err)
	assert.True(t, r.IsZero())
	_, err = p.Vesting.Release(ctx, 0, "bob")
	assert.ErrorIs(t, err, vesting.ErrNothingToRelease)

	// at the cliff: linear share of elapsed time
	clk.Set(t0.Add(24 * time.Hour))
	got, err := p.Vesting.Release(ctx, 0, "bob")
	require.NoError(t, err)
	assert.True(t, got.Equal(d(30000)))

	// same instant again
	_, err = p.Vesting.Release(ctx, 0, "bob")
	assert.ErrorIs(t, err, vesting.ErrNothingToRelease)

	clk.Set(t0.Add(120 * time.Hour))
	got, err = p.Vesting.Release(ctx, 0, "bob")
	require.NoError(t, err)
	assert.True(t, got.Equal(d(120000)))

	// well after the end
	clk.Set(t0.Add(1000 * time.Hour))
	got, err = p.Vesting.Release(ctx, 0, "bob")
	require.NoError(t, err)
	assert.True(t, got.Equal(d(150000)))

	list, err := p.Vesting.GetSchedules(ctx, "bob", 0)
	require.NoError(t, err)
	assert.True(t, list[0].Released.Equal(list[0].TotalEntitlement))

	bal, _ := p.Ledger.BalanceOf(ctx, "TOK", "bob")
	assert.True(t, bal.Equal(d(300000)))

	_, err = p.Vesting.Release(ctx, 0, "bob")
	assert.ErrorIs(t, err, vesting.ErrNothingToRelease)
}

func TestGetReleasable_Monotonic(t *testing.T) {
	p, _ := setupVestingTest(t)
	ctx := context.Background()
	terms := vesting.Terms{Start: t0, Cliff: 3 * time.Hour, Duration: 17 * time.Hour}
	require.NoError(t, schedule(p, capability.Minting, "bob", domain.VestingKindInvestor, 77777, terms))

	prev := decimal.Zero
	for m := 0; m <= 20*60; m += 13 {
		r, err := p.Vesting.GetReleasable(ctx, "bob", 0, t0.Add(time.Duration(m)*time.Minute))
		require.NoError(t, err)
		assert.True(t, r.GreaterThanOrEqual(prev))
		assert.True(t, r.LessThanOrEqual(d(77777)))
		prev = r
	}
	assert.True(t, prev.Equal(d(77777)))
}

func TestRelease_UnknownSchedule(t *testing.T) {
	p, _ := setupVestingTest(t)
	_, err := p.Vesting.Release(context.Background(), 5, "nobody")
	assert.ErrorIs(t, err, vesting.ErrScheduleNotFound)
}
