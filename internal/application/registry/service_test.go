package registry_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"launchpad-backend/internal/application/platform"
	"launchpad-backend/internal/application/registry"
	"launchpad-backend/internal/application/txn"
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

func setupRegistryTest(t *testing.T, mutate func(*platform.Settings)) (*platform.Platform, *clock.Manual) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	clk := clock.NewManual(t0)
	st := platform.DefaultSettings()
	if mutate != nil {
		mutate(&st)
	}
	p, err := platform.New(db, nil, clk, st)
	require.NoError(t, err)
	return p, clk
}

func metadata() registry.Metadata {
	return registry.Metadata{
		Name:   "Alpha",
		Symbol: "ALP",
		Supply: decimal.NewFromInt(1000000),
		Story:  "a token",
		SocialChannel: domain.SocialChannel{
			X: "https://x.com/alpha",
		},
	}
}

func requirement(l, i, o, tr uint32) domain.Requirement {
	return domain.Requirement{
		CurrencyToken: "USDC",
		TargetAmount:  decimal.NewFromInt(10000),
		LiquidityRate: l,
		InvestorRate:  i,
		OwnerRate:     o,
		TreasuryRate:  tr,
	}
}

func TestCreate_RateSumScenario(t *testing.T) {
	p, _ := setupRegistryTest(t, nil)
	ctx := context.Background()

	_, err := p.Registry.Create(ctx, "alice", metadata(), requirement(2000, 3000, 1000, 1000))
	assert.ErrorIs(t, err, registry.ErrInvalidRequirement)

	id, err := p.Registry.Create(ctx, "alice", metadata(), requirement(2000, 3000, 1000, 4000))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id)

	id, err = p.Registry.Create(ctx, "bob", metadata(), requirement(2000, 3000, 1000, 4000))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	got, err := p.Registry.Get(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProcess, got.Status)
	assert.Equal(t, "alice", got.Creator)
	assert.True(t, got.VotingDeadline.Equal(t0.Add(5*time.Minute)))
	assert.True(t, got.Supply.Equal(decimal.NewFromInt(1000000)))
	assert.Equal(t, "https://x.com/alpha", got.SocialChannel.X)
}

func TestCreate_InvalidInputLeavesNoTrace(t *testing.T) {
	p, _ := setupRegistryTest(t, nil)
	ctx := context.Background()

	md := metadata()
	md.Name = " "
	_, err := p.Registry.Create(ctx, "alice", md, requirement(2000, 3000, 1000, 4000))
	assert.ErrorIs(t, err, registry.ErrInvalidMetadata)

	md = metadata()
	md.Supply = decimal.Zero
	_, err = p.Registry.Create(ctx, "alice", md, requirement(2000, 3000, 1000, 4000))
	assert.ErrorIs(t, err, registry.ErrInvalidMetadata)

	_, err = p.Registry.Create(ctx, "alice", metadata(), requirement(2000, 3000, 1000, 4001))
	assert.ErrorIs(t, err, registry.ErrInvalidRequirement)

	// ids are not consumed by failed creations
	id, err := p.Registry.Create(ctx, "alice", metadata(), requirement(2000, 3000, 1000, 4000))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id)
}

func TestCreate_EmitsCreationEvent(t *testing.T) {
	p, _ := setupRegistryTest(t, nil)
	ctx := context.Background()
	id, err := p.Registry.Create(ctx, "alice", metadata(), requirement(2000, 3000, 1000, 4000))
	require.NoError(t, err)

	evs, err := p.Events.List(ctx, id, 0, 10)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, domain.EventProposalCreated, evs[0].EventType)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(evs[0].EventData, &data))
	assert.Equal(t, "alice", data["creator"])
	assert.Equal(t, float64(id), data["id"])
}

func TestListByStatus_Pagination(t *testing.T) {
	p, _ := setupRegistryTest(t, func(s *platform.Settings) { s.MaxPageSize = 5 })
	ctx := context.Background()
	const count = 7
	for i := 0; i < count; i++ {
		_, err := p.Registry.Create(ctx, "alice", metadata(), requirement(2000, 3000, 1000, 4000))
		require.NoError(t, err)
	}

	for offset := 0; offset <= count+1; offset++ {
		for limit := 0; limit <= 5; limit++ {
			got, err := p.Registry.ListByStatus(ctx, domain.StatusInProcess, registry.Page{Offset: offset, Limit: limit})
			require.NoError(t, err)
			want := 0
			if offset < count {
				want = limit
				if count-offset < want {
					want = count - offset
				}
			}
			require.Len(t, got, want, "offset=%d limit=%d", offset, limit)
			for i, pr := range got {
				assert.Equal(t, uint64(offset+i), pr.ID)
			}
		}
	}

	capped, err := p.Registry.ListByStatus(ctx, domain.StatusInProcess, registry.Page{Offset: 0, Limit: 50})
	require.NoError(t, err)
	assert.Len(t, capped, 5)

	none, err := p.Registry.ListByStatus(ctx, domain.StatusMinted, registry.Page{Offset: 0, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListByCreatorVotedInvested(t *testing.T) {
	p, clk := setupRegistryTest(t, nil)
	ctx := context.Background()
	a, _ := p.Registry.Create(ctx, "alice", metadata(), requirement(2000, 3000, 1000, 4000))
	b, _ := p.Registry.Create(ctx, "bob", metadata(), requirement(2000, 3000, 1000, 4000))
	c, _ := p.Registry.Create(ctx, "alice", metadata(), requirement(2000, 3000, 1000, 4000))

	mine, err := p.Registry.ListByCreator(ctx, "alice", registry.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, a, mine[0].ID)
	assert.Equal(t, c, mine[1].ID)

	_, err = p.Voting.Vote(ctx, b, true, "carol")
	require.NoError(t, err)
	_, err = p.Voting.Vote(ctx, c, true, "carol")
	require.NoError(t, err)

	voted, err := p.Registry.ListVoted(ctx, "carol", registry.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, voted, 2)
	assert.Equal(t, b, voted[0].ID)

	clk.Advance(6 * time.Minute)
	_, err = p.Voting.Finalize(ctx, b, "carol")
	require.NoError(t, err)

	require.NoError(t, p.Ledger.Faucet(ctx, "USDC", "carol", decimal.NewFromInt(100)))
	require.NoError(t, p.Ledger.Approve(ctx, "USDC", "carol", "escrow", decimal.NewFromInt(100)))
	_, err = p.Escrow.Invest(ctx, b, "USDC", decimal.NewFromInt(100), "carol")
	require.NoError(t, err)

	invested, err := p.Registry.ListInvested(ctx, "carol", registry.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, invested, 1)
	assert.Equal(t, b, invested[0].ID)
	assert.True(t, invested[0].TotalInvested.Equal(decimal.NewFromInt(100)))

	empty, err := p.Registry.ListInvested(ctx, "dave", registry.Page{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTransition_CapabilitiesAndEdges(t *testing.T) {
	p, _ := setupRegistryTest(t, nil)
	ctx := context.Background()
	id, err := p.Registry.Create(ctx, "alice", metadata(), requirement(2000, 3000, 1000, 4000))
	require.NoError(t, err)

	run := func(fn func(tx *gorm.DB) error) error {
		return p.Exec.Run(ctx, func(tx *gorm.DB, _ *txn.Hooks) error { return fn(tx) })
	}
	transition := func(caller capability.Component, to domain.ProposalStatus) error {
		return run(func(tx *gorm.DB) error {
			_, err := p.Registry.Transition(tx, caller, id, to, t0)
			return err
		})
	}

	assert.ErrorIs(t, transition(capability.Escrow, domain.StatusApproved), capability.ErrUnauthorizedCaller)
	assert.ErrorIs(t, transition(capability.Voting, domain.StatusMinted), capability.ErrUnauthorizedCaller)
	assert.ErrorIs(t, transition(capability.Voting, domain.StatusInProcess), registry.ErrInvalidTransition)
	assert.ErrorIs(t, transition(capability.Minting, domain.StatusMinted), registry.ErrInvalidTransition)

	require.NoError(t, transition(capability.Voting, domain.StatusApproved))
	assert.ErrorIs(t, transition(capability.Voting, domain.StatusRejected), registry.ErrInvalidTransition)
	// expiry is disabled without a funding period
	assert.ErrorIs(t, transition(capability.Escrow, domain.StatusRejected), registry.ErrInvalidTransition)

	require.NoError(t, transition(capability.Minting, domain.StatusMinted))
	assert.ErrorIs(t, transition(capability.Minting, domain.StatusMinted), registry.ErrInvalidTransition)

	got, err := p.Registry.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusMinted, got.Status)
	require.NotNil(t, got.MintedAt)

	err = run(func(tx *gorm.DB) error {
		return p.Registry.AddVotes(tx, capability.Escrow, id, true, decimal.NewFromInt(1))
	})
	assert.ErrorIs(t, err, capability.ErrUnauthorizedCaller)
	err = run(func(tx *gorm.DB) error {
		return p.Registry.AddInvested(tx, capability.Voting, id, decimal.NewFromInt(1))
	})
	assert.ErrorIs(t, err, capability.ErrUnauthorizedCaller)
}

func TestGet_NotFound(t *testing.T) {
	p, _ := setupRegistryTest(t, nil)
	_, err := p.Registry.Get(context.Background(), 42)
	assert.ErrorIs(t, err, registry.ErrProposalNotFound)
}
