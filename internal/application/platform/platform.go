// Package platform assembles the launchpad services over one database and one executor.
package platform

import (
	"time"

	"launchpad-backend/internal/application/auth"
	"launchpad-backend/internal/application/escrow"
	"launchpad-backend/internal/application/events"
	"launchpad-backend/internal/application/ledger"
	"launchpad-backend/internal/application/liquidity"
	"launchpad-backend/internal/application/minting"
	"launchpad-backend/internal/application/registry"
	"launchpad-backend/internal/application/txn"
	"launchpad-backend/internal/application/vesting"
	"launchpad-backend/internal/application/voting"
	"launchpad-backend/internal/clock"
	"launchpad-backend/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Settings struct {
	VotingPeriod    time.Duration
	Quorum          decimal.Decimal
	VoteWeightToken string

	Policy        domain.MintPolicy
	FundingPeriod time.Duration
	MaxPageSize   int

	LaunchpadAccount string
	EscrowAccount    string
	VestingAccount   string
	TreasuryAccount  string
	VaultAccount     string

	InvestorCliff    time.Duration
	InvestorDuration time.Duration
	OwnerCliff       time.Duration
	OwnerDuration    time.Duration
}

// DefaultSettings mirrors the configuration defaults.
func DefaultSettings() Settings {
	day := 24 * time.Hour
	return Settings{
		VotingPeriod:     5 * time.Minute,
		Quorum:           decimal.Zero,
		Policy:           domain.MintExact,
		MaxPageSize:      registry.DefaultMaxPageSize,
		LaunchpadAccount: "launchpad",
		EscrowAccount:    "escrow",
		VestingAccount:   "vesting",
		TreasuryAccount:  "treasury",
		VaultAccount:     "lp-vault",
		InvestorCliff:    day,
		InvestorDuration: 10 * day,
		OwnerCliff:       3 * day,
		OwnerDuration:    10 * day,
	}
}

type Platform struct {
	DB        *gorm.DB
	Exec      *txn.Executor
	Clock     clock.Clock
	Events    *events.Service
	Ledger    *ledger.Service
	Liquidity *liquidity.Service
	Registry  *registry.Service
	Voting    *voting.Service
	Escrow    *escrow.Service
	Vesting   *vesting.Service
	Minting   *minting.Service
	Auth      *auth.Service
}

// New wires every service. rdb may be nil, in which case events are only stored.
func New(db *gorm.DB, rdb *redis.Client, clk clock.Clock, st Settings) (*Platform, error) {
	exec := txn.NewExecutor(db)
	ev := &events.Service{DB: db}
	if rdb != nil {
		ev.Publisher = events.NewRedisPublisher(rdb)
	}
	led := &ledger.Service{DB: db, Exec: exec, Custody: []string{
		st.LaunchpadAccount, st.EscrowAccount, st.VestingAccount, st.TreasuryAccount, st.VaultAccount,
	}}
	liq := &liquidity.Service{DB: db, Funds: led}
	reg := &registry.Service{
		DB:     db,
		Exec:   exec,
		Clock:  clk,
		Events: ev,
		Settings: registry.Settings{
			VotingPeriod:  st.VotingPeriod,
			FundingPeriod: st.FundingPeriod,
			MaxPageSize:   st.MaxPageSize,
		},
	}

	var weights voting.WeightSource = voting.FlatWeight{}
	if st.VoteWeightToken != "" {
		weights = voting.BalanceWeight{Token: st.VoteWeightToken, Balances: led}
	}
	vote := &voting.Service{DB: db, Exec: exec, Clock: clk, Registry: reg, Events: ev, Weights: weights, Quorum: st.Quorum}
	esc := &escrow.Service{DB: db, Exec: exec, Clock: clk, Registry: reg, Events: ev, Currency: led, Account: st.EscrowAccount, Policy: st.Policy}
	vest := &vesting.Service{DB: db, Exec: exec, Clock: clk, Events: ev, Payout: led, Account: st.VestingAccount}
	mint := &minting.Service{
		Exec:     exec,
		Clock:    clk,
		Registry: reg,
		Escrow:   esc,
		Vesting:  vest,
		Events:   ev,
		Settings: minting.Settings{
			Policy:           st.Policy,
			Account:          st.LaunchpadAccount,
			VaultAccount:     st.VaultAccount,
			VestingAccount:   st.VestingAccount,
			InvestorCliff:    st.InvestorCliff,
			InvestorDuration: st.InvestorDuration,
			OwnerCliff:       st.OwnerCliff,
			OwnerDuration:    st.OwnerDuration,
		},
	}
	if err := mint.SetTokenMinter(led); err != nil {
		return nil, err
	}
	if err := mint.SetPositionManager(liq); err != nil {
		return nil, err
	}
	if err := mint.SetTreasury(led, st.TreasuryAccount); err != nil {
		return nil, err
	}

	return &Platform{
		DB:        db,
		Exec:      exec,
		Clock:     clk,
		Events:    ev,
		Ledger:    led,
		Liquidity: liq,
		Registry:  reg,
		Voting:    vote,
		Escrow:    esc,
		Vesting:   vest,
		Minting:   mint,
		Auth:      &auth.Service{DB: db, Reserved: led.IsCustody},
	}, nil
}
