package ledger

import (
	"context"
	"testing"

	"launchpad-backend/internal/application/txn"
	"launchpad-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupLedgerTest(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.Token{}, &domain.Balance{}, &domain.Allowance{}))
	return &Service{DB: db, Exec: txn.NewExecutor(db)}
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestFaucetAndSend(t *testing.T) {
	s := setupLedgerTest(t)
	ctx := context.Background()

	require.NoError(t, s.Faucet(ctx, "USDC", "alice", d(500)))
	require.NoError(t, s.Send(ctx, "USDC", "alice", "bob", d(200)))

	a, _ := s.BalanceOf(ctx, "USDC", "alice")
	b, _ := s.BalanceOf(ctx, "USDC", "bob")
	assert.True(t, a.Equal(d(300)))
	assert.True(t, b.Equal(d(200)))

	tok, err := s.GetToken(ctx, "USDC")
	require.NoError(t, err)
	assert.True(t, tok.Supply.Equal(d(500)))

	err = s.Send(ctx, "USDC", "bob", "alice", d(201))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	b, _ = s.BalanceOf(ctx, "USDC", "bob")
	assert.True(t, b.Equal(d(200)))
}

func TestTransferFrom_ConsumesAllowance(t *testing.T) {
	s := setupLedgerTest(t)
	ctx := context.Background()
	require.NoError(t, s.Faucet(ctx, "USDC", "alice", d(100)))
	require.NoError(t, s.Approve(ctx, "USDC", "alice", "escrow", d(60)))

	err := s.Exec.Run(ctx, func(tx *gorm.DB, _ *txn.Hooks) error {
		return s.TransferFrom(tx, "USDC", "escrow", "alice", "escrow", d(50))
	})
	require.NoError(t, err)

	left, _ := s.AllowanceOf(ctx, "USDC", "alice", "escrow")
	assert.True(t, left.Equal(d(10)))

	err = s.Exec.Run(ctx, func(tx *gorm.DB, _ *txn.Hooks) error {
		return s.TransferFrom(tx, "USDC", "escrow", "alice", "escrow", d(11))
	})
	assert.ErrorIs(t, err, ErrInsufficientAllowance)
}

func TestDeployAndMint(t *testing.T) {
	s := setupLedgerTest(t)
	ctx := context.Background()
	addr := s.AddressOf(3, "abc")
	assert.Equal(t, addr, s.AddressOf(3, "ABC"))
	assert.NotEqual(t, addr, s.AddressOf(4, "ABC"))

	err := s.Exec.Run(ctx, func(tx *gorm.DB, _ *txn.Hooks) error {
		if err := s.Deploy(tx, addr, "Alpha", "ABC", 3); err != nil {
			return err
		}
		return s.Mint(tx, addr, "launchpad", d(1000000))
	})
	require.NoError(t, err)

	err = s.Exec.Run(ctx, func(tx *gorm.DB, _ *txn.Hooks) error {
		return s.Deploy(tx, addr, "Alpha", "ABC", 3)
	})
	assert.ErrorIs(t, err, ErrTokenExists)

	bal, _ := s.BalanceOf(ctx, addr, "launchpad")
	assert.True(t, bal.Equal(d(1000000)))
}

func TestRejectsBadAmounts(t *testing.T) {
	s := setupLedgerTest(t)
	ctx := context.Background()
	assert.ErrorIs(t, s.Faucet(ctx, "USDC", "alice", d(0)), ErrInvalidAmount)
	assert.ErrorIs(t, s.Faucet(ctx, "USDC", "alice", decimal.RequireFromString("1.5")), ErrInvalidAmount)
	assert.ErrorIs(t, s.Send(ctx, "NOPE", "alice", "bob", d(1)), ErrUnknownToken)
	assert.ErrorIs(t, s.Approve(ctx, "USDC", "alice", "bob", d(-1)), ErrInvalidAmount)
}

func TestListBalances_SkipsEmpty(t *testing.T) {
	s := setupLedgerTest(t)
	ctx := context.Background()
	require.NoError(t, s.Faucet(ctx, "USDC", "alice", d(10)))
	require.NoError(t, s.Faucet(ctx, "DAI", "alice", d(5)))
	require.NoError(t, s.Send(ctx, "DAI", "alice", "bob", d(5)))

	list, err := s.ListBalances(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "USDC", list[0].Token)
}

func TestCustodyAccountsCannotSendOrApprove(t *testing.T) {
	s := setupLedgerTest(t)
	s.Custody = []string{"escrow", "treasury"}
	ctx := context.Background()
	require.NoError(t, s.Faucet(ctx, "USDC", "escrow", d(100)))
	require.NoError(t, s.Faucet(ctx, "USDC", "pool:1", d(100)))

	assert.ErrorIs(t, s.Send(ctx, "USDC", "escrow", "mallory", d(100)), ErrCustodyAccount)
	assert.ErrorIs(t, s.Send(ctx, "USDC", "pool:1", "mallory", d(1)), ErrCustodyAccount)
	assert.ErrorIs(t, s.Approve(ctx, "USDC", "escrow", "mallory", d(100)), ErrCustodyAccount)
	assert.ErrorIs(t, s.Approve(ctx, "USDC", "treasury", "mallory", d(1)), ErrCustodyAccount)

	held, err := s.BalanceOf(ctx, "USDC", "escrow")
	require.NoError(t, err)
	assert.True(t, held.Equal(d(100)))

	// custody accounts can still receive and be named as spenders
	require.NoError(t, s.Faucet(ctx, "USDC", "alice", d(10)))
	require.NoError(t, s.Send(ctx, "USDC", "alice", "treasury", d(5)))
	require.NoError(t, s.Approve(ctx, "USDC", "alice", "escrow", d(5)))

	assert.True(t, s.IsCustody(s.AddressOf(7, "ALP")))
	assert.False(t, s.IsCustody("alice"))
}
