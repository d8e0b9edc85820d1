// Package handlertest builds a wired platform and a fiber app for handler tests.
package handlertest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"launchpad-backend/internal/application/platform"
	"launchpad-backend/internal/application/registry"
	"launchpad-backend/internal/clock"
	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/infrastructure/database"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Start is the manual clock's initial time.
var Start = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// Currency is the reference currency of proposals created by CreateProposal.
const Currency = "USDC"

// NewPlatform wires every service over an in-memory database without Redis.
func NewPlatform(t *testing.T, mutate func(*platform.Settings)) (*platform.Platform, *clock.Manual) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	clk := clock.NewManual(Start)
	st := platform.DefaultSettings()
	if mutate != nil {
		mutate(&st)
	}
	p, err := platform.New(db, nil, clk, st)
	require.NoError(t, err)
	return p, clk
}

// NewApp returns a fiber app whose requests carry the given session account.
// An empty address means an anonymous request.
func NewApp(address, role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if address != "" {
			c.Locals("user", map[string]interface{}{"address": address, "role": role})
		}
		return c.Next()
	})
	return app
}

// Response is a decoded standard envelope.
type Response struct {
	Status int
	Body   map[string]interface{}
}

// Data returns body.data as an object.
func (r Response) Data() map[string]interface{} {
	m, _ := r.Body["data"].(map[string]interface{})
	return m
}

// List returns body.data as an array.
func (r Response) List() []interface{} {
	l, _ := r.Body["data"].([]interface{})
	return l
}

// Message returns body.error.message, or body.message on success.
func (r Response) Message() string {
	if e, ok := r.Body["error"].(map[string]interface{}); ok {
		s, _ := e["message"].(string)
		return s
	}
	s, _ := r.Body["message"].(string)
	return s
}

// Do sends a request with an optional JSON body.
func Do(t *testing.T, app *fiber.App, method, path string, body interface{}) Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := Response{Status: resp.StatusCode}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out.Body), string(raw))
	}
	return out
}

// Metadata is a valid proposal description with a supply of 1,000,000.
func Metadata(symbol string) registry.Metadata {
	return registry.Metadata{
		Name:   "Token " + symbol,
		Symbol: symbol,
		Supply: decimal.NewFromInt(1000000),
		Story:  "launch story",
	}
}

// Requirement targets 10,000 USDC with rates 2000/3000/1000/4000.
func Requirement() domain.Requirement {
	return domain.Requirement{
		CurrencyToken: Currency,
		TargetAmount:  decimal.NewFromInt(10000),
		LiquidityRate: 2000,
		InvestorRate:  3000,
		OwnerRate:     1000,
		TreasuryRate:  4000,
	}
}

// CreateProposal creates a proposal owned by creator.
func CreateProposal(t *testing.T, p *platform.Platform, creator, symbol string) uint64 {
	t.Helper()
	id, err := p.Registry.Create(context.Background(), creator, Metadata(symbol), Requirement())
	require.NoError(t, err)
	return id
}

// Approve votes for id with voter and finalizes it once the voting window closed.
func Approve(t *testing.T, p *platform.Platform, clk *clock.Manual, id uint64, voter string) {
	t.Helper()
	ctx := context.Background()
	_, err := p.Voting.Vote(ctx, id, true, voter)
	require.NoError(t, err)
	prop, err := p.Registry.Get(ctx, id)
	require.NoError(t, err)
	clk.Set(prop.VotingDeadline.Add(time.Second))
	passed, err := p.Voting.Finalize(ctx, id, voter)
	require.NoError(t, err)
	require.True(t, passed)
}

// Fund gives account amount of the currency, approves escrow and invests it in id.
func Fund(t *testing.T, p *platform.Platform, id uint64, account string, amount int64) {
	t.Helper()
	ctx := context.Background()
	amt := decimal.NewFromInt(amount)
	require.NoError(t, p.Ledger.Faucet(ctx, Currency, account, amt))
	require.NoError(t, p.Ledger.Approve(ctx, Currency, account, p.Escrow.Account, amt))
	_, err := p.Escrow.Invest(ctx, id, Currency, amt, account)
	require.NoError(t, err)
}
