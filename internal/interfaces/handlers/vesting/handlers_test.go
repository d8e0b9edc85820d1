package vesting

import (
	"context"
	"testing"
	"time"

	"launchpad-backend/internal/interfaces/handlers/handlertest"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseFlow(t *testing.T) {
	p, clk := handlertest.NewPlatform(t, nil)
	id := handlertest.CreateProposal(t, p, "alice", "AAA")
	handlertest.Approve(t, p, clk, id, "bob")
	handlertest.Fund(t, p, id, "bob", 10000)
	results, err := p.Minting.Mint(context.Background(), []uint64{id}, "operator")
	require.NoError(t, err)
	require.True(t, results[0].Minted)
	mintedAt := clk.Now()

	h := &Handlers{Service: p.Vesting, Clock: clk}
	mount := func(app *fiber.App) *fiber.App {
		app.Get("/vesting/mine", h.Mine)
		app.Post("/vesting/:id/release", h.Release)
		app.Get("/vesting/:id/releasable", h.Releasable)
		app.Get("/vesting/:id/schedules", h.Schedules)
		return app
	}
	bob := mount(handlertest.NewApp("bob", "member"))
	dave := mount(handlertest.NewApp("dave", "member"))

	before := handlertest.Do(t, bob, "GET", "/vesting/0/releasable", nil)
	require.Equal(t, fiber.StatusOK, before.Status)
	assert.Equal(t, "0", before.Data()["amount"])
	assert.Equal(t, fiber.StatusConflict, handlertest.Do(t, bob, "POST", "/vesting/0/release", nil).Status)

	clk.Set(mintedAt.Add(24 * time.Hour))
	first := handlertest.Do(t, bob, "POST", "/vesting/0/release", nil)
	require.Equal(t, fiber.StatusOK, first.Status)
	assert.Equal(t, "30000", first.Data()["amount"])
	assert.Equal(t, fiber.StatusConflict, handlertest.Do(t, bob, "POST", "/vesting/0/release", nil).Status)

	clk.Set(mintedAt.Add(30 * 24 * time.Hour))
	last := handlertest.Do(t, bob, "POST", "/vesting/0/release", nil)
	require.Equal(t, fiber.StatusOK, last.Status)
	assert.Equal(t, "270000", last.Data()["amount"])

	owner := handlertest.Do(t, dave, "GET", "/vesting/0/releasable?beneficiary=alice", nil)
	assert.Equal(t, "100000", owner.Data()["amount"])

	assert.Len(t, handlertest.Do(t, bob, "GET", "/vesting/mine", nil).List(), 1)
	assert.Len(t, handlertest.Do(t, dave, "GET", "/vesting/0/schedules?all=true", nil).List(), 2)
	assert.Equal(t, fiber.StatusNotFound, handlertest.Do(t, dave, "GET", "/vesting/0/schedules", nil).Status)
	assert.Equal(t, fiber.StatusNotFound, handlertest.Do(t, dave, "POST", "/vesting/0/release", nil).Status)
}
