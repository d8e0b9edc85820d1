package health

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"launchpad-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHealth(t *testing.T) (*fiber.App, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	h := &Handlers{Rdb: rdb, HealthAdminKey: "admin-key"}
	app := fiber.New()
	app.Use(middleware.Tracing())
	app.Use(middleware.HealthMarker(rdb))
	app.Get("/", h.Index)
	app.Get("/reset", h.Reset)
	app.Get("/health/json", h.JSON)
	app.Get("/health/errors", h.Errors)
	app.Get("/boom", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusInternalServerError) })
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app, rdb
}

func TestReset_RequiresKey(t *testing.T) {
	app, _ := setupHealth(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/reset?key=nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/reset?key=admin-key", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHealthMarker_CountsAndLogsErrors(t *testing.T) {
	app, rdb := setupHealth(t)
	for _, p := range []string{"/ok", "/ok", "/boom"} {
		_, err := app.Test(httptest.NewRequest("GET", p, nil))
		require.NoError(t, err)
	}
	ctx := context.Background()
	total, _ := rdb.Get(ctx, middleware.KeyReqTotal).Int()
	assert.Equal(t, 3, total)
	errs, _ := rdb.Get(ctx, middleware.KeyReqErrors).Int()
	assert.Equal(t, 1, errs)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/errors", nil))
	require.NoError(t, err)
	var entries []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "/boom", entries[0]["path"])
	assert.NotEmpty(t, entries[0]["trace_id"])
}

func TestJSON_ReportsTraffic(t *testing.T) {
	app, _ := setupHealth(t)
	_, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, serviceName, body["service"])
	traffic, _ := body["traffic"].(map[string]interface{})
	assert.EqualValues(t, 1, traffic["totalRequests"])
}
