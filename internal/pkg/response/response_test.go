package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errMissing = errors.New("missing")
	errOuter   = errors.New("outer")
)

func decode(t *testing.T, body io.Reader) ErrorBody {
	t.Helper()
	var out ErrorBody
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestErrorFrom(t *testing.T) {
	codes := []Code{
		{errOuter, fiber.StatusBadGateway},
		{errMissing, fiber.StatusNotFound},
	}
	app := fiber.New()
	app.Get("/missing", func(c *fiber.Ctx) error {
		return ErrorFrom(c, fmt.Errorf("load: %w", errMissing), codes)
	})
	app.Get("/both", func(c *fiber.Ctx) error {
		return ErrorFrom(c, fmt.Errorf("%w: %w", errOuter, errMissing), codes)
	})
	app.Get("/other", func(c *fiber.Ctx) error {
		return ErrorFrom(c, errors.New("db exploded"), codes)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	body := decode(t, resp.Body)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "load: missing", body.Error.Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/both", nil))
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/other", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, "Internal Server Error", decode(t, resp.Body).Error.Message)
}

func TestSuccess_DefaultsMetadata(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Success(c, "ok", []int{1}, nil)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, map[string]interface{}{}, body["metadata"])
}
