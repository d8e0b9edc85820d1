package apiutil

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"launchpad-backend/internal/application/ledger"
	"launchpad-backend/internal/application/minting"
	"launchpad-backend/internal/application/registry"
	"launchpad-backend/internal/pkg/capability"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFail_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", registry.ErrInvalidRequirement, 400},
		{"not found", fmt.Errorf("load: %w", registry.ErrProposalNotFound), 404},
		{"precondition", minting.ErrAlreadyMinted, 409},
		{"capability", fmt.Errorf("%w: mint", capability.ErrUnauthorizedCaller), 403},
		{"collaborator wins over wrapped", fmt.Errorf("%w: open: %w", minting.ErrCollaboratorFailed, ledger.ErrInsufficientBalance), 502},
		{"bad id", errInvalidID, 400},
		{"unknown", fmt.Errorf("disk full"), 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return Fail(c, tc.err) })
			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestProposalIDAndPage(t *testing.T) {
	app := fiber.New()
	app.Get("/p/:id", func(c *fiber.Ctx) error {
		id, err := ProposalID(c)
		if err != nil {
			return Fail(c, err)
		}
		pg := Page(c)
		return c.JSON(fiber.Map{"id": id, "offset": pg.Offset, "limit": pg.Limit})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/p/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/p/7?offset=3", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
