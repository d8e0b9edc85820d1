package minting

import (
	mintsvc "launchpad-backend/internal/application/minting"
	"launchpad-backend/internal/interfaces/handlers/apiutil"
	"launchpad-backend/internal/middleware"
	"launchpad-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *mintsvc.Service
}

// MintRequest body: the proposal ids of the batch.
type MintRequest struct {
	IDs []uint64 `json:"ids"`
}

// POST /api/v1/minting/mint
// A batch always answers 200 with one result per id. A single-id request that fails
// answers with that id's error status instead.
func (h *Handlers) Mint(c *fiber.Ctx) error {
	var req MintRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	results, err := h.Service.Mint(c.Context(), req.IDs, middleware.CurrentAddress(c))
	if err != nil {
		return apiutil.Fail(c, err)
	}
	if len(results) == 1 && results[0].Err != nil {
		return apiutil.Fail(c, results[0].Err)
	}
	minted := 0
	for _, r := range results {
		if r.Minted {
			minted++
		}
	}
	return response.Success(c, "Mint processed", results, fiber.Map{
		"requested": len(results),
		"minted":    minted,
	})
}
