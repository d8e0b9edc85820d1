package voting

import (
	votesvc "launchpad-backend/internal/application/voting"
	"launchpad-backend/internal/interfaces/handlers/apiutil"
	"launchpad-backend/internal/middleware"
	"launchpad-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *votesvc.Service
}

// VoteRequest body; support is required.
type VoteRequest struct {
	Support *bool `json:"support"`
}

// POST /api/v1/proposals/:id/vote
func (h *Handlers) Vote(c *fiber.Ctx) error {
	id, err := apiutil.ProposalID(c)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	var req VoteRequest
	if err := c.BodyParser(&req); err != nil || req.Support == nil {
		return response.Error(c, "support is required", fiber.StatusBadRequest, nil)
	}
	v, err := h.Service.Vote(c.Context(), id, *req.Support, middleware.CurrentAddress(c))
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.SuccessCreated(c, "Vote cast", v, nil)
}

// POST /api/v1/proposals/:id/finalize
func (h *Handlers) Finalize(c *fiber.Ctx) error {
	id, err := apiutil.ProposalID(c)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	passed, err := h.Service.Finalize(c.Context(), id, middleware.CurrentAddress(c))
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Voting finalized", fiber.Map{"id": id, "passed": passed}, nil)
}

// GET /api/v1/proposals/:id/passed
func (h *Handlers) IsPassed(c *fiber.Ctx) error {
	id, err := apiutil.ProposalID(c)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	passed, err := h.Service.IsPassed(c.Context(), id)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Voting outcome fetched", fiber.Map{"id": id, "passed": passed}, nil)
}

// GET /api/v1/proposals/:id/votes/:account
func (h *Handlers) GetVote(c *fiber.Ctx) error {
	id, err := apiutil.ProposalID(c)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	v, err := h.Service.GetVote(c.Context(), id, c.Params("account"))
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Vote fetched", v, nil)
}
