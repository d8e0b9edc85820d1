package vesting

import (
	vestsvc "launchpad-backend/internal/application/vesting"
	"launchpad-backend/internal/clock"
	"launchpad-backend/internal/interfaces/handlers/apiutil"
	"launchpad-backend/internal/middleware"
	"launchpad-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *vestsvc.Service
	Clock   clock.Clock
}

// beneficiary is the ?beneficiary= query or, when absent, the session account.
func beneficiary(c *fiber.Ctx) string {
	if b := c.Query("beneficiary"); b != "" {
		return b
	}
	return middleware.CurrentAddress(c)
}

// POST /api/v1/vesting/:id/release
func (h *Handlers) Release(c *fiber.Ctx) error {
	id, err := apiutil.ProposalID(c)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	amount, err := h.Service.Release(c.Context(), id, middleware.CurrentAddress(c))
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Tokens released", fiber.Map{"id": id, "amount": amount}, nil)
}

// GET /api/v1/vesting/:id/releasable
func (h *Handlers) Releasable(c *fiber.Ctx) error {
	id, err := apiutil.ProposalID(c)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	who := beneficiary(c)
	amount, err := h.Service.GetReleasable(c.Context(), who, id, h.Clock.Now())
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Releasable amount fetched", fiber.Map{
		"id":          id,
		"beneficiary": who,
		"amount":      amount,
	}, nil)
}

// GET /api/v1/vesting/:id/schedules
func (h *Handlers) Schedules(c *fiber.Ctx) error {
	id, err := apiutil.ProposalID(c)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	if c.Query("beneficiary") == "" && c.Query("all") == "true" {
		list, err := h.Service.ListByProposal(c.Context(), id)
		if err != nil {
			return apiutil.Fail(c, err)
		}
		return response.Success(c, "Schedules fetched", list, nil)
	}
	list, err := h.Service.GetSchedules(c.Context(), beneficiary(c), id)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Schedules fetched", list, nil)
}

// GET /api/v1/vesting/mine
func (h *Handlers) Mine(c *fiber.Ctx) error {
	list, err := h.Service.ListByBeneficiary(c.Context(), middleware.CurrentAddress(c))
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Schedules fetched", list, nil)
}
