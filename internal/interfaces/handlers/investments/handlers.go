package investments

import (
	"launchpad-backend/internal/application/escrow"
	"launchpad-backend/internal/interfaces/handlers/apiutil"
	"launchpad-backend/internal/middleware"
	"launchpad-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service *escrow.Service
}

// InvestRequest body. The caller must have approved the escrow account beforehand.
type InvestRequest struct {
	CurrencyToken string          `json:"currency_token"`
	Amount        decimal.Decimal `json:"amount"`
}

// POST /api/v1/proposals/:id/invest
func (h *Handlers) Invest(c *fiber.Ctx) error {
	id, err := apiutil.ProposalID(c)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	var req InvestRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	inv, err := h.Service.Invest(c.Context(), id, req.CurrencyToken, req.Amount, middleware.CurrentAddress(c))
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.SuccessCreated(c, "Investment received", inv, nil)
}

// POST /api/v1/proposals/:id/refund
func (h *Handlers) Refund(c *fiber.Ctx) error {
	id, err := apiutil.ProposalID(c)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	amount, err := h.Service.Refund(c.Context(), id, middleware.CurrentAddress(c))
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Investment refunded", fiber.Map{"id": id, "amount": amount}, nil)
}

// POST /api/v1/proposals/:id/expire
func (h *Handlers) ExpireFunding(c *fiber.Ctx) error {
	id, err := apiutil.ProposalID(c)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	if err := h.Service.ExpireFunding(c.Context(), id, middleware.CurrentAddress(c)); err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Funding expired", fiber.Map{"id": id}, nil)
}

// GET /api/v1/proposals/:id/contributions
func (h *Handlers) ListContributions(c *fiber.Ctx) error {
	id, err := apiutil.ProposalID(c)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	list, err := h.Service.ListContributions(c.Context(), id)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Contributions fetched", list, nil)
}

// GET /api/v1/proposals/:id/contributions/:account
func (h *Handlers) GetContribution(c *fiber.Ctx) error {
	id, err := apiutil.ProposalID(c)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	inv, err := h.Service.GetContribution(c.Context(), id, c.Params("account"))
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Contribution fetched", inv, nil)
}
