package proposals

import (
	"context"
	"strings"

	"launchpad-backend/internal/application/events"
	"launchpad-backend/internal/application/liquidity"
	"launchpad-backend/internal/application/registry"
	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/interfaces/handlers/apiutil"
	"launchpad-backend/internal/middleware"
	"launchpad-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Registry  *registry.Service
	Events    *events.Service
	Liquidity *liquidity.Service
}

// CreateRequest is the body of POST /api/v1/proposals.
type CreateRequest struct {
	registry.Metadata
	Requirement domain.Requirement `json:"requirement"`
}

// POST /api/v1/proposals
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	id, err := h.Registry.Create(c.Context(), middleware.CurrentAddress(c), req.Metadata, req.Requirement)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.SuccessCreated(c, "Proposal created", fiber.Map{"id": id}, nil)
}

// GET /api/v1/proposals/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := apiutil.ProposalID(c)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	p, err := h.Registry.Get(c.Context(), id)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Proposal fetched", p, nil)
}

// GET /api/v1/proposals?status=IN-PROCESS&offset=&limit=
func (h *Handlers) ListByStatus(c *fiber.Ctx) error {
	status, ok := domain.ParseStatus(c.Query("status"))
	if !ok {
		return response.Error(c, "Invalid status", fiber.StatusBadRequest, nil)
	}
	return h.listStatus(c, status)
}

// GET /api/v1/proposals/voting
func (h *Handlers) ListVoting(c *fiber.Ctx) error {
	return h.listStatus(c, domain.StatusInProcess)
}

// GET /api/v1/proposals/investing
func (h *Handlers) ListInvesting(c *fiber.Ctx) error {
	return h.listStatus(c, domain.StatusApproved)
}

// GET /api/v1/proposals/minted
func (h *Handlers) ListMinted(c *fiber.Ctx) error {
	return h.listStatus(c, domain.StatusMinted)
}

func (h *Handlers) listStatus(c *fiber.Ctx, status domain.ProposalStatus) error {
	pg := apiutil.Page(c)
	list, err := h.Registry.ListByStatus(c.Context(), status, pg)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	total, err := h.Registry.CountByStatus(c.Context(), status)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	meta := response.PageMeta(pg.Offset, pg.Limit, len(list))
	meta["total"] = total
	meta["status"] = status
	return response.Success(c, "Proposals fetched", list, meta)
}

// GET /api/v1/proposals/mine
func (h *Handlers) ListMine(c *fiber.Ctx) error {
	return h.listAccount(c, h.Registry.ListByCreator)
}

// GET /api/v1/proposals/voted
func (h *Handlers) ListVoted(c *fiber.Ctx) error {
	return h.listAccount(c, h.Registry.ListVoted)
}

// GET /api/v1/proposals/invested
func (h *Handlers) ListInvested(c *fiber.Ctx) error {
	return h.listAccount(c, h.Registry.ListInvested)
}

func (h *Handlers) listAccount(c *fiber.Ctx, query func(context.Context, string, registry.Page) ([]domain.Proposal, error)) error {
	pg := apiutil.Page(c)
	list, err := query(c.Context(), middleware.CurrentAddress(c), pg)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Proposals fetched", list, response.PageMeta(pg.Offset, pg.Limit, len(list)))
}

// GET /api/v1/proposals/:id/events
func (h *Handlers) ListEvents(c *fiber.Ctx) error {
	id, err := apiutil.ProposalID(c)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	if _, err := h.Registry.Get(c.Context(), id); err != nil {
		return apiutil.Fail(c, err)
	}
	pg := apiutil.Page(c)
	if pg.Offset < 0 {
		pg.Offset = 0
	}
	list, err := h.Events.List(c.Context(), id, pg.Offset, pg.Limit)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Events fetched", list, response.PageMeta(pg.Offset, pg.Limit, len(list)))
}

// GET /api/v1/events?type=&offset=&limit=
func (h *Handlers) Feed(c *fiber.Ctx) error {
	pg := apiutil.Page(c)
	if pg.Offset < 0 {
		pg.Offset = 0
	}
	if pg.Limit > events.MaxFeedLimit {
		pg.Limit = events.MaxFeedLimit
	}
	list, err := h.Events.Feed(c.Context(), strings.ToUpper(c.Query("type")), pg.Offset, pg.Limit)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Events fetched", list, response.PageMeta(pg.Offset, pg.Limit, len(list)))
}

// GET /api/v1/proposals/:id/position
func (h *Handlers) GetPosition(c *fiber.Ctx) error {
	id, err := apiutil.ProposalID(c)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	p, err := h.Registry.Get(c.Context(), id)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	if p.PositionID == "" {
		return apiutil.Fail(c, liquidity.ErrPositionNotFound)
	}
	pos, err := h.Liquidity.GetPosition(c.Context(), p.PositionID)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Position fetched", pos, nil)
}
