package tokens

import (
	"launchpad-backend/internal/application/ledger"
	"launchpad-backend/internal/interfaces/handlers/apiutil"
	"launchpad-backend/internal/middleware"
	"launchpad-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Ledger *ledger.Service
}

// MoveRequest is the body of approve, send and faucet. Spender is only read by approve.
type MoveRequest struct {
	Token   string          `json:"token"`
	To      string          `json:"to"`
	Spender string          `json:"spender"`
	Amount  decimal.Decimal `json:"amount"`
}

func parseMove(c *fiber.Ctx) (*MoveRequest, error) {
	var req MoveRequest
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "token is required")
	}
	return &req, nil
}

// POST /api/v1/tokens/approve
func (h *Handlers) Approve(c *fiber.Ctx) error {
	req, err := parseMove(c)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	owner := middleware.CurrentAddress(c)
	if err := h.Ledger.Approve(c.Context(), req.Token, owner, req.Spender, req.Amount); err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Allowance set", fiber.Map{
		"token":   req.Token,
		"owner":   owner,
		"spender": req.Spender,
		"amount":  req.Amount,
	}, nil)
}

// POST /api/v1/tokens/send
func (h *Handlers) Send(c *fiber.Ctx) error {
	req, err := parseMove(c)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	if err := h.Ledger.Send(c.Context(), req.Token, middleware.CurrentAddress(c), req.To, req.Amount); err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Tokens sent", fiber.Map{"token": req.Token, "to": req.To, "amount": req.Amount}, nil)
}

// POST /api/v1/tokens/faucet (admin)
func (h *Handlers) Faucet(c *fiber.Ctx) error {
	req, err := parseMove(c)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	if err := h.Ledger.Faucet(c.Context(), req.Token, req.To, req.Amount); err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Tokens minted", fiber.Map{"token": req.Token, "to": req.To, "amount": req.Amount}, nil)
}

// GET /api/v1/tokens/balance?token=&account=
func (h *Handlers) Balance(c *fiber.Ctx) error {
	token := c.Query("token")
	account := c.Query("account", middleware.CurrentAddress(c))
	amount, err := h.Ledger.BalanceOf(c.Context(), token, account)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Balance fetched", fiber.Map{"token": token, "account": account, "amount": amount}, nil)
}

// GET /api/v1/tokens/allowance?token=&owner=&spender=
func (h *Handlers) Allowance(c *fiber.Ctx) error {
	token := c.Query("token")
	owner := c.Query("owner", middleware.CurrentAddress(c))
	spender := c.Query("spender")
	amount, err := h.Ledger.AllowanceOf(c.Context(), token, owner, spender)
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Allowance fetched", fiber.Map{
		"token":   token,
		"owner":   owner,
		"spender": spender,
		"amount":  amount,
	}, nil)
}

// GET /api/v1/tokens/balances?account=
func (h *Handlers) Balances(c *fiber.Ctx) error {
	list, err := h.Ledger.ListBalances(c.Context(), c.Query("account", middleware.CurrentAddress(c)))
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Balances fetched", list, nil)
}

// GET /api/v1/tokens/info?token=
func (h *Handlers) Info(c *fiber.Ctx) error {
	t, err := h.Ledger.GetToken(c.Context(), c.Query("token"))
	if err != nil {
		return apiutil.Fail(c, err)
	}
	return response.Success(c, "Token fetched", t, nil)
}
