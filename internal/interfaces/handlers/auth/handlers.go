package auth

import (
	"context"
	"errors"

	authsvc "launchpad-backend/internal/application/auth"
	"launchpad-backend/internal/middleware"
	"launchpad-backend/internal/pkg/response"
	"launchpad-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const accountSessionsPrefix = "account_sessions:"

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	Finder   authsvc.AccountFinder
	Accounts *authsvc.Service
	Rdb      *redis.Client
	Config   middleware.SessionConfig
}

// LoginRequest body.
type LoginRequest struct {
	Address string `json:"address"`
	Secret  string `json:"secret"`
}

// RegisterRequest body.
type RegisterRequest struct {
	Address string `json:"address"`
	Secret  string `json:"secret"`
	Role    string `json:"role"`
}

// Login POST /api/v1/auth/login: authenticate, create session, track it per account, set cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	if h.Finder == nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, authsvc.ErrCredentialsRequired.Error(), fiber.StatusBadRequest, nil)
	}
	req.Address = validation.NormalizeAddress(req.Address)

	acct, err := h.Finder.FindByCredentials(req.Address, req.Secret)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrCredentialsRequired):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, authsvc.ErrUnknownAccount), errors.Is(err, authsvc.ErrIncorrectSecret):
			return response.Error(c, err.Error(), fiber.StatusUnauthorized, nil)
		default:
			log.Error().Err(err).Str("address", req.Address).Msg("login failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{Address: acct.Address, Role: acct.Role})

	if err := h.Rdb.SAdd(context.Background(), accountSessionsPrefix+acct.Address, sessionID).Err(); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sessionID
	c.Cookie(&cookie)

	return response.Success(c, "Login successful", fiber.Map{
		"account": authsvc.SessionAccount{Address: acct.Address, Role: acct.Role},
	}, nil)
}

// Me GET /api/v1/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	acct, err := authsvc.VerifyAccount(middleware.GetUser(c))
	if err != nil {
		log.Debug().Str("path", c.Path()).Bool("session_id", middleware.GetSessionID(c) != "").
			Msg("auth/me: not authenticated")
		return response.Error(c, authsvc.ErrNotAuthenticated.Error(), fiber.StatusUnauthorized, nil)
	}
	return response.Success(c, "Authenticated", fiber.Map{"account": acct}, nil)
}

// Logout DELETE /api/v1/auth/logout: drop the session from Redis and clear the cookie.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	ctx := context.Background()

	if addr := middleware.CurrentAddress(c); addr != "" && sessionID != "" {
		_ = h.Rdb.SRem(ctx, accountSessionsPrefix+addr, sessionID).Err()
	}
	if sessionID != "" {
		_ = h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err()
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out successfully", nil, nil)
}

// RoleRequest body.
type RoleRequest struct {
	Role string `json:"role"`
}

// UpdateRole PATCH /api/v1/auth/accounts/:address/role (admin only). A changed role ends every
// session of the target account so the new role applies on next login.
func (h *Handlers) UpdateRole(c *fiber.Ctx) error {
	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	target := validation.NormalizeAddress(c.Params("address"))
	previous, err := h.Accounts.UpdateRole(c.Context(), middleware.CurrentAddress(c), target, req.Role)
	if err != nil {
		return response.ErrorFrom(c, err, []response.Code{
			{Err: authsvc.ErrInvalidRole, Status: fiber.StatusBadRequest},
			{Err: authsvc.ErrCannotModifyOwnRole, Status: fiber.StatusForbidden},
			{Err: authsvc.ErrUnknownAccount, Status: fiber.StatusNotFound},
			{Err: authsvc.ErrLastAdmin, Status: fiber.StatusConflict},
		})
	}
	if previous != req.Role {
		DestroyAccountSessions(context.Background(), h.Rdb, target)
	}
	return response.Success(c, "Role updated", authsvc.SessionAccount{Address: target, Role: req.Role}, nil)
}

// Register POST /api/v1/auth/register (admin only).
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	acct, err := h.Accounts.Register(c.Context(), req.Address, req.Secret, req.Role)
	if err != nil {
		return response.ErrorFrom(c, err, []response.Code{
			{Err: authsvc.ErrInvalidAddress, Status: fiber.StatusBadRequest},
			{Err: authsvc.ErrReservedAddress, Status: fiber.StatusBadRequest},
			{Err: authsvc.ErrWeakSecret, Status: fiber.StatusBadRequest},
			{Err: authsvc.ErrInvalidRole, Status: fiber.StatusBadRequest},
			{Err: authsvc.ErrAccountExists, Status: fiber.StatusConflict},
		})
	}
	return response.SuccessCreated(c, "Account registered", authsvc.SessionAccount{Address: acct.Address, Role: acct.Role}, nil)
}
