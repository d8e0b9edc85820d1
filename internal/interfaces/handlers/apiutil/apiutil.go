// Package apiutil holds the request parsing and error mapping shared by the launchpad handlers.
package apiutil

import (
	"strconv"

	"launchpad-backend/internal/application/escrow"
	"launchpad-backend/internal/application/ledger"
	"launchpad-backend/internal/application/liquidity"
	"launchpad-backend/internal/application/minting"
	"launchpad-backend/internal/application/registry"
	"launchpad-backend/internal/application/vesting"
	"launchpad-backend/internal/application/voting"
	"launchpad-backend/internal/pkg/capability"
	"launchpad-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DefaultLimit is used when a list request has no limit query.
const DefaultLimit = 20

var errInvalidID = fiber.NewError(fiber.StatusBadRequest, "Invalid proposal id")

// Codes maps service errors to HTTP statuses. Order matters: a collaborator failure wraps
// the collaborator's own error and must win over it.
var Codes = []response.Code{
	{Err: minting.ErrCollaboratorFailed, Status: fiber.StatusBadGateway},
	{Err: capability.ErrUnauthorizedCaller, Status: fiber.StatusForbidden},

	{Err: registry.ErrInvalidRequirement, Status: fiber.StatusBadRequest},
	{Err: registry.ErrInvalidMetadata, Status: fiber.StatusBadRequest},
	{Err: registry.ErrInvalidAmount, Status: fiber.StatusBadRequest},
	{Err: escrow.ErrInvalidAmount, Status: fiber.StatusBadRequest},
	{Err: escrow.ErrWrongCurrency, Status: fiber.StatusBadRequest},
	{Err: ledger.ErrInvalidAmount, Status: fiber.StatusBadRequest},
	{Err: ledger.ErrInvalidAccount, Status: fiber.StatusBadRequest},
	{Err: ledger.ErrCustodyAccount, Status: fiber.StatusForbidden},
	{Err: liquidity.ErrSameToken, Status: fiber.StatusBadRequest},
	{Err: liquidity.ErrInvalidLiquidity, Status: fiber.StatusBadRequest},
	{Err: vesting.ErrInvalidSchedule, Status: fiber.StatusBadRequest},
	{Err: minting.ErrEmptyBatch, Status: fiber.StatusBadRequest},

	{Err: registry.ErrProposalNotFound, Status: fiber.StatusNotFound},
	{Err: voting.ErrVoteNotFound, Status: fiber.StatusNotFound},
	{Err: escrow.ErrContributionNotFound, Status: fiber.StatusNotFound},
	{Err: vesting.ErrScheduleNotFound, Status: fiber.StatusNotFound},
	{Err: ledger.ErrUnknownToken, Status: fiber.StatusNotFound},
	{Err: liquidity.ErrPositionNotFound, Status: fiber.StatusNotFound},

	{Err: escrow.ErrCapExceeded, Status: fiber.StatusUnprocessableEntity},
	{Err: ledger.ErrInsufficientBalance, Status: fiber.StatusUnprocessableEntity},
	{Err: ledger.ErrInsufficientAllowance, Status: fiber.StatusUnprocessableEntity},

	{Err: minting.ErrNotConfigured, Status: fiber.StatusServiceUnavailable},

	{Err: registry.ErrInvalidTransition, Status: fiber.StatusConflict},
	{Err: voting.ErrAlreadyVoted, Status: fiber.StatusConflict},
	{Err: voting.ErrVotingClosed, Status: fiber.StatusConflict},
	{Err: voting.ErrVotingOpen, Status: fiber.StatusConflict},
	{Err: voting.ErrAlreadyFinalized, Status: fiber.StatusConflict},
	{Err: voting.ErrNoVotingWeight, Status: fiber.StatusConflict},
	{Err: escrow.ErrProposalNotApproved, Status: fiber.StatusConflict},
	{Err: escrow.ErrProposalNotRejected, Status: fiber.StatusConflict},
	{Err: escrow.ErrFundingClosed, Status: fiber.StatusConflict},
	{Err: escrow.ErrFundingOpen, Status: fiber.StatusConflict},
	{Err: escrow.ErrFundingComplete, Status: fiber.StatusConflict},
	{Err: escrow.ErrNothingToRefund, Status: fiber.StatusConflict},
	{Err: escrow.ErrAlreadyRefunded, Status: fiber.StatusConflict},
	{Err: minting.ErrAlreadyMinted, Status: fiber.StatusConflict},
	{Err: minting.ErrProposalNotApproved, Status: fiber.StatusConflict},
	{Err: minting.ErrNotInvestmentComplete, Status: fiber.StatusConflict},
	{Err: minting.ErrAlreadyConfigured, Status: fiber.StatusConflict},
	{Err: vesting.ErrScheduleExists, Status: fiber.StatusConflict},
	{Err: vesting.ErrNothingToRelease, Status: fiber.StatusConflict},
	{Err: ledger.ErrTokenExists, Status: fiber.StatusConflict},
}

// Fail replies with the status mapped for err.
func Fail(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return response.Error(c, fe.Message, fe.Code, nil)
	}
	return response.ErrorFrom(c, err, Codes)
}

// ProposalID parses the :id route parameter.
func ProposalID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

// Page reads offset and limit from the query string.
func Page(c *fiber.Ctx) registry.Page {
	return registry.Page{
		Offset: c.QueryInt("offset", 0),
		Limit:  c.QueryInt("limit", DefaultLimit),
	}
}
