package escrow

import "errors"

var (
	ErrInvalidAmount        = errors.New("Amount must be a positive whole number")
	ErrWrongCurrency        = errors.New("Wrong currency token for this proposal")
	ErrProposalNotApproved  = errors.New("Proposal is not approved")
	ErrProposalNotRejected  = errors.New("Proposal is not rejected")
	ErrCapExceeded          = errors.New("Investment exceeds the remaining target amount")
	ErrFundingClosed        = errors.New("Funding period has ended")
	ErrFundingOpen          = errors.New("Funding period has not ended")
	ErrFundingComplete      = errors.New("Funding is complete")
	ErrNothingToRefund      = errors.New("Nothing to refund")
	ErrAlreadyRefunded      = errors.New("Contribution has already been refunded")
	ErrContributionNotFound = errors.New("Contribution not found")
)
