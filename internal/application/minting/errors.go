package minting

import "errors"

var (
	ErrAlreadyMinted         = errors.New("Proposal has already been minted")
	ErrProposalNotApproved   = errors.New("Proposal is not approved")
	ErrNotInvestmentComplete = errors.New("Investment target has not been reached")
	ErrNotConfigured         = errors.New("Minting collaborators are not configured")
	ErrAlreadyConfigured     = errors.New("Collaborator is already configured")
	ErrInvalidCollaborator   = errors.New("Collaborator must not be empty")
	ErrCollaboratorFailed    = errors.New("Collaborator call failed")
	ErrEmptyBatch            = errors.New("No proposal ids given")
)
