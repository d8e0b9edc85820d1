package registry

import (
	"errors"

	"launchpad-backend/internal/domain"
)

var (
	ErrInvalidRequirement = domain.ErrInvalidRequirement
	ErrInvalidMetadata    = domain.ErrInvalidMetadata
	ErrProposalNotFound   = errors.New("Proposal not found")
	ErrInvalidTransition  = errors.New("Invalid status transition")
	ErrInvalidAmount      = errors.New("Amount must be positive")
)
