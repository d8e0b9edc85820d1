package domain

import (
	"strings"
	"time"
)

// MintPolicy decides when an approved proposal has raised enough to be minted.
type MintPolicy string

const (
	// MintExact requires the target amount to be raised exactly.
	MintExact MintPolicy = "exact"
	// MintDeadline also accepts a partially funded proposal once its funding deadline passed.
	MintDeadline MintPolicy = "deadline"
)

func ParseMintPolicy(s string) (MintPolicy, bool) {
	switch MintPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MintExact:
		return MintExact, true
	case MintDeadline:
		return MintDeadline, true
	}
	return "", false
}

// FundingSatisfied reports whether p has raised enough to be minted at now.
func (p *Proposal) FundingSatisfied(policy MintPolicy, now time.Time) bool {
	if p.FundingComplete() {
		return true
	}
	return policy == MintDeadline && p.TotalInvested.IsPositive() && p.FundingExpired(now)
}
