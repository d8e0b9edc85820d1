package voting

import "errors"

var (
	ErrAlreadyVoted     = errors.New("Account has already voted on this proposal")
	ErrVotingClosed     = errors.New("Voting is closed")
	ErrVotingOpen       = errors.New("Voting is still open")
	ErrAlreadyFinalized = errors.New("Proposal has already been finalized")
	ErrNoVotingWeight   = errors.New("Account has no voting weight")
	ErrVoteNotFound     = errors.New("Vote not found")
)
