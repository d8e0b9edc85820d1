package constants

const (
	ViewData         = "view_data"
	CreateProposal   = "create_proposal"
	CastVote         = "cast_vote"
	FinalizeProposal = "finalize_proposal"
	Invest           = "invest"
	ClaimRefund      = "claim_refund"
	ExpireFunding    = "expire_funding"
	MintProposal     = "mint_proposal"
	ReleaseVesting   = "release_vesting"
	MoveTokens       = "move_tokens"
	RegisterAccount  = "register_account"
	FaucetTokens     = "faucet_tokens"
	AssignRole       = "assign_role"
)
