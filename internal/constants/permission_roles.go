package constants

import pc "launchpad-backend/internal/pkg/constants"

// PermissionRoles maps each permission to the roles allowed to perform it.
var PermissionRoles = map[string][]string{
	ViewData:         {pc.Member, pc.Operator, pc.Admin},
	CreateProposal:   {pc.Member, pc.Operator, pc.Admin},
	CastVote:         {pc.Member, pc.Operator, pc.Admin},
	FinalizeProposal: {pc.Member, pc.Operator, pc.Admin},
	Invest:           {pc.Member, pc.Operator, pc.Admin},
	ClaimRefund:      {pc.Member, pc.Operator, pc.Admin},
	ExpireFunding:    {pc.Member, pc.Operator, pc.Admin},
	MintProposal:     {pc.Operator, pc.Admin},
	ReleaseVesting:   {pc.Member, pc.Operator, pc.Admin},
	MoveTokens:       {pc.Member, pc.Operator, pc.Admin},
	RegisterAccount:  {pc.Admin},
	FaucetTokens:     {pc.Admin},
	AssignRole:       {pc.Admin},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
