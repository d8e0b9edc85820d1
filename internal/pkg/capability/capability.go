// Package capability restricts internal state-changing operations to the component that owns them.
package capability

import (
	"errors"
	"fmt"
)

// Component identifies an internal caller.
type Component string

const (
	Registry Component = "registry"
	Voting   Component = "voting"
	Escrow   Component = "escrow"
	Minting  Component = "minting"
	Vesting  Component = "vesting"
)

// Op is an internal operation guarded by the table below.
type Op string

const (
	OpApprove        Op = "transition:approve"
	OpReject         Op = "transition:reject"
	OpMint           Op = "transition:mint"
	OpExpire         Op = "transition:expire"
	OpWriteTally     Op = "tally:write"
	OpWriteInvested  Op = "invested:write"
	OpRecordMint     Op = "mint:record"
	OpConsumeEscrow  Op = "escrow:consume"
	OpCreateSchedule Op = "vesting:schedule"
)

var ErrUnauthorizedCaller = errors.New("Unauthorized caller")

var table = map[Op]Component{
	OpApprove:        Voting,
	OpReject:         Voting,
	OpMint:           Minting,
	OpExpire:         Escrow,
	OpWriteTally:     Voting,
	OpWriteInvested:  Escrow,
	OpRecordMint:     Minting,
	OpConsumeEscrow:  Minting,
	OpCreateSchedule: Minting,
}

// Check returns ErrUnauthorizedCaller unless caller owns op.
func Check(op Op, caller Component) error {
	owner, ok := table[op]
	if !ok || owner != caller {
		return fmt.Errorf("%w: %s may not %s", ErrUnauthorizedCaller, caller, op)
	}
	return nil
}
