package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	VestingKindInvestor = "investor"
	VestingKindOwner    = "owner"
)

// VestingSchedule is a linear unlock with a cliff for one beneficiary of one proposal.
// A creator who also invested holds one schedule of each kind. Schedules are never deleted.
type VestingSchedule struct {
	ID               uint            `gorm:"column:id;primaryKey" json:"-"`
	Beneficiary      string          `gorm:"column:beneficiary;type:varchar(128);not null;uniqueIndex:idx_vesting_key,priority:1" json:"beneficiary"`
	ProposalID       uint64          `gorm:"column:proposal_id;not null;uniqueIndex:idx_vesting_key,priority:2;index" json:"proposal_id"`
	Token            string          `gorm:"column:token;type:varchar(128);not null" json:"token"`
	Kind             string          `gorm:"column:kind;type:varchar(16);not null;uniqueIndex:idx_vesting_key,priority:3" json:"kind"`
	TotalEntitlement decimal.Decimal `gorm:"column:total_entitlement;type:varchar(80);not null" json:"total_entitlement"`
	Released         decimal.Decimal `gorm:"column:released;type:varchar(80);not null" json:"released"`
	Start            time.Time       `gorm:"column:start;not null" json:"start"`
	CliffSeconds     int64           `gorm:"column:cliff_seconds;not null" json:"cliff_seconds"`
	DurationSeconds  int64           `gorm:"column:duration_seconds;not null" json:"duration_seconds"`
	LastReleasedAt   *time.Time      `gorm:"column:last_released_at" json:"last_released_at,omitempty"`
}

func (VestingSchedule) TableName() string {
	return "vesting_schedules"
}

// Vested is the amount unlocked at now, ignoring what was already released.
func (v *VestingSchedule) Vested(now time.Time) decimal.Decimal {
	start := v.Start.Unix()
	t := now.Unix()
	if t < start+v.CliffSeconds {
		return decimal.Zero
	}
	if t >= start+v.DurationSeconds || v.DurationSeconds <= 0 {
		return v.TotalEntitlement
	}
	q, _ := v.TotalEntitlement.Mul(decimal.NewFromInt(t-start)).QuoRem(decimal.NewFromInt(v.DurationSeconds), 0)
	return q
}

// Releasable is what can be paid out at now. It is never negative and never exceeds the unreleased rest.
func (v *VestingSchedule) Releasable(now time.Time) decimal.Decimal {
	r := v.Vested(now).Sub(v.Released)
	if r.IsNegative() {
		return decimal.Zero
	}
	if rest := v.TotalEntitlement.Sub(v.Released); r.GreaterThan(rest) {
		return rest
	}
	return r
}
