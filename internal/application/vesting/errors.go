package vesting

import "errors"

var (
	ErrScheduleExists   = errors.New("Vesting schedule already exists")
	ErrScheduleNotFound = errors.New("Vesting schedule not found")
	ErrNothingToRelease = errors.New("Nothing to release")
	ErrInvalidSchedule  = errors.New("Invalid vesting schedule")
)
