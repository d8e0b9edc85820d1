package ledger

import "errors"

var (
	ErrInvalidAmount         = errors.New("Amount must be a positive whole number")
	ErrInsufficientBalance   = errors.New("Insufficient balance")
	ErrInsufficientAllowance = errors.New("Insufficient allowance")
	ErrUnknownToken          = errors.New("Token not found")
	ErrTokenExists           = errors.New("Token already deployed")
	ErrInvalidAccount        = errors.New("Invalid account address")
	ErrCustodyAccount        = errors.New("Funds in platform custody accounts cannot be moved directly")
)
