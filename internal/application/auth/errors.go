package auth

import "errors"

var (
	ErrCredentialsRequired = errors.New("Address and secret are required")
	ErrUnknownAccount      = errors.New("Unknown account")
	ErrIncorrectSecret     = errors.New("Incorrect secret")
	ErrNotAuthenticated    = errors.New("Not authenticated")
	ErrAccountExists       = errors.New("Account already exists")
	ErrInvalidAddress      = errors.New("Invalid address")
	ErrWeakSecret          = errors.New("Secret must be at least 8 characters and contain a letter and a number")
	ErrInvalidRole         = errors.New("Invalid role")
	ErrReservedAddress     = errors.New("Address is reserved by the platform")
)
