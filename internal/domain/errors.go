package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidAmount       = errors.New("amount must be a positive number")
	ErrInvalidKind         = errors.New("adjustment type must be credit or debit")
	ErrMissingCustomer     = errors.New("customer id is required")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrOrderNotFound       = errors.New("order not found")
	ErrReferralNotFound    = errors.New("referral not found")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidRequest      = errors.New("invalid request")
)
