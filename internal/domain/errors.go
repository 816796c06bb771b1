package domain

import "errors"

// Business-rule violations are rejected synchronously before any write and are
// never retried automatically. Gateway errors are split so callers can tell
// "retry later" from "this payout is impossible".
var (
	ErrInvalidSale         = errors.New("sale event is missing required fields")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrReasonRequired      = errors.New("adjustment reason is required")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrPayeeNotFound       = errors.New("payee not found")
	ErrGatewayRejected     = errors.New("transfer rejected by gateway")
	ErrGatewayUnavailable  = errors.New("transfer gateway unavailable")
)
