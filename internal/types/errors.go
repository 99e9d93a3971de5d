package types

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedAsset is returned for mints outside the vault whitelist,
	// before any network call is made.
	ErrUnsupportedAsset = errors.New("unsupported asset mint")

	// ErrInvalidAmount is returned for a zero amount.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrAccountNotFound is returned when a queried address holds no on-chain
	// data. Balance queries translate it to a zero balance; the vault fetch
	// surfaces it as an error.
	ErrAccountNotFound = errors.New("account not found")
)

// InsufficientBalanceError is the pre-flight rejection raised when the wallet
// does not hold enough of the asset (deposit) or CRT (withdraw). The local
// check is an optimization only; the chain remains authoritative.
type InsufficientBalanceError struct {
	Required  uint64
	Available uint64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %d, available %d", e.Required, e.Available)
}

// SubmissionError wraps a transaction that the node or the program rejected
// after signing, for example on an expired blockhash. It is never retried
// internally.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("transaction submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
