package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every layer. Validation failures wrap
// ErrValidation so callers can match either the family or the case.
var (
	ErrNotFound               = errors.New("not found")
	ErrValidation             = errors.New("validation failed")
	ErrAccountNumberExhausted = errors.New("account number generation exhausted")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrAuthFailure            = errors.New("invalid credentials")
	ErrAuthorization          = errors.New("not authorized")

	ErrInvalidAmount    = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrCurrencyMismatch = fmt.Errorf("%w: currency mismatch", ErrValidation)
	ErrNonZeroBalance   = fmt.Errorf("%w: balance is not zero", ErrValidation)
	ErrDuplicateUser    = fmt.Errorf("%w: username already exists", ErrValidation)
	ErrSameAccount      = fmt.Errorf("%w: source and destination are the same account", ErrValidation)
	ErrInvalidInput     = fmt.Errorf("%w: invalid input", ErrValidation)

	// ErrDuplicateAccountNumber is raised by the storage uniqueness
	// constraint. The ledger engine retries it and never returns it.
	ErrDuplicateAccountNumber = errors.New("duplicate account number")
)
