package repositories

import "errors"

// Sentinel errors returned by repository implementations. Services translate
// these into domain errors before they reach a caller.
var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrVersionConflict     = errors.New("wallet version conflict")
	ErrDuplicateKey        = errors.New("duplicate key")
)
