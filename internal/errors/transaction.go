package errors

import "fmt"

var (
	ErrTransactionNotFound = &DomainError{
		Code:    "TRANSACTION_NOT_FOUND",
		Message: "transaction not found",
	}
	ErrInvalidTransaction = &DomainError{
		Code:    "INVALID_TRANSACTION",
		Message: "invalid transaction",
	}
)

// NewTransactionNotFound reports a missing transaction by id.
func NewTransactionNotFound(transactionID uint) *DomainError {
	return &DomainError{
		Code:    ErrTransactionNotFound.Code,
		Message: fmt.Sprintf("transaction not found: %d", transactionID),
	}
}

// NewInvalidTransaction reports a malformed business request with a reason.
func NewInvalidTransaction(reason string) *DomainError {
	return &DomainError{
		Code:    ErrInvalidTransaction.Code,
		Message: reason,
	}
}
