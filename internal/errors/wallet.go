package errors

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrWalletNotFound = &DomainError{
		Code:    "WALLET_NOT_FOUND",
		Message: "wallet not found",
	}
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
	}
	ErrUnauthorized = &DomainError{
		Code:    "UNAUTHORIZED",
		Message: "you don't have access to this resource",
	}
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "insufficient wallet balance",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "amount must be positive",
	}
	ErrInactiveWallet = &DomainError{
		Code:    "INACTIVE_WALLET",
		Message: "wallet is not active",
	}
	ErrPolicyNotFound = &DomainError{
		Code:    "POLICY_NOT_FOUND",
		Message: "no policy registered for wallet type",
	}
	ErrConcurrentModification = &DomainError{
		Code:    "CONCURRENT_MODIFICATION",
		Message: "wallet was modified concurrently, retry the operation",
	}
	ErrDuplicateResource = &DomainError{
		Code:    "DUPLICATE_RESOURCE",
		Message: "resource already exists",
	}
)

// NewWalletNotFound reports a missing wallet by id.
func NewWalletNotFound(walletID uint) *DomainError {
	return &DomainError{
		Code:    ErrWalletNotFound.Code,
		Message: fmt.Sprintf("wallet not found: %d", walletID),
	}
}

// NewUserNotFound reports a missing user by id.
func NewUserNotFound(userID uint) *DomainError {
	return &DomainError{
		Code:    ErrUserNotFound.Code,
		Message: fmt.Sprintf("user not found: %d", userID),
	}
}

// NewInsufficientBalance reports a debit that would overdraw the wallet.
func NewInsufficientBalance(walletID uint, amount decimal.Decimal) *DomainError {
	return &DomainError{
		Code:    ErrInsufficientBalance.Code,
		Message: fmt.Sprintf("wallet %d has insufficient balance for amount %s", walletID, amount),
	}
}

// NewPolicyNotFound reports an unregistered wallet class.
func NewPolicyNotFound(walletType string) *DomainError {
	return &DomainError{
		Code:    ErrPolicyNotFound.Code,
		Message: fmt.Sprintf("no policy registered for wallet type: %s", walletType),
	}
}
