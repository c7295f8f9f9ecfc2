package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"securewallet/internal/errors"
)

type WalletType string

// Wallet classes
const (
	WalletTypeSavings    WalletType = "SAVINGS"
	WalletTypeChecking   WalletType = "CHECKING"
	WalletTypeInvestment WalletType = "INVESTMENT"
	WalletTypeMerchant   WalletType = "MERCHANT"
)

type WalletStatus string

// Wallet statuses
const (
	WalletStatusActive   WalletStatus = "ACTIVE"
	WalletStatusInactive WalletStatus = "INACTIVE"
	WalletStatusFrozen   WalletStatus = "FROZEN"
	WalletStatusClosed   WalletStatus = "CLOSED"
)

// Wallet holds one user's balance in a single currency. Balances are exact
// decimals with 4 fractional digits; float64 never touches the mutation path.
// Version is the optimistic guard behind the row lock: every repository
// update is a compare-and-swap against it.
type Wallet struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	UserID         uint            `gorm:"index;not null" json:"user_id"`
	WalletNumber   string          `gorm:"uniqueIndex;not null" json:"wallet_number"`
	Name           string          `gorm:"not null" json:"name"`
	WalletType     WalletType      `gorm:"not null" json:"wallet_type"`
	Balance        decimal.Decimal `gorm:"type:numeric(19,4);not null;default:0" json:"balance"`
	MinimumBalance decimal.Decimal `gorm:"type:numeric(19,4);not null;default:0" json:"minimum_balance"`
	InterestRate   decimal.Decimal `gorm:"type:numeric(5,4);not null;default:0" json:"interest_rate"`
	DailyLimit     decimal.Decimal `gorm:"type:numeric(19,4);not null;default:0" json:"daily_limit"`
	Currency       string          `gorm:"size:3;not null;default:'USD'" json:"currency"`
	Status         WalletStatus    `gorm:"not null;default:'ACTIVE'" json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int64           `gorm:"not null;default:0" json:"-"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.WalletNumber == "" {
		w.WalletNumber = generateWalletNumber()
	}
	return nil
}

// generateWalletNumber is collision-resistant in practice but not retried;
// a collision surfaces as a duplicate-key error from storage.
func generateWalletNumber() string {
	return fmt.Sprintf("W%d%s", time.Now().UnixMilli(), randomDigits(4))
}

// Credit adds amount to the balance. Amount must be strictly positive.
func (w *Wallet) Credit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.ErrInvalidAmount
	}
	w.Balance = w.Balance.Add(amount)
	return nil
}

// Debit subtracts amount from the balance. The only enforced floor is zero;
// MinimumBalance is informational and feeds AvailableBalance only.
func (w *Wallet) Debit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.ErrInvalidAmount
	}
	if w.Balance.LessThan(amount) {
		return errors.NewInsufficientBalance(w.ID, amount)
	}
	w.Balance = w.Balance.Sub(amount)
	return nil
}

// AvailableBalance is balance minus the minimum balance and may be negative.
func (w *Wallet) AvailableBalance() decimal.Decimal {
	return w.Balance.Sub(w.MinimumBalance)
}

func (w *Wallet) IsActive() bool {
	return w.Status == WalletStatusActive
}
