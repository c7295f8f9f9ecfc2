package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionType string

// Transaction types
const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeTransfer   TransactionType = "TRANSFER"
	TransactionTypePayment    TransactionType = "PAYMENT"
	TransactionTypeRefund     TransactionType = "REFUND"
)

type TransactionStatus string

// Transaction statuses. Ledger operations complete synchronously, so only
// COMPLETED is ever persisted; the remaining values are reserved.
const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
	TransactionStatusReversed  TransactionStatus = "REVERSED"
)

// Transaction is the immutable record of one money movement. Exactly one of
// four shapes by type: deposit has only a destination, withdrawal only a
// source, transfer has both. Once persisted it is never updated.
type Transaction struct {
	ID                  uint              `gorm:"primarykey" json:"id"`
	ReferenceNumber     string            `gorm:"uniqueIndex;not null" json:"reference_number"`
	SourceWalletID      *uint             `gorm:"index" json:"source_wallet_id"`
	SourceWallet        *Wallet           `json:"-"`
	DestinationWalletID *uint             `gorm:"index" json:"destination_wallet_id"`
	DestinationWallet   *Wallet           `json:"-"`
	Amount              decimal.Decimal   `gorm:"type:numeric(19,4);not null" json:"amount"`
	Fee                 decimal.Decimal   `gorm:"type:numeric(19,4);not null;default:0" json:"fee"`
	Type                TransactionType   `gorm:"not null" json:"type"`
	Status              TransactionStatus `gorm:"not null;default:'PENDING'" json:"status"`
	Description         string            `gorm:"size:500" json:"description"`
	ExternalReferenceID string            `json:"external_reference_id,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	CompletedAt         *time.Time        `json:"completed_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ReferenceNumber == "" {
		t.ReferenceNumber = generateReferenceNumber()
	}
	return nil
}

func generateReferenceNumber() string {
	return "TXN" + time.Now().Format("20060102") + randomAlphanumeric(8)
}

// Complete marks the record COMPLETED and stamps the completion time.
func (t *Transaction) Complete() {
	now := time.Now()
	t.Status = TransactionStatusCompleted
	t.CompletedAt = &now
}

// Fail marks the record FAILED. Reserved extension point: no ledger
// operation currently persists a failed record, failures roll back instead.
func (t *Transaction) Fail(reason string) {
	t.Status = TransactionStatusFailed
	if t.Description != "" {
		t.Description += " | "
	}
	t.Description += "Failed: " + reason
}
