package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"securewallet/internal/models"
)

// DepositRequest credits a wallet. The destination is the caller's wallet.
type DepositRequest struct {
	WalletID            uint
	Amount              decimal.Decimal
	Description         string
	ExternalReferenceID string
}

// WithdrawRequest debits a wallet. The source is the caller's wallet.
type WithdrawRequest struct {
	WalletID            uint
	Amount              decimal.Decimal
	Description         string
	ExternalReferenceID string
}

// TransferRequest moves money between two wallets. The caller must own the
// source; ownership of the destination is not required.
type TransferRequest struct {
	SourceWalletID      uint
	DestinationWalletID uint
	Amount              decimal.Decimal
	Description         string
	ExternalReferenceID string
}

// ListQuery filters the caller's transaction history. EndDate is a calendar
// date treated as inclusive, i.e. records up to but excluding the following
// day are returned.
type ListQuery struct {
	WalletID  *uint
	Type      *models.TransactionType
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// TransactionResponse is the caller-facing transaction view. Wallet
// references are nil on the side a type does not have.
type TransactionResponse struct {
	ID                    uint                     `json:"id"`
	ReferenceNumber       string                   `json:"reference_number"`
	SourceWalletID        *uint                    `json:"source_wallet_id"`
	SourceWalletName      *string                  `json:"source_wallet_name"`
	DestinationWalletID   *uint                    `json:"destination_wallet_id"`
	DestinationWalletName *string                  `json:"destination_wallet_name"`
	Amount                decimal.Decimal          `json:"amount"`
	Fee                   decimal.Decimal          `json:"fee"`
	Type                  models.TransactionType   `json:"type"`
	Status                models.TransactionStatus `json:"status"`
	Description           string                   `json:"description"`
	ExternalReferenceID   string                   `json:"external_reference_id,omitempty"`
	CreatedAt             time.Time                `json:"created_at"`
	CompletedAt           *time.Time               `json:"completed_at"`
}

// Cache is the invalidation hook for read-path caches. Satisfied by
// cache.CacheService; nil disables invalidation.
type Cache interface {
	Delete(ctx context.Context, keys ...string) error
}

func mapToResponse(t *models.Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:                  t.ID,
		ReferenceNumber:     t.ReferenceNumber,
		SourceWalletID:      t.SourceWalletID,
		DestinationWalletID: t.DestinationWalletID,
		Amount:              t.Amount,
		Fee:                 t.Fee,
		Type:                t.Type,
		Status:              t.Status,
		Description:         t.Description,
		ExternalReferenceID: t.ExternalReferenceID,
		CreatedAt:           t.CreatedAt,
		CompletedAt:         t.CompletedAt,
	}
	if t.SourceWallet != nil {
		name := t.SourceWallet.Name
		resp.SourceWalletName = &name
	}
	if t.DestinationWallet != nil {
		name := t.DestinationWallet.Name
		resp.DestinationWalletName = &name
	}
	return resp
}
