package wallet

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"securewallet/internal/models"
)

// WalletResponse is the caller-facing wallet view.
type WalletResponse struct {
	ID               uint                `json:"id"`
	WalletNumber     string              `json:"wallet_number"`
	Name             string              `json:"name"`
	WalletType       models.WalletType   `json:"wallet_type"`
	Balance          decimal.Decimal     `json:"balance"`
	AvailableBalance decimal.Decimal     `json:"available_balance"`
	MinimumBalance   decimal.Decimal     `json:"minimum_balance"`
	DailyLimit       decimal.Decimal     `json:"daily_limit"`
	Currency         string              `json:"currency"`
	Status           models.WalletStatus `json:"status"`
	CreatedAt        time.Time           `json:"created_at"`
}

// BalanceResponse is the caller-facing balance view.
type BalanceResponse struct {
	WalletID         uint            `json:"wallet_id"`
	WalletName       string          `json:"wallet_name"`
	Balance          decimal.Decimal `json:"balance"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	Currency         string          `json:"currency"`
}

// Cache is the read-path cache the service uses. Satisfied by
// cache.CacheService.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

// MapToResponse builds the wallet view shared by this service and the ledger.
func MapToResponse(w *models.Wallet) *WalletResponse {
	return &WalletResponse{
		ID:               w.ID,
		WalletNumber:     w.WalletNumber,
		Name:             w.Name,
		WalletType:       w.WalletType,
		Balance:          w.Balance,
		AvailableBalance: w.AvailableBalance(),
		MinimumBalance:   w.MinimumBalance,
		DailyLimit:       w.DailyLimit,
		Currency:         w.Currency,
		Status:           w.Status,
		CreatedAt:        w.CreatedAt,
	}
}
