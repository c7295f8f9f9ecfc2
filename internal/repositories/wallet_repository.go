package repositories

import (
	"context"
	"time"

	"securewallet/internal/models"
)

// TransactionFilter selects ledger records for a query. When WalletID is
// set the results are movements touching that wallet; otherwise they are all
// movements where UserID owns either side. EndBefore is an exclusive upper
// bound on creation time.
type TransactionFilter struct {
	UserID    uint
	WalletID  *uint
	Type      *models.TransactionType
	StartDate *time.Time
	EndBefore *time.Time
}

// Page bounds a query result.
type Page struct {
	Limit  int
	Offset int
}

// WalletRepository is the storage collaborator the ledger core depends on.
// GetByIDForUpdate takes an exclusive row lock scoped to the enclosing unit
// of work; Update is a compare-and-swap on the wallet version and returns
// ErrVersionConflict when the in-storage version has advanced since load.
// ExecuteInTransaction is the unit-of-work boundary: everything done through
// the repository it passes to fn commits or rolls back together.
type WalletRepository interface {
	Create(wallet *models.Wallet) error
	GetByID(id uint) (*models.Wallet, error)
	GetByIDForUpdate(id uint) (*models.Wallet, error)
	GetByUserID(userID uint) ([]*models.Wallet, error)
	Update(wallet *models.Wallet) error

	CreateTransaction(txn *models.Transaction) error
	GetTransactionByID(id uint) (*models.Transaction, error)
	QueryTransactions(ctx context.Context, filter TransactionFilter, page Page) ([]models.Transaction, int64, error)

	ExecuteInTransaction(fn func(WalletRepository) error) error
}

// UserRepository resolves wallet owners.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}
