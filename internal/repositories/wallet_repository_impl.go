package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"securewallet/internal/models"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Create(wallet *models.Wallet) error {
	if err := r.db.Create(wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) GetByID(id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.First(&wallet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

// GetByIDForUpdate loads the wallet under SELECT ... FOR UPDATE. The row
// lock is held until the enclosing transaction commits or rolls back; a
// concurrent caller blocks here rather than being retried.
func (r *walletRepository) GetByIDForUpdate(id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&wallet, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetByUserID(userID uint) ([]*models.Wallet, error) {
	var wallets []*models.Wallet
	if err := r.db.Where("user_id = ?", userID).Order("id").Find(&wallets).Error; err != nil {
		return nil, fmt.Errorf("failed to get wallets: %w", err)
	}
	return wallets, nil
}

// Update writes the wallet with a compare-and-swap on its version. Under the
// row-lock discipline the swap always succeeds; a conflict means some code
// path wrote the row without taking the lock.
func (r *walletRepository) Update(wallet *models.Wallet) error {
	result := r.db.Model(&models.Wallet{}).
		Where("id = ? AND version = ?", wallet.ID, wallet.Version).
		Updates(map[string]interface{}{
			"name":       wallet.Name,
			"balance":    wallet.Balance,
			"status":     wallet.Status,
			"version":    wallet.Version + 1,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	wallet.Version++
	return nil
}

func (r *walletRepository) CreateTransaction(txn *models.Transaction) error {
	if err := r.db.Create(txn).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *walletRepository) GetTransactionByID(id uint) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.
		Preload("SourceWallet").
		Preload("DestinationWallet").
		First(&txn, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &txn, nil
}

func (r *walletRepository) QueryTransactions(ctx context.Context, filter TransactionFilter, page Page) ([]models.Transaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Joins("LEFT JOIN wallets AS src ON src.id = transactions.source_wallet_id").
		Joins("LEFT JOIN wallets AS dst ON dst.id = transactions.destination_wallet_id")

	if filter.WalletID != nil {
		q = q.Where("transactions.source_wallet_id = ? OR transactions.destination_wallet_id = ?",
			*filter.WalletID, *filter.WalletID)
	} else {
		q = q.Where("src.user_id = ? OR dst.user_id = ?", filter.UserID, filter.UserID)
	}
	if filter.Type != nil {
		q = q.Where("transactions.type = ?", *filter.Type)
	}
	if filter.StartDate != nil {
		q = q.Where("transactions.created_at >= ?", *filter.StartDate)
	}
	if filter.EndBefore != nil {
		q = q.Where("transactions.created_at < ?", *filter.EndBefore)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var txns []models.Transaction
	err := q.
		Order("transactions.created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Preload("SourceWallet").
		Preload("DestinationWallet").
		Find(&txns).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}
	return txns, total, nil
}

func (r *walletRepository) ExecuteInTransaction(fn func(WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&walletRepository{db: tx})
	})
}
