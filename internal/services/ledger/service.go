// Package ledger is the balance-mutation and transaction-recording engine.
// Each operation runs as one atomic unit of work: lock the wallet rows,
// validate ownership/status/funds, mutate balances, persist wallets and the
// transaction record together, or roll everything back.
package ledger

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/shopspring/decimal"

	"securewallet/internal/errors"
	"securewallet/internal/models"
	"securewallet/internal/repositories"
	"securewallet/internal/repositories/cache"
)

// Pagination defaults for transaction listing.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Service defines the ledger operations. Every mutating operation takes the
// authenticated caller's userID explicitly; the ledger never resolves
// identity itself.
type Service interface {
	Deposit(ctx context.Context, userID uint, req DepositRequest) (*TransactionResponse, error)
	Withdraw(ctx context.Context, userID uint, req WithdrawRequest) (*TransactionResponse, error)
	Transfer(ctx context.Context, userID uint, req TransferRequest) (*TransactionResponse, error)
	ListTransactions(ctx context.Context, userID uint, q ListQuery) ([]*TransactionResponse, int64, error)
	GetTransaction(ctx context.Context, transactionID, userID uint) (*TransactionResponse, error)
}

type service struct {
	repo    repositories.WalletRepository
	cache   Cache
	metrics MetricsCollector
}

// NewService creates the ledger service. Cache and metrics are optional.
func NewService(repo repositories.WalletRepository, c Cache, metrics MetricsCollector) Service {
	if repo == nil {
		panic("repo is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{repo: repo, cache: c, metrics: metrics}
}

func (s *service) Deposit(ctx context.Context, userID uint, req DepositRequest) (*TransactionResponse, error) {
	start := time.Now()
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.ErrInvalidAmount
	}

	var (
		record *models.Transaction
		wallet *models.Wallet
	)
	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		w, err := lockWallet(tx, req.WalletID)
		if err != nil {
			return err
		}
		if w.UserID != userID {
			return errors.ErrUnauthorized
		}
		if !w.IsActive() {
			return errors.ErrInactiveWallet
		}

		if err := w.Credit(req.Amount); err != nil {
			return err
		}
		if err := saveWallet(tx, w); err != nil {
			return err
		}

		record = &models.Transaction{
			DestinationWalletID: &w.ID,
			Amount:              req.Amount,
			Type:                models.TransactionTypeDeposit,
			Description:         defaultDescription(req.Description, "Deposit"),
			ExternalReferenceID: req.ExternalReferenceID,
		}
		record.Complete()
		if err := saveTransaction(tx, record); err != nil {
			return err
		}
		record.DestinationWallet = w
		wallet = w
		return nil
	})
	if err != nil {
		s.metrics.RecordError("deposit", errorCode(err))
		return nil, err
	}

	s.invalidateWallet(ctx, wallet)
	s.metrics.RecordTransaction("deposit", req.Amount)
	s.metrics.RecordOperationDuration("deposit", time.Since(start))
	return mapToResponse(record), nil
}

func (s *service) Withdraw(ctx context.Context, userID uint, req WithdrawRequest) (*TransactionResponse, error) {
	start := time.Now()
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.ErrInvalidAmount
	}

	var (
		record *models.Transaction
		wallet *models.Wallet
	)
	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		w, err := lockWallet(tx, req.WalletID)
		if err != nil {
			return err
		}
		if w.UserID != userID {
			return errors.ErrUnauthorized
		}
		if !w.IsActive() {
			return errors.ErrInactiveWallet
		}
		// checked here and again inside Debit; both must agree
		if w.Balance.LessThan(req.Amount) {
			return errors.NewInsufficientBalance(w.ID, req.Amount)
		}

		if err := w.Debit(req.Amount); err != nil {
			return err
		}
		if err := saveWallet(tx, w); err != nil {
			return err
		}

		record = &models.Transaction{
			SourceWalletID:      &w.ID,
			Amount:              req.Amount,
			Type:                models.TransactionTypeWithdrawal,
			Description:         defaultDescription(req.Description, "Withdrawal"),
			ExternalReferenceID: req.ExternalReferenceID,
		}
		record.Complete()
		if err := saveTransaction(tx, record); err != nil {
			return err
		}
		record.SourceWallet = w
		wallet = w
		return nil
	})
	if err != nil {
		s.metrics.RecordError("withdraw", errorCode(err))
		return nil, err
	}

	s.invalidateWallet(ctx, wallet)
	s.metrics.RecordTransaction("withdraw", req.Amount)
	s.metrics.RecordOperationDuration("withdraw", time.Since(start))
	return mapToResponse(record), nil
}

func (s *service) Transfer(ctx context.Context, userID uint, req TransferRequest) (*TransactionResponse, error) {
	start := time.Now()
	// rejected before any lock is taken
	if req.SourceWalletID == req.DestinationWalletID {
		return nil, errors.NewInvalidTransaction("source and destination wallets cannot be the same")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.ErrInvalidAmount
	}

	var (
		record       *models.Transaction
		source, dest *models.Wallet
	)
	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		// Locks are taken in ascending wallet-id order regardless of
		// transfer direction so concurrent opposed transfers on the same
		// pair cannot deadlock.
		first, second := req.SourceWalletID, req.DestinationWalletID
		if second < first {
			first, second = second, first
		}
		locked := make(map[uint]*models.Wallet, 2)
		for _, id := range []uint{first, second} {
			w, err := lockWallet(tx, id)
			if err != nil {
				return err
			}
			locked[id] = w
		}
		src := locked[req.SourceWalletID]
		dst := locked[req.DestinationWalletID]

		if src.UserID != userID {
			return errors.ErrUnauthorized
		}
		if !src.IsActive() || !dst.IsActive() {
			return errors.ErrInactiveWallet
		}
		if src.Balance.LessThan(req.Amount) {
			return errors.NewInsufficientBalance(src.ID, req.Amount)
		}

		if err := src.Debit(req.Amount); err != nil {
			return err
		}
		if err := dst.Credit(req.Amount); err != nil {
			return err
		}
		if err := saveWallet(tx, src); err != nil {
			return err
		}
		if err := saveWallet(tx, dst); err != nil {
			return err
		}

		record = &models.Transaction{
			SourceWalletID:      &src.ID,
			DestinationWalletID: &dst.ID,
			Amount:              req.Amount,
			Type:                models.TransactionTypeTransfer,
			Description:         defaultDescription(req.Description, "Transfer"),
			ExternalReferenceID: req.ExternalReferenceID,
		}
		record.Complete()
		if err := saveTransaction(tx, record); err != nil {
			return err
		}
		record.SourceWallet = src
		record.DestinationWallet = dst
		source, dest = src, dst
		return nil
	})
	if err != nil {
		s.metrics.RecordError("transfer", errorCode(err))
		return nil, err
	}

	s.invalidateWallet(ctx, source)
	s.invalidateWallet(ctx, dest)
	s.metrics.RecordTransaction("transfer", req.Amount)
	s.metrics.RecordOperationDuration("transfer", time.Since(start))
	return mapToResponse(record), nil
}

func (s *service) ListTransactions(ctx context.Context, userID uint, q ListQuery) ([]*TransactionResponse, int64, error) {
	filter := repositories.TransactionFilter{
		UserID:    userID,
		Type:      q.Type,
		StartDate: q.StartDate,
	}
	if q.EndDate != nil {
		end := q.EndDate.AddDate(0, 0, 1)
		filter.EndBefore = &end
	}
	if q.WalletID != nil {
		// ownership of the named wallet is checked before filtering
		w, err := s.repo.GetByID(*q.WalletID)
		if err != nil {
			if stderrors.Is(err, repositories.ErrWalletNotFound) {
				return nil, 0, errors.NewWalletNotFound(*q.WalletID)
			}
			return nil, 0, err
		}
		if w.UserID != userID {
			return nil, 0, errors.ErrUnauthorized
		}
		filter.WalletID = q.WalletID
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	txns, total, err := s.repo.QueryTransactions(ctx, filter, repositories.Page{
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, 0, err
	}

	out := make([]*TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, mapToResponse(&txns[i]))
	}
	return out, total, nil
}

func (s *service) GetTransaction(ctx context.Context, transactionID, userID uint) (*TransactionResponse, error) {
	t, err := s.repo.GetTransactionByID(transactionID)
	if err != nil {
		if stderrors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, errors.NewTransactionNotFound(transactionID)
		}
		return nil, err
	}

	owns := (t.SourceWallet != nil && t.SourceWallet.UserID == userID) ||
		(t.DestinationWallet != nil && t.DestinationWallet.UserID == userID)
	if !owns {
		return nil, errors.ErrUnauthorized
	}
	return mapToResponse(t), nil
}

// lockWallet loads a wallet under an exclusive row lock and translates the
// repository sentinel.
func lockWallet(tx repositories.WalletRepository, walletID uint) (*models.Wallet, error) {
	w, err := tx.GetByIDForUpdate(walletID)
	if err != nil {
		if stderrors.Is(err, repositories.ErrWalletNotFound) {
			return nil, errors.NewWalletNotFound(walletID)
		}
		return nil, err
	}
	return w, nil
}

func saveWallet(tx repositories.WalletRepository, w *models.Wallet) error {
	if err := tx.Update(w); err != nil {
		if stderrors.Is(err, repositories.ErrVersionConflict) {
			return errors.ErrConcurrentModification
		}
		return err
	}
	return nil
}

func saveTransaction(tx repositories.WalletRepository, t *models.Transaction) error {
	if err := tx.CreateTransaction(t); err != nil {
		if stderrors.Is(err, repositories.ErrDuplicateKey) {
			return errors.ErrDuplicateResource
		}
		return err
	}
	return nil
}

func defaultDescription(desc, fallback string) string {
	if desc == "" {
		return fallback
	}
	return desc
}

func errorCode(err error) string {
	var de *errors.DomainError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return "INTERNAL"
}

func (s *service) invalidateWallet(ctx context.Context, w *models.Wallet) {
	if s.cache == nil || w == nil {
		return
	}
	_ = s.cache.Delete(ctx,
		cache.WalletKey(w.ID, w.UserID),
		cache.BalanceKey(w.ID, w.UserID),
		cache.WalletListKey(w.UserID),
	)
}
