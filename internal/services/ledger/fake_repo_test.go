package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"securewallet/internal/models"
	"securewallet/internal/repositories"
)

// fakeRepo is an in-memory repositories.WalletRepository with real locking
// semantics: GetByIDForUpdate blocks on a per-wallet mutex held until the
// enclosing unit of work finishes, and writes are staged per session and
// only become visible on commit. Hooks inject faults at specific points.
type fakeRepo struct {
	mu           sync.Mutex
	wallets      map[uint]*models.Wallet
	transactions []*models.Transaction
	rowLocks     map[uint]*sync.Mutex
	nextWalletID uint
	nextTxnID    uint

	// afterLock runs after a row lock is acquired, before the row is read.
	afterLock func(walletID uint)
	// updateErr runs on every staged wallet write; a non-nil return aborts it.
	updateErr func(w *models.Wallet) error
	// createTxnErr fails every transaction insert.
	createTxnErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		wallets:  make(map[uint]*models.Wallet),
		rowLocks: make(map[uint]*sync.Mutex),
	}
}

func (f *fakeRepo) seedWallet(userID uint, balance string, status models.WalletStatus) *models.Wallet {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextWalletID++
	w := &models.Wallet{
		ID:           f.nextWalletID,
		UserID:       userID,
		WalletNumber: fmt.Sprintf("WTEST%010d", f.nextWalletID),
		Name:         fmt.Sprintf("Wallet %d", f.nextWalletID),
		WalletType:   models.WalletTypeChecking,
		Balance:      decimal.RequireFromString(balance),
		Currency:     "USD",
		Status:       status,
		CreatedAt:    time.Now(),
	}
	f.wallets[w.ID] = w
	f.rowLocks[w.ID] = &sync.Mutex{}
	return w
}

// seedTransaction inserts a committed record directly, bypassing the unit of
// work, so listing tests can control creation timestamps.
func (f *fakeRepo) seedTransaction(t models.Transaction) *models.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextTxnID++
	t.ID = f.nextTxnID
	if t.ReferenceNumber == "" {
		t.ReferenceNumber = fmt.Sprintf("TXNTEST%08d", t.ID)
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	cp := t
	f.transactions = append(f.transactions, &cp)
	return &cp
}

func (f *fakeRepo) balance(walletID uint) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wallets[walletID].Balance
}

func (f *fakeRepo) transactionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.transactions)
}

// bumpVersion advances the committed version, simulating a writer that got in
// ahead of the current session.
func (f *fakeRepo) bumpVersion(walletID uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wallets[walletID].Version++
}

func (f *fakeRepo) Create(w *models.Wallet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextWalletID++
	w.ID = f.nextWalletID
	cp := *w
	f.wallets[w.ID] = &cp
	f.rowLocks[w.ID] = &sync.Mutex{}
	return nil
}

func (f *fakeRepo) GetByID(id uint) (*models.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[id]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (f *fakeRepo) GetByIDForUpdate(id uint) (*models.Wallet, error) {
	return f.GetByID(id)
}

func (f *fakeRepo) GetByUserID(userID uint) ([]*models.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Wallet
	for _, w := range f.wallets {
		if w.UserID == userID {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(w *models.Wallet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.wallets[w.ID]
	if !ok {
		return repositories.ErrWalletNotFound
	}
	if stored.Version != w.Version {
		return repositories.ErrVersionConflict
	}
	cp := *w
	cp.Version++
	f.wallets[w.ID] = &cp
	w.Version++
	return nil
}

func (f *fakeRepo) CreateTransaction(t *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextTxnID++
	t.ID = f.nextTxnID
	if t.ReferenceNumber == "" {
		t.ReferenceNumber = fmt.Sprintf("TXNTEST%08d", t.ID)
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	cp := *t
	f.transactions = append(f.transactions, &cp)
	return nil
}

func (f *fakeRepo) GetTransactionByID(id uint) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.transactions {
		if t.ID == id {
			cp := *t
			f.preloadLocked(&cp)
			return &cp, nil
		}
	}
	return nil, repositories.ErrTransactionNotFound
}

func (f *fakeRepo) QueryTransactions(_ context.Context, filter repositories.TransactionFilter, page repositories.Page) ([]models.Transaction, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*models.Transaction
	for _, t := range f.transactions {
		if filter.WalletID != nil {
			touches := (t.SourceWalletID != nil && *t.SourceWalletID == *filter.WalletID) ||
				(t.DestinationWalletID != nil && *t.DestinationWalletID == *filter.WalletID)
			if !touches {
				continue
			}
		} else if !f.ownsEitherSideLocked(t, filter.UserID) {
			continue
		}
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		if filter.StartDate != nil && t.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndBefore != nil && !t.CreatedAt.Before(*filter.EndBefore) {
			continue
		}
		matched = append(matched, t)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := page.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.Limit
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]models.Transaction, 0, end-start)
	for _, t := range matched[start:end] {
		cp := *t
		f.preloadLocked(&cp)
		out = append(out, cp)
	}
	return out, total, nil
}

func (f *fakeRepo) ownsEitherSideLocked(t *models.Transaction, userID uint) bool {
	if t.SourceWalletID != nil {
		if w := f.wallets[*t.SourceWalletID]; w != nil && w.UserID == userID {
			return true
		}
	}
	if t.DestinationWalletID != nil {
		if w := f.wallets[*t.DestinationWalletID]; w != nil && w.UserID == userID {
			return true
		}
	}
	return false
}

func (f *fakeRepo) preloadLocked(t *models.Transaction) {
	if t.SourceWalletID != nil {
		if w := f.wallets[*t.SourceWalletID]; w != nil {
			cp := *w
			t.SourceWallet = &cp
		}
	}
	if t.DestinationWalletID != nil {
		if w := f.wallets[*t.DestinationWalletID]; w != nil {
			cp := *w
			t.DestinationWallet = &cp
		}
	}
}

func (f *fakeRepo) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	s := &fakeSession{fakeRepo: f, stagedWallets: make(map[uint]*models.Wallet)}
	err := fn(s)
	if err == nil {
		s.commit()
	}
	s.releaseLocks()
	return err
}

// fakeSession scopes one unit of work. Reads inside it see committed state,
// writes stay staged until commit, and row locks acquired through it are held
// for the whole session.
type fakeSession struct {
	*fakeRepo
	lockedIDs     []uint
	stagedWallets map[uint]*models.Wallet
	stagedTxns    []*models.Transaction
}

func (s *fakeSession) GetByIDForUpdate(id uint) (*models.Wallet, error) {
	s.mu.Lock()
	lock := s.rowLocks[id]
	s.mu.Unlock()
	if lock == nil {
		return nil, repositories.ErrWalletNotFound
	}

	lock.Lock()
	s.lockedIDs = append(s.lockedIDs, id)
	if s.afterLock != nil {
		s.afterLock(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *s.wallets[id]
	return &cp, nil
}

func (s *fakeSession) Update(w *models.Wallet) error {
	if s.updateErr != nil {
		if err := s.updateErr(w); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.wallets[w.ID]
	if !ok {
		return repositories.ErrWalletNotFound
	}
	if stored.Version != w.Version {
		return repositories.ErrVersionConflict
	}
	cp := *w
	cp.Version++
	s.stagedWallets[w.ID] = &cp
	w.Version++
	return nil
}

func (s *fakeSession) CreateTransaction(t *models.Transaction) error {
	if s.createTxnErr != nil {
		return s.createTxnErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTxnID++
	t.ID = s.nextTxnID
	if t.ReferenceNumber == "" {
		t.ReferenceNumber = fmt.Sprintf("TXNTEST%08d", t.ID)
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	cp := *t
	s.stagedTxns = append(s.stagedTxns, &cp)
	return nil
}

func (s *fakeSession) commit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, w := range s.stagedWallets {
		s.wallets[id] = w
	}
	s.transactions = append(s.transactions, s.stagedTxns...)
}

func (s *fakeSession) releaseLocks() {
	for i := len(s.lockedIDs) - 1; i >= 0; i-- {
		s.mu.Lock()
		lock := s.rowLocks[s.lockedIDs[i]]
		s.mu.Unlock()
		lock.Unlock()
	}
}
