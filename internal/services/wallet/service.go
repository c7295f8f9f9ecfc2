// Package wallet manages wallet lifecycle: class-policy creation, views,
// balances and status changes. Balance mutation belongs to the ledger
// service; this service never credits or debits.
package wallet

import (
	"context"
	stderrors "errors"
	"fmt"

	"securewallet/internal/errors"
	"securewallet/internal/models"
	"securewallet/internal/repositories"
	"securewallet/internal/repositories/cache"
)

// Service defines wallet management operations. Every operation takes the
// authenticated caller's userID explicitly.
type Service interface {
	CreateWallet(ctx context.Context, userID uint, walletType models.WalletType, name string) (*WalletResponse, error)
	GetWallets(ctx context.Context, userID uint) ([]*WalletResponse, error)
	GetWallet(ctx context.Context, walletID, userID uint) (*WalletResponse, error)
	GetBalance(ctx context.Context, walletID, userID uint) (*BalanceResponse, error)
	UpdateStatus(ctx context.Context, walletID uint, status models.WalletStatus, userID uint) (*WalletResponse, error)
}

type service struct {
	repo     repositories.WalletRepository
	users    repositories.UserRepository
	policies *PolicyRegistry
	cache    Cache
}

// NewService creates the wallet management service. The policy registry is
// an explicit dependency, not a package singleton.
func NewService(repo repositories.WalletRepository, users repositories.UserRepository, policies *PolicyRegistry, c Cache) Service {
	if repo == nil {
		panic("repo is required")
	}
	if users == nil {
		panic("user repo is required")
	}
	if policies == nil {
		panic("policy registry is required")
	}
	return &service{repo: repo, users: users, policies: policies, cache: c}
}

func (s *service) CreateWallet(ctx context.Context, userID uint, walletType models.WalletType, name string) (*WalletResponse, error) {
	if _, err := s.users.GetByID(userID); err != nil {
		if stderrors.Is(err, repositories.ErrUserNotFound) {
			return nil, errors.NewUserNotFound(userID)
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	w, err := s.policies.NewWallet(walletType, userID, name)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(w); err != nil {
		// wallet-number collisions are not retried at this layer
		if stderrors.Is(err, repositories.ErrDuplicateKey) {
			return nil, errors.ErrDuplicateResource
		}
		return nil, err
	}

	s.invalidateList(ctx, userID)
	return MapToResponse(w), nil
}

func (s *service) GetWallets(ctx context.Context, userID uint) ([]*WalletResponse, error) {
	if s.cache != nil {
		var cached []*WalletResponse
		if hit, err := s.cache.Get(ctx, cache.WalletListKey(userID), &cached); err == nil && hit {
			return cached, nil
		}
	}

	wallets, err := s.repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	out := make([]*WalletResponse, 0, len(wallets))
	for _, w := range wallets {
		out = append(out, MapToResponse(w))
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cache.WalletListKey(userID), out)
	}
	return out, nil
}

func (s *service) GetWallet(ctx context.Context, walletID, userID uint) (*WalletResponse, error) {
	if s.cache != nil {
		var cached WalletResponse
		if hit, err := s.cache.Get(ctx, cache.WalletKey(walletID, userID), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	w, err := s.loadOwned(walletID, userID)
	if err != nil {
		return nil, err
	}

	resp := MapToResponse(w)
	if s.cache != nil {
		_ = s.cache.Set(ctx, cache.WalletKey(walletID, userID), resp)
	}
	return resp, nil
}

func (s *service) GetBalance(ctx context.Context, walletID, userID uint) (*BalanceResponse, error) {
	w, err := s.loadOwned(walletID, userID)
	if err != nil {
		return nil, err
	}
	return &BalanceResponse{
		WalletID:         w.ID,
		WalletName:       w.Name,
		Balance:          w.Balance,
		AvailableBalance: w.AvailableBalance(),
		Currency:         w.Currency,
	}, nil
}

func (s *service) UpdateStatus(ctx context.Context, walletID uint, status models.WalletStatus, userID uint) (*WalletResponse, error) {
	var updated *models.Wallet
	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		w, err := tx.GetByIDForUpdate(walletID)
		if err != nil {
			if stderrors.Is(err, repositories.ErrWalletNotFound) {
				return errors.NewWalletNotFound(walletID)
			}
			return err
		}
		if w.UserID != userID {
			return errors.ErrUnauthorized
		}
		w.Status = status
		if err := tx.Update(w); err != nil {
			if stderrors.Is(err, repositories.ErrVersionConflict) {
				return errors.ErrConcurrentModification
			}
			return err
		}
		updated = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, walletID, userID)
	return MapToResponse(updated), nil
}

func (s *service) loadOwned(walletID, userID uint) (*models.Wallet, error) {
	w, err := s.repo.GetByID(walletID)
	if err != nil {
		if stderrors.Is(err, repositories.ErrWalletNotFound) {
			return nil, errors.NewWalletNotFound(walletID)
		}
		return nil, err
	}
	if w.UserID != userID {
		return nil, errors.ErrUnauthorized
	}
	return w, nil
}

func (s *service) invalidate(ctx context.Context, walletID, userID uint) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx,
		cache.WalletKey(walletID, userID),
		cache.BalanceKey(walletID, userID),
		cache.WalletListKey(userID),
	)
}

func (s *service) invalidateList(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, cache.WalletListKey(userID))
}
