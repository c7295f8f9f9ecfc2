package wallet

import (
	"github.com/shopspring/decimal"

	"securewallet/internal/errors"
	"securewallet/internal/models"
)

// DefaultCurrency is the only currency in scope; conversion is a non-goal.
const DefaultCurrency = "USD"

// Policy is the per-class creation parameters. InterestRate is stored on the
// wallet but no accrual engine exists.
type Policy struct {
	MinimumBalance decimal.Decimal
	DailyLimit     decimal.Decimal
	InterestRate   decimal.Decimal
}

// PolicyRegistry maps a wallet class to its creation parameters. The class
// set is closed, so this is a fixed table rather than runtime registration.
// MERCHANT deliberately has no entry and fails resolution.
type PolicyRegistry struct {
	policies map[models.WalletType]Policy
}

func NewPolicyRegistry() *PolicyRegistry {
	return &PolicyRegistry{
		policies: map[models.WalletType]Policy{
			models.WalletTypeSavings: {
				MinimumBalance: decimal.RequireFromString("100.00"),
				DailyLimit:     decimal.RequireFromString("50000.00"),
				InterestRate:   decimal.RequireFromString("0.04"),
			},
			models.WalletTypeChecking: {
				MinimumBalance: decimal.RequireFromString("0.00"),
				DailyLimit:     decimal.RequireFromString("100000.00"),
				InterestRate:   decimal.RequireFromString("0.00"),
			},
			models.WalletTypeInvestment: {
				MinimumBalance: decimal.RequireFromString("1000.00"),
				DailyLimit:     decimal.RequireFromString("500000.00"),
				InterestRate:   decimal.RequireFromString("0.00"),
			},
		},
	}
}

// Resolve returns the policy for a wallet class.
func (r *PolicyRegistry) Resolve(walletType models.WalletType) (Policy, error) {
	p, ok := r.policies[walletType]
	if !ok {
		return Policy{}, errors.NewPolicyNotFound(string(walletType))
	}
	return p, nil
}

// NewWallet builds an unsaved wallet for the class with a zero balance,
// ACTIVE status and the class policy applied. The wallet number is generated
// at persist time.
func (r *PolicyRegistry) NewWallet(walletType models.WalletType, userID uint, name string) (*models.Wallet, error) {
	p, err := r.Resolve(walletType)
	if err != nil {
		return nil, err
	}
	return &models.Wallet{
		UserID:         userID,
		Name:           name,
		WalletType:     walletType,
		Balance:        decimal.Zero,
		MinimumBalance: p.MinimumBalance,
		InterestRate:   p.InterestRate,
		DailyLimit:     p.DailyLimit,
		Currency:       DefaultCurrency,
		Status:         models.WalletStatusActive,
	}, nil
}
