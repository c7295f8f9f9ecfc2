package cache

import "fmt"

// Cache key builders. Keys embed the owning user so a hit implies the
// ownership check already passed for that caller.

func WalletKey(walletID, userID uint) string {
	return fmt.Sprintf("wallet:%d:user:%d", walletID, userID)
}

func WalletListKey(userID uint) string {
	return fmt.Sprintf("wallets:user:%d", userID)
}

func BalanceKey(walletID, userID uint) string {
	return fmt.Sprintf("balance:%d:user:%d", walletID, userID)
}
