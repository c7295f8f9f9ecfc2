// Package routes wires repositories, services and handlers onto the fiber
// application.
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"securewallet/internal/config"
	"securewallet/internal/handlers"
	"securewallet/internal/middleware"
	"securewallet/internal/repositories"
	"securewallet/internal/services/ledger"
	"securewallet/internal/services/wallet"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	walletRepo := repositories.NewWalletRepository(db)
	userRepo := repositories.NewUserRepository(db)

	walletService := wallet.NewService(
		walletRepo,
		userRepo,
		wallet.NewPolicyRegistry(),
		repositories.CacheService,
	)
	ledgerService := ledger.NewService(
		walletRepo,
		repositories.CacheService,
		&ledger.NoopMetricsCollector{},
	)

	walletHandler := handlers.NewWalletHandler(walletService)
	transactionHandler := handlers.NewTransactionHandler(ledgerService)

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth := middleware.Auth(config.GetEnv("JWT_SECRET", "securewallet-dev-secret"))

	wallets := api.Group("/wallets", auth)
	wallets.Post("/", walletHandler.CreateWallet)
	wallets.Get("/", walletHandler.GetWallets)
	wallets.Get("/:id", walletHandler.GetWallet)
	wallets.Get("/:id/balance", walletHandler.GetBalance)
	wallets.Patch("/:id/status", walletHandler.UpdateStatus)

	transactions := api.Group("/transactions", auth)
	transactions.Post("/deposit", transactionHandler.Deposit)
	transactions.Post("/withdraw", transactionHandler.Withdraw)
	transactions.Post("/transfer", transactionHandler.Transfer)
	transactions.Get("/", transactionHandler.ListTransactions)
	transactions.Get("/:id", transactionHandler.GetTransaction)
}
