// Package main seeds demo users, wallets and a few ledger operations for
// local development, and prints a bearer token for each demo user.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"securewallet/internal/config"
	"securewallet/internal/models"
	"securewallet/internal/repositories"
	"securewallet/internal/services/ledger"
	"securewallet/internal/services/wallet"
	"securewallet/internal/utils"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
		if repositories.CacheService != nil {
			_ = repositories.CacheService.Close()
		}
	}()

	userRepo := repositories.NewUserRepository(repositories.DB)
	walletRepo := repositories.NewWalletRepository(repositories.DB)
	walletService := wallet.NewService(walletRepo, userRepo, wallet.NewPolicyRegistry(), nil)
	ledgerService := ledger.NewService(walletRepo, nil, nil)

	secret := config.GetEnv("JWT_SECRET", "securewallet-dev-secret")
	ctx := context.Background()

	alice := seedUser(userRepo, "alice@example.com", "Alice Demo")
	bob := seedUser(userRepo, "bob@example.com", "Bob Demo")

	aliceChecking, err := walletService.CreateWallet(ctx, alice.ID, models.WalletTypeChecking, "Alice Checking")
	if err != nil {
		log.Fatalf("Failed to create wallet: %v", err)
	}
	aliceSavings, err := walletService.CreateWallet(ctx, alice.ID, models.WalletTypeSavings, "Alice Savings")
	if err != nil {
		log.Fatalf("Failed to create wallet: %v", err)
	}
	bobChecking, err := walletService.CreateWallet(ctx, bob.ID, models.WalletTypeChecking, "Bob Checking")
	if err != nil {
		log.Fatalf("Failed to create wallet: %v", err)
	}

	if _, err := ledgerService.Deposit(ctx, alice.ID, ledger.DepositRequest{
		WalletID:            aliceChecking.ID,
		Amount:              decimal.RequireFromString("1000.00"),
		Description:         "Initial funding",
		ExternalReferenceID: uuid.NewString(),
	}); err != nil {
		log.Fatalf("Failed to seed deposit: %v", err)
	}
	if _, err := ledgerService.Transfer(ctx, alice.ID, ledger.TransferRequest{
		SourceWalletID:      aliceChecking.ID,
		DestinationWalletID: aliceSavings.ID,
		Amount:              decimal.RequireFromString("250.00"),
		Description:         "Savings top-up",
		ExternalReferenceID: uuid.NewString(),
	}); err != nil {
		log.Fatalf("Failed to seed transfer: %v", err)
	}
	if _, err := ledgerService.Transfer(ctx, alice.ID, ledger.TransferRequest{
		SourceWalletID:      aliceChecking.ID,
		DestinationWalletID: bobChecking.ID,
		Amount:              decimal.RequireFromString("75.00"),
		Description:         "Lunch split",
		ExternalReferenceID: uuid.NewString(),
	}); err != nil {
		log.Fatalf("Failed to seed transfer: %v", err)
	}

	for _, u := range []*models.User{alice, bob} {
		token, err := utils.GenerateToken(&models.UserClaims{
			UserID: u.ID,
			Email:  u.Email,
			Role:   "user",
		}, secret, 24*time.Hour)
		if err != nil {
			log.Fatalf("Failed to generate token: %v", err)
		}
		log.Printf("Token for %s: %s", u.Email, token)
	}

	log.Println("✅ Seed data created")
}

func seedUser(repo repositories.UserRepository, email, name string) *models.User {
	if existing, err := repo.GetByEmail(email); err == nil {
		log.Printf("User %s already exists", email)
		return existing
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(config.GetEnv("SEED_PASSWORD", "password123")), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hashed),
		Name:     name,
		Status:   "ACTIVE",
	}
	if err := repo.Create(user); err != nil {
		log.Fatalf("Failed to create user %s: %v", email, err)
	}
	return user
}
