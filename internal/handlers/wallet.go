package handlers

import (
	"github.com/gofiber/fiber/v2"

	"securewallet/internal/middleware"
	"securewallet/internal/models"
	"securewallet/internal/services/wallet"
	"securewallet/internal/utils/response"
	"securewallet/internal/validation"
)

type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

type createWalletRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	WalletType string `json:"wallet_type" validate:"required,oneof=SAVINGS CHECKING INVESTMENT MERCHANT"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE INACTIVE FROZEN CLOSED"`
}

func (h *WalletHandler) CreateWallet(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c, "invalid claims")
	}

	var req createWalletRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	if err := validation.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	w, err := h.walletService.CreateWallet(c.Context(), claims.UserID, models.WalletType(req.WalletType), req.Name)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, fiber.Map{"wallet": w})
}

func (h *WalletHandler) GetWallets(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c, "invalid claims")
	}

	wallets, err := h.walletService.GetWallets(c.Context(), claims.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{"wallets": wallets})
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c, "invalid claims")
	}
	walletID, err := c.ParamsInt("id")
	if err != nil || walletID < 1 {
		return response.BadRequest(c, "invalid wallet id")
	}

	w, err := h.walletService.GetWallet(c.Context(), uint(walletID), claims.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{"wallet": w})
}

func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c, "invalid claims")
	}
	walletID, err := c.ParamsInt("id")
	if err != nil || walletID < 1 {
		return response.BadRequest(c, "invalid wallet id")
	}

	balance, err := h.walletService.GetBalance(c.Context(), uint(walletID), claims.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{"balance": balance})
}

func (h *WalletHandler) UpdateStatus(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c, "invalid claims")
	}
	walletID, err := c.ParamsInt("id")
	if err != nil || walletID < 1 {
		return response.BadRequest(c, "invalid wallet id")
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	if err := validation.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	w, err := h.walletService.UpdateStatus(c.Context(), uint(walletID), models.WalletStatus(req.Status), claims.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{"wallet": w})
}
