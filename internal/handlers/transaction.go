package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"securewallet/internal/middleware"
	"securewallet/internal/models"
	"securewallet/internal/services/ledger"
	"securewallet/internal/utils/pagination"
	"securewallet/internal/utils/response"
	"securewallet/internal/validation"
)

type TransactionHandler struct {
	ledgerService ledger.Service
}

func NewTransactionHandler(ledgerService ledger.Service) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService}
}

type depositRequest struct {
	WalletID            uint            `json:"wallet_id" validate:"required,min=1"`
	Amount              decimal.Decimal `json:"amount" validate:"required"`
	Description         string          `json:"description" validate:"max=500"`
	ExternalReferenceID string          `json:"external_reference_id" validate:"max=100"`
}

type withdrawRequest struct {
	WalletID            uint            `json:"wallet_id" validate:"required,min=1"`
	Amount              decimal.Decimal `json:"amount" validate:"required"`
	Description         string          `json:"description" validate:"max=500"`
	ExternalReferenceID string          `json:"external_reference_id" validate:"max=100"`
}

type transferRequest struct {
	SourceWalletID      uint            `json:"source_wallet_id" validate:"required,min=1"`
	DestinationWalletID uint            `json:"destination_wallet_id" validate:"required,min=1"`
	Amount              decimal.Decimal `json:"amount" validate:"required"`
	Description         string          `json:"description" validate:"max=500"`
	ExternalReferenceID string          `json:"external_reference_id" validate:"max=100"`
}

func (h *TransactionHandler) Deposit(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c, "invalid claims")
	}

	var req depositRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	if err := validation.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	txn, err := h.ledgerService.Deposit(c.Context(), claims.UserID, ledger.DepositRequest{
		WalletID:            req.WalletID,
		Amount:              req.Amount,
		Description:         req.Description,
		ExternalReferenceID: req.ExternalReferenceID,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, fiber.Map{"transaction": txn})
}

func (h *TransactionHandler) Withdraw(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c, "invalid claims")
	}

	var req withdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	if err := validation.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	txn, err := h.ledgerService.Withdraw(c.Context(), claims.UserID, ledger.WithdrawRequest{
		WalletID:            req.WalletID,
		Amount:              req.Amount,
		Description:         req.Description,
		ExternalReferenceID: req.ExternalReferenceID,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, fiber.Map{"transaction": txn})
}

func (h *TransactionHandler) Transfer(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c, "invalid claims")
	}

	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	if err := validation.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	txn, err := h.ledgerService.Transfer(c.Context(), claims.UserID, ledger.TransferRequest{
		SourceWalletID:      req.SourceWalletID,
		DestinationWalletID: req.DestinationWalletID,
		Amount:              req.Amount,
		Description:         req.Description,
		ExternalReferenceID: req.ExternalReferenceID,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, fiber.Map{"transaction": txn})
}

func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c, "invalid claims")
	}

	q := ledger.ListQuery{}
	p := pagination.ParseFromRequest(c)
	q.Page = p.Page
	q.Limit = p.Limit

	if v := c.Query("wallet_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return response.BadRequest(c, "invalid wallet_id")
		}
		walletID := uint(id)
		q.WalletID = &walletID
	}
	if v := c.Query("type"); v != "" {
		t := models.TransactionType(v)
		q.Type = &t
	}
	if v := c.Query("start_date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return response.BadRequest(c, "invalid start_date, expected YYYY-MM-DD")
		}
		q.StartDate = &d
	}
	if v := c.Query("end_date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return response.BadRequest(c, "invalid end_date, expected YYYY-MM-DD")
		}
		q.EndDate = &d
	}

	txns, total, err := h.ledgerService.ListTransactions(c.Context(), claims.UserID, q)
	if err != nil {
		return response.FromError(c, err)
	}
	p.Total = total
	return response.Success(c, pagination.Response(p, txns))
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c, "invalid claims")
	}
	transactionID, err := c.ParamsInt("id")
	if err != nil || transactionID < 1 {
		return response.BadRequest(c, "invalid transaction id")
	}

	txn, err := h.ledgerService.GetTransaction(c.Context(), uint(transactionID), claims.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, fiber.Map{"transaction": txn})
}
