package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "securewallet/internal/errors"
)

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// Created sends a JSON response with status 201.
func Created(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusCreated, data)
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusBadRequest, fiber.Map{"error": message})
}

// Unauthorized sends a JSON error response with status 401.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusUnauthorized, fiber.Map{"error": message})
}

// FromError maps a domain error to its HTTP status; anything without a code
// is an internal error and its details stay out of the response.
func FromError(c *fiber.Ctx, err error) error {
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		return Respond(c, fiber.StatusInternalServerError, fiber.Map{"error": "internal server error"})
	}
	return Respond(c, statusFor(de.Code), fiber.Map{
		"error": de.Message,
		"code":  de.Code,
	})
}

func statusFor(code string) int {
	switch code {
	case "WALLET_NOT_FOUND", "TRANSACTION_NOT_FOUND", "USER_NOT_FOUND":
		return fiber.StatusNotFound
	case "UNAUTHORIZED":
		return fiber.StatusForbidden
	case "CONCURRENT_MODIFICATION", "DUPLICATE_RESOURCE":
		return fiber.StatusConflict
	case "INSUFFICIENT_BALANCE", "INVALID_AMOUNT", "INVALID_TRANSACTION",
		"INACTIVE_WALLET", "POLICY_NOT_FOUND":
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
