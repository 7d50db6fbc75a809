package response

import (
	"errors"
	"log"

	domainerrors "cardfolio/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// ValidationError reports per-field messages so the caller can re-prompt.
func ValidationError(c *fiber.Ctx, message string, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  message,
		"code":   domainerrors.ErrValidation.Code,
		"fields": fields,
	})
}

// FromError maps a domain error to its HTTP status: validation 400, unknown
// card 404, lock timeout 503, any other storage failure 500. A 500 body names
// the failed operation only; the cause goes to the log.
func FromError(c *fiber.Ctx, err error) error {
	var de *domainerrors.DomainError
	if !errors.As(err, &de) {
		log.Printf("⚠️ %s %s: %v", c.Method(), c.Path(), err)
		return ServerError(c, "Internal server error")
	}
	switch {
	case domainerrors.IsValidation(err):
		return ValidationError(c, de.Message, de.Fields)
	case domainerrors.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": de.Message, "code": de.Code})
	case errors.Is(err, domainerrors.ErrLockTimeout):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": de.Message, "code": de.Code})
	}
	log.Printf("⚠️ %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": de.Message, "code": de.Code})
}
