package serverutils

import (
	"errors"

	"ai-usecase-explorer-be/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps the error taxonomy to HTTP statuses. The UI
// renders these as dismissible banners; none of them are fatal to the
// session.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *apperror.ValidationError
		var importErr *apperror.ImportParseError
		var generationErr *apperror.GenerationParseError
		var requestErr *apperror.RequestError
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &validationErr):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(validationErr.Message))
		case errors.As(err, &importErr):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(importErr.Message))
		case errors.As(err, &generationErr):
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(generationErr.Message))
		case errors.As(err, &requestErr):
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(requestErr.Message))
		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("internal server error"))
		}
	}
}
