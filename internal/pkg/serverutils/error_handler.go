package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors escaping controllers into the
// standard response envelope. Streaming endpoints report errors in-band and
// never reach this path once the response has started.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := "internal server error"

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		case errors.Is(err, ErrNotFound):
			code = fiber.StatusNotFound
			message = err.Error()
		case errors.Is(err, ErrForbidden):
			code = fiber.StatusForbidden
			message = err.Error()
		case errors.Is(err, ErrUnauthorized):
			code = fiber.StatusUnauthorized
			message = err.Error()
		case errors.Is(err, ErrUnsupportedMedia):
			code = fiber.StatusUnsupportedMediaType
			message = err.Error()
		case errors.Is(err, ErrConflict):
			code = fiber.StatusConflict
			message = err.Error()
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
