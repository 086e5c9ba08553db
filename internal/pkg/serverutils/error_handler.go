package serverutils

import (
	"errors"
	"strconv"
	"time"

	"quiltdex-be/internal/pkg/logger"
	"quiltdex-be/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors returned by handlers into JSON
// responses. AppError carries its own code/status; everything else is logged
// with context and answered with a generic message so raw error detail never
// reaches the client.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			status := apperr.StatusFor(appErr.Code)
			if appErr.Code == apperr.CodeRateLimited && appErr.RetryAfter > 0 {
				ctx.Set("Retry-After", strconv.Itoa(int(appErr.RetryAfter/time.Second)))
			}
			return ctx.Status(status).JSON(fiber.Map{
				"success": false,
				"code":    string(appErr.Code),
				"message": appErr.Message,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < 500 {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"code":    string(apperr.CodeValidationFailed),
				"message": fiberErr.Message,
			})
		}

		if log != nil {
			log.Error("http", "unhandled request error", map[string]interface{}{
				"error":  err.Error(),
				"path":   ctx.Path(),
				"method": ctx.Method(),
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    string(apperr.CodeInternal),
			"message": "Something went wrong. Please try again",
		})
	}
}
