package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMiddleware "schooladmin_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware chain.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
	app.Use(loggerMiddleware.LoggerMiddleware())
}
