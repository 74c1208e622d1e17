package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMw "sekolahku_backend/internals/middlewares/logger"
)

// SetupMiddlewares pasang middleware global dengan urutan yang benar:
// recovery paling luar, lalu cors, logger, rate limiter.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMw.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
