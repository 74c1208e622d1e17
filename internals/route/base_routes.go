// file: internals/route/base_routes.go
package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "sekolahku backend up",
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "ok"
		dbStatus := "ok"
		if sqlDB, err := db.DB(); err != nil {
			status, dbStatus = "degraded", "unreachable"
		} else if err := sqlDB.Ping(); err != nil {
			status, dbStatus = "degraded", "unreachable"
		}
		return c.JSON(fiber.Map{
			"status":    status,
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}
