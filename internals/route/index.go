// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	ayRoute "sekolahku_backend/internals/features/school/academics/academic_years/route"
	csRoute "sekolahku_backend/internals/features/school/classes/class_sections/route"
	promoRoute "sekolahku_backend/internals/features/school/promotions/route"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// SetupRoutes: seluruh route admin di bawah /api/a, dilindungi JWT.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app, db)

	api := app.Group("/api/a", authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	}))

	promoRoute.PromotionAdminRoutes(api, db)
	ayRoute.AcademicYearAdminRoutes(api, db)
	csRoute.ClassSectionAdminRoutes(api, db)
}
