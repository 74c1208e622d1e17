// file: internals/features/school/promotions/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	promoController "sekolahku_backend/internals/features/school/promotions/controller"
	"sekolahku_backend/internals/middlewares"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// PromotionAdminRoutes: seluruh surface promosi & readmisi (staff ke atas).
func PromotionAdminRoutes(api fiber.Router, db *gorm.DB) {
	promoCtl := promoController.NewPromotionController(db)
	readmitCtl := promoController.NewReadmissionController(db)

	staffOnly := authMiddleware.OnlyRolesSlice(
		constants.RoleErrorStaff("aksi promosi"),
		constants.StaffAndAbove,
	)

	promo := api.Group("/promotions", staffOnly)

	promo.Get("/config", promoCtl.GetConfig)
	promo.Put("/config", promoCtl.UpsertConfig)
	promo.Post("/config", promoCtl.UpsertConfig)

	promo.Post("/preview", promoCtl.Preview)
	// run dibatasi rate limiter khusus — operasi berat & mengubah banyak baris
	promo.Post("/run", middlewares.PromotionRunRateLimiter(), promoCtl.Run)

	promo.Get("/pending-readmission", readmitCtl.ListPending)
	promo.Post("/readmit/:student_id", readmitCtl.Readmit)

	promo.Get("/logs", promoCtl.GetLogs)
}
