// file: internals/features/school/classes/class_sections/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	csController "sekolahku_backend/internals/features/school/classes/class_sections/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

func ClassSectionAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := csController.NewClassSectionController(db)

	staffOnly := authMiddleware.OnlyRolesSlice(
		constants.RoleErrorStaff("class section"),
		constants.StaffAndAbove,
	)

	cs := api.Group("/class-sections", staffOnly)
	cs.Get("/", ctl.List)
}
