// file: internals/features/school/academics/academic_years/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	ayController "sekolahku_backend/internals/features/school/academics/academic_years/controller"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

func AcademicYearAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := ayController.NewAcademicYearController(db)

	staffOnly := authMiddleware.OnlyRolesSlice(
		constants.RoleErrorStaff("tahun ajaran"),
		constants.StaffAndAbove,
	)

	ay := api.Group("/academic-years", staffOnly)
	ay.Get("/", ctl.List)
	ay.Post("/", ctl.Create)
}
