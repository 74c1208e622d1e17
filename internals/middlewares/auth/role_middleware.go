// file: internals/middlewares/auth/role_middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"

	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// OnlyRolesSlice tolak request kalau user tidak punya salah satu role.
// errMsg dibuat via constants.RoleErrorAdmin(...) dkk supaya pesannya konsisten.
func OnlyRolesSlice(errMsg string, roles []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helperAuth.HasGlobalRole(c, roles...) {
			return c.Next()
		}
		return fiber.NewError(fiber.StatusForbidden, errMsg)
	}
}
