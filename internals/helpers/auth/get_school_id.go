// file: internals/helpers/auth/get_school_id.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys (dihydrate oleh middleware AuthJWT)
const (
	LocUserID      = "user_id"
	LocSchoolID    = "school_id"
	LocRolesGlobal = "roles_global"
)

func parseUUIDFromLocals(c *fiber.Ctx, key string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	switch t := v.(type) {
	case uuid.UUID:
		return t, nil
	case string:
		id, err := uuid.Parse(strings.TrimSpace(t))
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Klaim "+key+" tidak valid")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Klaim "+key+" tidak valid")
	}
}

// GetSchoolIDFromToken ambil school_id aktif dari token (wajib ada untuk route staff)
func GetSchoolIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return parseUUIDFromLocals(c, LocSchoolID)
}

// GetUserIDFromToken ambil user_id dari token
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return parseUUIDFromLocals(c, LocUserID)
}

// GetRolesGlobal baca klaim roles_global dari locals (hasil hydrate middleware)
func GetRolesGlobal(c *fiber.Ctx) []string {
	v := c.Locals(LocRolesGlobal)
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, it := range t {
			if s, ok := it.(string); ok {
				out = append(out, strings.ToLower(strings.TrimSpace(s)))
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		parts := strings.Split(t, ",")
		for i := range parts {
			parts[i] = strings.ToLower(strings.TrimSpace(parts[i]))
		}
		return parts
	default:
		return nil
	}
}

// HasGlobalRole cek apakah user punya salah satu role
func HasGlobalRole(c *fiber.Ctx, roles ...string) bool {
	have := GetRolesGlobal(c)
	for _, want := range roles {
		for _, r := range have {
			if strings.EqualFold(r, want) {
				return true
			}
		}
	}
	return false
}
