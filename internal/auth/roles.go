package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roleforge-api/internal/domain"
	apperrors "github.com/spec-kit/roleforge-api/pkg/util"
)

// rolePermissions is the process-wide role to permission mapping. Immutable at
// runtime; unknown roles resolve to no permissions.
var rolePermissions = map[domain.Role][]string{
	domain.RoleAdmin: {"read", "write", "delete", "admin"},
	domain.RoleGM:    {"read", "write", "gm"},
	domain.RoleUser:  {"read", "write"},
	domain.RoleGuest: {"read"},
}

// PermissionsFor returns a copy of the permission set for a role. Unknown
// roles fail closed with an empty set.
func PermissionsFor(role domain.Role) []string {
	perms, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// HasAllPermissions reports whether the role grants every required permission.
// An empty requirement is trivially satisfied.
func HasAllPermissions(role domain.Role, required ...string) bool {
	perms := rolePermissions[role]
	set := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	for _, r := range required {
		if _, ok := set[r]; !ok {
			return false
		}
	}
	return true
}

// RequirePermissions guards a route with a required permission subset,
// evaluated against the verified token's role.
func RequirePermissions(required ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		td, ok := TokenDataFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !HasAllPermissions(td.Role, required...) {
			return apperrors.NewForbidden("insufficient permissions")
		}
		return c.Next()
	}
}
