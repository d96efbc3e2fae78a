package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	RoleAdmin       = "admin"
	RolePhysician   = "physician"
	RoleNurse       = "nurse"
	RoleRegistrar   = "registrar"
	RoleStorekeeper = "storekeeper"
)

// Roles lists every role the server recognises.
var Roles = []string{RoleAdmin, RolePhysician, RoleNurse, RoleRegistrar, RoleStorekeeper}

// ClinicalReaders may read any record in the system.
var ClinicalReaders = []string{RolePhysician, RoleNurse, RoleRegistrar}

// IsKnownRole reports whether role is one of Roles.
func IsKnownRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RequireRole returns middleware that checks if the user has at least one of the specified roles.
// Admin passes every check.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRoles := RolesFromContext(c.Request().Context())
			for _, has := range userRoles {
				if has == RoleAdmin {
					return next(c)
				}
				for _, required := range roles {
					if has == required {
						return next(c)
					}
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}
