package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Roles recognized by the service. Physicians and clinic staff operate the
// clinical records; patients may file and read their own efficacy reports.
// Admin passes every guard.
const (
	RoleAdmin     = "admin"
	RolePhysician = "physician"
	RoleStaff     = "staff"
	RolePatient   = "patient"
)

// HasRole reports whether the context carries the role, directly or through
// admin.
func HasRole(ctx context.Context, role string) bool {
	for _, r := range RolesFromContext(ctx) {
		if r == role || r == RoleAdmin {
			return true
		}
	}
	return false
}

// RequireRole returns middleware that rejects requests whose token carries
// none of the given roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			for _, role := range roles {
				if HasRole(ctx, role) {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				"requires one of: "+strings.Join(roles, ", "))
		}
	}
}
