package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/neximprove/broker-onboarding/internal/core/domain"
)

// RequireRole enforces that the authenticated identity holds one of the
// allowed roles. Must run after Auth.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				msg := "Access denied. Insufficient privileges."
				if _, adminOnly := allowed[domain.RoleAdmin]; adminOnly && len(allowed) == 1 {
					msg = "Access denied. Admin privileges required."
				}
				return echo.NewHTTPError(http.StatusForbidden, msg)
			}
			return next(c)
		}
	}
}
