package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole enforces coarse role-based access at the route level. The
// service layer still re-checks ownership and assignment per call; this only
// keeps wrong-role traffic out of the handlers.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
