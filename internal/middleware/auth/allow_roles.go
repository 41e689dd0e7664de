package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/logging"
	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/models"
)

// RequireRoles admits only principals whose role is in the allow-list. Must
// run after RequireAuth.
func RequireRoles(allowed ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := RoleOf(c)
			if !role.OneOf(allowed...) {
				logging.FromContext(c.Request().Context()).
					Warn("authz_denied", "role", string(role), "path", c.Path())
				return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
			}
			return next(c)
		}
	}
}
