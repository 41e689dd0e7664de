package auth

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/models"
)

const (
	ctxPrincipalID = "principal_id"
	ctxRole        = "role"
	ctxEmail       = "email"
)

func setUserContext(c echo.Context, id uuid.UUID, email string, role models.Role) {
	c.Set(ctxPrincipalID, id)
	c.Set(ctxEmail, email)
	c.Set(ctxRole, role)
}

// PrincipalID returns the authenticated principal's id; the zero UUID when
// the request never passed RequireAuth.
func PrincipalID(c echo.Context) uuid.UUID {
	if id, ok := c.Get(ctxPrincipalID).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func RoleOf(c echo.Context) models.Role {
	if r, ok := c.Get(ctxRole).(models.Role); ok {
		return r
	}
	return ""
}

func EmailOf(c echo.Context) string {
	if e, ok := c.Get(ctxEmail).(string); ok {
		return e
	}
	return ""
}

// OwnsOrAdmin is the object-ownership check: the resource owner or an admin
// may proceed.
func OwnsOrAdmin(c echo.Context, owner uuid.UUID) bool {
	return PrincipalID(c) == owner || RoleOf(c) == models.RoleAdmin
}
