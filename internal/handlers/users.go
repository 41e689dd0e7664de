package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	mwauth "github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/middleware/auth"
	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/models"
	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/store"
)

type UserHandler struct {
	Store store.CredentialStore
}

// ListUsers is admin-only (enforced by RequireRoles on the route).
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.Store.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// GetUser returns a principal's public profile; only the principal itself or
// an admin may read it.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if !mwauth.OwnsOrAdmin(c, id) {
		return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
	}

	user, err := h.Store.FindByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user.Public()})
}
