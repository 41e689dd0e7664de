package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/logging"
	mwauth "github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/middleware/auth"
	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/ratelimit"
	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/service"
)

// EventPublisher is the outbound notification collaborator. Delivery is
// best-effort from the auth flow's point of view; failures are logged only.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event interface{}) error
}

type AuthHandler struct {
	Svc          *service.AuthService
	Producer     EventPublisher
	LoginLimiter *ratelimit.Limiter
	Secure       bool
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req struct {
		Email        string  `json:"email"`
		Password     string  `json:"password"`
		FullName     string  `json:"full_name"`
		Role         string  `json:"role"`
		Grade        *string `json:"grade"`
		LanguagePref string  `json:"language_pref"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, service.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		Role:         req.Role,
		Grade:        req.Grade,
		LanguagePref: req.LanguagePref,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "required fields missing or invalid")
		case errors.Is(err, service.ErrEmailTaken):
			return echo.NewHTTPError(http.StatusConflict, "email already registered")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	h.publish(ctx, user.ID.String(), map[string]interface{}{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "registration successful",
		"user":    user,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	if h.LoginLimiter != nil {
		if !h.LoginLimiter.Allow("email:"+req.Email) || !h.LoginLimiter.Allow("ip:"+c.RealIP()) {
			l.Warn("login_throttled", "status", 429)
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
		}
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	c.SetCookie(RefreshCookie(res.RefreshToken, res.RefreshExp, h.Secure))

	h.publish(ctx, res.User.ID.String(), map[string]interface{}{
		"type":    "user_logged_in",
		"user_id": res.User.ID,
		"email":   res.User.Email,
	})

	// The refresh token travels only in the cookie, never in the body.
	return c.JSON(http.StatusOK, echo.Map{
		"accessToken": res.AccessToken,
		"user":        res.User,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	principalID := mwauth.PrincipalID(c)
	if err := h.Svc.Logout(ctx, principalID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	c.SetCookie(DeleteRefreshCookie(h.Secure))

	h.publish(ctx, principalID.String(), map[string]interface{}{
		"type":    "user_logged_out",
		"user_id": principalID,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged out successfully",
	})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		l.Warn("refresh_failed", "status", 401, "reason", "missing_cookie")
		return echo.NewHTTPError(http.StatusUnauthorized, "no refresh token")
	}

	accessToken, _, err := h.Svc.Refresh(ctx, cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreUnavailable):
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		case errors.Is(err, service.ErrRevoked):
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh token revoked")
		default:
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"accessToken": accessToken,
	})
}

func (h *AuthHandler) publish(ctx context.Context, key string, event map[string]interface{}) {
	if h.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(pubCtx, "user_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "error", fmt.Sprintf("%v", err))
	}
}
