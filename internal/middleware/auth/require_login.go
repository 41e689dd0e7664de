package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/logging"
	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/tokens"
)

// Gate validates bearer access tokens and attaches the resolved identity to
// the request context. No store lookup happens here: authorization is
// claims-based, so access-token revocation only lands at the next refresh.
type Gate struct {
	JWTSecret []byte
}

func (g *Gate) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context())

		raw, ok := bearerToken(c)
		if !ok {
			l.Warn("auth_failed", "reason", "missing_token")
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, g.JWTSecret)
		if err != nil {
			if errors.Is(err, tokens.ErrExpired) {
				// Distinct message so clients know a silent refresh is
				// worth attempting.
				l.Warn("auth_failed", "reason", "token_expired")
				return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
			}
			l.Warn("auth_failed", "reason", "invalid_token")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		id, err := uuid.Parse(claims.Subject)
		if err != nil {
			l.Warn("auth_failed", "reason", "bad_subject")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		setUserContext(c, id, claims.Email, claims.Role)
		return next(c)
	}
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}
