package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/models"
	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/tokens"
)

var testSecret = []byte("test-jwt-secret")

func ctxWithAuth(t *testing.T, header string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func signExpired(t *testing.T, offset time.Duration) string {
	t.Helper()
	claims := tokens.AccessClaims{
		Email: "alice@example.com",
		Role:  models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(offset - tokens.AccessTTL)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(offset)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func TestRequireAuth_ValidToken(t *testing.T) {
	gate := &Gate{JWTSecret: testSecret}
	userID := uuid.New()
	token, _, err := tokens.SignAccessToken(userID, "alice@example.com", models.RoleTeacher, testSecret)
	require.NoError(t, err)

	c, rec := ctxWithAuth(t, "Bearer "+token)
	require.NoError(t, gate.RequireAuth(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, userID, PrincipalID(c))
	assert.Equal(t, models.RoleTeacher, RoleOf(c))
	assert.Equal(t, "alice@example.com", EmailOf(c))
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	gate := &Gate{JWTSecret: testSecret}

	for _, header := range []string{"", "Bearer ", "Basic dXNlcjpwdw==", "token-without-scheme"} {
		c, _ := ctxWithAuth(t, header)
		err := gate.RequireAuth(okHandler)(c)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok, "header %q", header)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
		assert.Equal(t, "missing access token", he.Message)
	}
}

func TestRequireAuth_ExpiredToken_Distinguishable(t *testing.T) {
	gate := &Gate{JWTSecret: testSecret}

	c, _ := ctxWithAuth(t, "Bearer "+signExpired(t, -2*time.Minute))
	err := gate.RequireAuth(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	// Expired is signalled distinctly so a client can attempt a refresh.
	assert.Equal(t, "token expired", he.Message)
}

func TestRequireAuth_ExpiredWithinLeeway_Accepted(t *testing.T) {
	gate := &Gate{JWTSecret: testSecret}

	c, rec := ctxWithAuth(t, "Bearer "+signExpired(t, -10*time.Second))
	require.NoError(t, gate.RequireAuth(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_TamperedToken(t *testing.T) {
	gate := &Gate{JWTSecret: testSecret}
	token, _, err := tokens.SignAccessToken(uuid.New(), "a@b.c", models.RoleStudent, []byte("wrong-secret"))
	require.NoError(t, err)

	c, _ := ctxWithAuth(t, "Bearer "+token)
	gateErr := gate.RequireAuth(okHandler)(c)
	he, ok := gateErr.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, "invalid access token", he.Message)
}

func TestRequireRoles(t *testing.T) {
	gate := &Gate{JWTSecret: testSecret}

	run := func(role models.Role, allowed ...models.Role) error {
		token, _, err := tokens.SignAccessToken(uuid.New(), "a@b.c", role, testSecret)
		require.NoError(t, err)
		c, _ := ctxWithAuth(t, "Bearer "+token)
		return gate.RequireAuth(RequireRoles(allowed...)(okHandler))(c)
	}

	require.NoError(t, run(models.RoleAdmin, models.RoleAdmin))
	require.NoError(t, run(models.RoleTeacher, models.RoleTeacher, models.RoleAdmin))

	err := run(models.RoleStudent, models.RoleTeacher, models.RoleAdmin)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestOwnsOrAdmin(t *testing.T) {
	owner := uuid.New()

	makeCtx := func(id uuid.UUID, role models.Role) echo.Context {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		setUserContext(c, id, "x@y.z", role)
		return c
	}

	assert.True(t, OwnsOrAdmin(makeCtx(owner, models.RoleStudent), owner))
	assert.True(t, OwnsOrAdmin(makeCtx(uuid.New(), models.RoleAdmin), owner))
	assert.False(t, OwnsOrAdmin(makeCtx(uuid.New(), models.RoleStudent), owner))
}

func TestPrincipalID_UnauthenticatedContext(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, uuid.Nil, PrincipalID(c))
	assert.Equal(t, models.Role(""), RoleOf(c))
}
