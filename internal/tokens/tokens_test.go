package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/models"
)

var (
	accessSecret  = []byte("test-jwt-secret")
	refreshSecret = []byte("test-refresh-secret")
)

func TestSignAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	token, exp, err := SignAccessToken(userID, "alice@example.com", models.RoleStudent, accessSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(AccessTTL), exp, 2*time.Second)

	claims, err := AccessClaimsFromToken(token, accessSecret)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, models.RoleStudent, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestSignRefreshToken_RoundTrip(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	token, exp, err := SignRefreshToken(userID, "alice@example.com", models.RoleTeacher, refreshSecret)
	require.NoError(t, err)

	claims, err := RefreshClaimsFromToken(token, refreshSecret)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(RefreshTTL), exp, 2*time.Second)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := SignAccessToken(uuid.New(), "a@b.c", models.RoleStudent, accessSecret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("some-other-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_TokenKindsNotInterchangeable(t *testing.T) {
	t.Parallel()

	// An access token must not verify as a refresh token and vice versa:
	// the two kinds are keyed by independent secrets.
	access, _, err := SignAccessToken(uuid.New(), "a@b.c", models.RoleStudent, accessSecret)
	require.NoError(t, err)
	_, err = RefreshClaimsFromToken(access, refreshSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)

	refresh, _, err := SignRefreshToken(uuid.New(), "a@b.c", models.RoleStudent, refreshSecret)
	require.NoError(t, err)
	_, err = AccessClaimsFromToken(refresh, accessSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RefreshRequiresType(t *testing.T) {
	t.Parallel()

	// Structurally fine, signed with the refresh secret, but missing the
	// refresh type marker.
	claims := RefreshClaims{
		Email: "a@b.c",
		Role:  models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(refreshSecret)
	require.NoError(t, err)

	_, err = RefreshClaimsFromToken(signed, refreshSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expiry(t *testing.T) {
	t.Parallel()

	signAt := func(expOffset time.Duration) string {
		claims := AccessClaims{
			Email: "a@b.c",
			Role:  models.RoleStudent,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   uuid.NewString(),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(expOffset - AccessTTL)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(expOffset)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(accessSecret)
		require.NoError(t, err)
		return signed
	}

	// Expired well beyond the leeway: rejected as expired, not invalid.
	_, err := AccessClaimsFromToken(signAt(-2*time.Minute), accessSecret)
	assert.ErrorIs(t, err, ErrExpired)

	// Expired but inside the skew tolerance: still accepted.
	_, err = AccessClaimsFromToken(signAt(-10*time.Second), accessSecret)
	assert.NoError(t, err)

	// Not yet expired: accepted.
	_, err = AccessClaimsFromToken(signAt(5*time.Minute), accessSecret)
	assert.NoError(t, err)
}

func TestVerify_UnexpectedAlgorithm(t *testing.T) {
	t.Parallel()

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(accessSecret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(signed, accessSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	t.Parallel()

	_, err := AccessClaimsFromToken("not-a-jwt", accessSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestFingerprint_DeterministicAndDistinct(t *testing.T) {
	t.Parallel()

	a, _, err := SignRefreshToken(uuid.New(), "a@b.c", models.RoleStudent, refreshSecret)
	require.NoError(t, err)
	b, _, err := SignRefreshToken(uuid.New(), "a@b.c", models.RoleStudent, refreshSecret)
	require.NoError(t, err)

	assert.Equal(t, Fingerprint(a), Fingerprint(a))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
	assert.Len(t, Fingerprint(a), 64)
	assert.NotContains(t, Fingerprint(a), a)
}
