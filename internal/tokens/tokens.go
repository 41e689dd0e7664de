package tokens

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/models"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour

	// Symmetric clock-skew tolerance for verification, kept under a minute so
	// expiry cannot drift meaningfully.
	leeway = 30 * time.Second

	refreshType = "refresh"
)

var (
	ErrExpired      = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

type AccessClaims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	Type  string      `json:"typ"`
	jwt.RegisteredClaims
}

func SignAccessToken(userID uuid.UUID, email string, role models.Role, accessSecret []byte) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(AccessTTL)
	claims := AccessClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			// Unique per token: two mints within the same second must still
			// produce distinct tokens.
			ID: uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(accessSecret)
	return signed, exp, err
}

func SignRefreshToken(userID uuid.UUID, email string, role models.Role, refreshSecret []byte) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(RefreshTTL)
	claims := RefreshClaims{
		Email: email,
		Role:  role,
		Type:  refreshType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(refreshSecret)
	return signed, exp, err
}

func AccessClaimsFromToken(tokenStr string, accessSecret []byte) (*AccessClaims, error) {
	var claims AccessClaims
	if err := parse(tokenStr, &claims, accessSecret); err != nil {
		return nil, err
	}
	return &claims, nil
}

func RefreshClaimsFromToken(tokenStr string, refreshSecret []byte) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := parse(tokenStr, &claims, refreshSecret); err != nil {
		return nil, err
	}
	if claims.Type != refreshType {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

func parse(tokenStr string, claims jwt.Claims, secret []byte) error {
	tkn, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpired
		}
		return ErrInvalidToken
	}
	if !tkn.Valid {
		return ErrInvalidToken
	}
	return nil
}

// Fingerprint is the one-way hash of a refresh token's signed bytes stored
// next to the principal for revocation checks.
func Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
