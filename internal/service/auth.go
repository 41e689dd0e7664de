package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/hash"
	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/logging"
	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/models"
	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/store"
	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/tokens"
)

// dummyHash is a bcrypt digest of a random string, compared against when the
// email is unknown so that path costs the same as a wrong password.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// AuthService is the session authority: it owns login, logout and refresh,
// and is the only writer of the refresh fingerprint.
type AuthService struct {
	Store         store.CredentialStore
	JWTSecret     []byte
	RefreshSecret []byte
}

type RegisterInput struct {
	Email        string
	Password     string
	FullName     string
	Role         string
	Grade        *string
	LanguagePref string
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	User         models.PublicUser
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.PublicUser, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if in.Email == "" || in.Password == "" || in.FullName == "" || in.Role == "" {
		return nil, ErrValidation
	}
	role, err := models.ParseRole(in.Role)
	if err != nil {
		return nil, ErrValidation
	}

	if _, err := s.Store.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		l.Error("register_failed", "reason", "store_error", "error", err)
		return nil, ErrStoreUnavailable
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	var grade *string
	if role == models.RoleStudent {
		grade = in.Grade
	}
	langPref := in.LanguagePref
	if langPref == "" {
		langPref = "en"
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: pwHash,
		FullName:     in.FullName,
		Role:         role,
		Grade:        grade,
		LanguagePref: langPref,
	}
	if err := s.Store.Create(ctx, &user); err != nil {
		l.Error("register_failed", "reason", "store_error", "error", err)
		return nil, ErrStoreUnavailable
	}

	l.Info("register_success", "user_id", user.ID)
	pub := user.Public()
	return &pub, nil
}

// Login verifies the credential and mints a fresh token pair. The stored
// refresh fingerprint is replaced, so any earlier refresh token for this
// principal is revoked from this point on.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			hash.CheckPassword(dummyHash, password)
			l.Warn("login_failed", "reason", "unknown_email")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "reason", "store_error", "error", err)
		return nil, ErrStoreUnavailable
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "bad_password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	accessToken, accessExp, err := tokens.SignAccessToken(user.ID, user.Email, user.Role, s.JWTSecret)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign access token", "error", err)
		return nil, err
	}

	refreshToken, refreshExp, err := tokens.SignRefreshToken(user.ID, user.Email, user.Role, s.RefreshSecret)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign refresh token", "error", err)
		return nil, err
	}

	fp := tokens.Fingerprint(refreshToken)
	if err := s.Store.SetRefreshFingerprint(ctx, user.ID, &fp); err != nil {
		l.Error("login_failed", "reason", "cannot persist fingerprint", "error", err)
		return nil, ErrStoreUnavailable
	}

	l.Info("login_success", "user_id", user.ID, "role", user.Role)
	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		User:         user.Public(),
	}, nil
}

// Refresh exchanges a presented refresh token for a new access token. The
// refresh token itself is not rotated, so a redundant concurrent refresh from
// the same client is harmless. Signature and expiry are checked before any
// store access; a structurally valid token whose fingerprint no longer
// matches the stored one fails as revoked.
func (s *AuthService) Refresh(ctx context.Context, presented string) (string, time.Time, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := tokens.RefreshClaimsFromToken(presented, s.RefreshSecret)
	if err != nil {
		l.Warn("refresh_failed", "reason", "invalid_token", "error", err)
		return "", time.Time{}, ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		l.Warn("refresh_failed", "reason", "bad_subject")
		return "", time.Time{}, ErrInvalidRefreshToken
	}

	user, err := s.Store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Warn("refresh_failed", "reason", "principal_gone", "user_id", userID)
			return "", time.Time{}, ErrRevoked
		}
		l.Error("refresh_failed", "reason", "store_error", "error", err)
		return "", time.Time{}, ErrStoreUnavailable
	}

	if user.RefreshTokenHash == nil || *user.RefreshTokenHash != tokens.Fingerprint(presented) {
		l.Warn("refresh_failed", "reason", "revoked", "user_id", userID)
		return "", time.Time{}, ErrRevoked
	}

	accessToken, accessExp, err := tokens.SignAccessToken(user.ID, user.Email, user.Role, s.JWTSecret)
	if err != nil {
		l.Error("refresh_failed", "reason", "cannot sign access token", "error", err)
		return "", time.Time{}, err
	}

	l.Info("refresh_success", "user_id", user.ID)
	return accessToken, accessExp, nil
}

// Logout clears the stored fingerprint. Idempotent: logging out an already
// logged-out principal succeeds.
func (s *AuthService) Logout(ctx context.Context, principalID uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout")

	if err := s.Store.SetRefreshFingerprint(ctx, principalID, nil); err != nil {
		l.Error("logout_failed", "reason", "store_error", "error", err)
		return ErrStoreUnavailable
	}
	l.Info("logout_success", "user_id", principalID)
	return nil
}
