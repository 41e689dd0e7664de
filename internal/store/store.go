package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/kajapiriyanselvakumar-source/LMS-APPLICATION/internal/models"
)

var (
	// ErrNotFound means the principal does not exist. Callers must not leak
	// this distinction to clients.
	ErrNotFound = errors.New("principal not found")

	// ErrUnavailable wraps any other driver failure; it surfaces as a 5xx,
	// never as an authentication failure.
	ErrUnavailable = errors.New("credential store unavailable")
)

// CredentialStore is the durable record collaborator the session authority
// talks to. Everything else about persistence is out of scope.
type CredentialStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// SetRefreshFingerprint replaces the stored refresh fingerprint; nil
	// clears it. Last writer wins.
	SetRefreshFingerprint(ctx context.Context, id uuid.UUID, fingerprint *string) error

	List(ctx context.Context) ([]models.User, error)
}
