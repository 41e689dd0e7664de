package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the closed set of principal roles. Handlers compare against these
// constants instead of free-form strings.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role %q", s)
}

// OneOf reports whether r is in the allow-list.
func (r Role) OneOf(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// User is the principal record. RefreshTokenHash holds the fingerprint of the
// single currently valid refresh token; nil means no active session.
type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Email            string    `gorm:"uniqueIndex;not null"  json:"email"`
	PasswordHash     string    `gorm:"not null"              json:"-"`
	FullName         string    `gorm:"not null"              json:"full_name"`
	Role             Role      `gorm:"not null"              json:"role"`
	Grade            *string   `json:"grade,omitempty"`
	LanguagePref     string    `gorm:"default:en"            json:"language_pref"`
	RefreshTokenHash *string   `json:"-"`
}

// PublicUser is the response shape for a principal: never the verifier, never
// the fingerprint.
type PublicUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	Grade        *string   `json:"grade,omitempty"`
	LanguagePref string    `json:"language_pref"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		Role:         u.Role,
		Grade:        u.Grade,
		LanguagePref: u.LanguagePref,
	}
}
