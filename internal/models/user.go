// ABOUTME: User account model for the coach backend.
// ABOUTME: Holds login identity and onboarding state; the password hash never serializes.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account that owns a profile, plans, and check-ins.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Onboarded    bool      `json:"onboarded"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser creates a User with a generated UUID and a normalized email.
func NewUser(email, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PublicUser is the account shape returned alongside auth tokens.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Onboarded bool      `json:"onboarded"`
}

// Public returns the token-response view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Onboarded: u.Onboarded}
}
