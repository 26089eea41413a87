// Package identity signs learners in and out and tracks who is current.
package identity

import (
	"context"
	"time"
)

// Provider names recorded on accounts.
const (
	ProviderPassword = "password"
	ProviderGoogle   = "google.com"
)

// User is a signed-in identity.
type User struct {
	UID         string
	Email       string
	DisplayName string
	Provider    string
	CreatedAt   time.Time
}

// Name returns the display name, falling back to the email.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

// Provider is the authentication collaborator. Failures are *AuthError.
type Provider interface {
	Login(ctx context.Context, email, password string) (*User, error)
	Signup(ctx context.Context, email, password, displayName string) (*User, error)
	LoginWithGoogle(ctx context.Context) (*User, error)
	Logout(ctx context.Context) error

	// CurrentUser returns the signed-in identity, or nil when signed out.
	CurrentUser(ctx context.Context) (*User, error)
}
