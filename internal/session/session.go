// Package session owns who the caller is. A Provider authenticates
// credentials and resolves tokens back to an identity; every service call
// takes the resolved Identity explicitly, so nothing downstream reads
// ambient authentication state.
package session

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
)

// Identity is the authenticated caller. Its UID is the tenant id under
// which every record lives.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

// Tokens is the credential pair a successful sign-in yields.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// Provider authenticates users and resolves tokens to identities.
type Provider interface {
	// Register creates a new account and signs it in.
	Register(ctx context.Context, email, password, displayName string) (*Identity, *Tokens, error)
	// Login exchanges credentials for tokens, returning
	// ErrInvalidCredentials on any mismatch.
	Login(ctx context.Context, email, password string) (*Identity, *Tokens, error)
	// Refresh trades a valid refresh token for a fresh pair.
	Refresh(ctx context.Context, refreshToken string) (*Tokens, error)
	// Current resolves an access token to the identity it was issued to.
	Current(ctx context.Context, accessToken string) (*Identity, error)
	// Logout invalidates the session where the backend supports it.
	Logout(ctx context.Context, uid string) error
}

// Directory enumerates known accounts. The reminder job walks it to fan
// notifications out to every tenant.
type Directory interface {
	ListUsers(ctx context.Context) ([]Identity, error)
}
