package domain

import (
	"context"
	"time"
)

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues session tokens (e.g. JWT) for an authenticated profile.
type TokenIssuer interface {
	Issue(userID, email, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a session token and returns the authenticated actor.
type TokenVerifier interface {
	Verify(token string) (Actor, error)
}

// OAuthIdentity is what the third-party provider reports about a signed-in
// user after the authorization-code exchange.
type OAuthIdentity struct {
	Subject string
	Email   string
	Name    string
}

// OAuthProvider exchanges an authorization code for the provider's identity.
type OAuthProvider interface {
	ExchangeCode(ctx context.Context, code string) (*OAuthIdentity, error)
}

// AuthService defines sign-up and sign-in against the identity store.
type AuthService interface {
	// SignUp registers a new password identity with role "user".
	// A duplicate email fails with ErrConflict.
	SignUp(ctx context.Context, email, password, name string) (token string, profile *Profile, err error)
	// SignIn verifies a password and issues a session token.
	SignIn(ctx context.Context, email, password string) (token string, profile *Profile, err error)
	// OAuthSignIn completes the OAuth callback: it exchanges the
	// authorization code, creates the profile on first sign-in, and issues
	// a session token.
	OAuthSignIn(ctx context.Context, code string) (token string, profile *Profile, err error)
	// GetProfile loads the profile for an authenticated identity.
	GetProfile(ctx context.Context, id string) (*Profile, error)
}
