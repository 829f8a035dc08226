package auth

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingCredential = errors.New("no token provided")
	ErrInvalidCredential = errors.New("invalid token")
)

// Principal is an authenticated end user. ID is the identity provider's
// durable subject id, normalized across backends, and is the value stored
// on reviews, favorites and profiles.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	// ExpiresAt is when the credential that proved this principal stops
	// being valid; zero when the backend cannot tell. Caching layers must
	// never keep a principal past this instant.
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Verifier validates an opaque bearer token against the configured identity
// backend and resolves the principal it belongs to.
//
// Implementations:
//   - SessionVerifier: managed-session lookup against the provider's user endpoint
//   - TokenVerifier: local verification of a signed token
//
// Callers depend only on this interface; the backend is chosen once at startup.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

// FromAuthHeader extracts the bearer token from an Authorization header
// value. Anything other than "Bearer <token>" is a missing credential.
func FromAuthHeader(header string) (string, error) {
	if header == "" {
		return "", ErrMissingCredential
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrMissingCredential
	}
	return parts[1], nil
}
