package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// TokenVerifier validates signed tokens locally with a shared HS256 secret.
// The subject id lives in the "sub" claim; it is normalized into
// Principal.ID so storage never sees backend-specific field names.
type TokenVerifier struct {
	secret []byte
	logger *logrus.Logger
}

func NewTokenVerifier(secret string, logger *logrus.Logger) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), logger: logger}
}

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (v *TokenVerifier) Verify(ctx context.Context, token string) (*Principal, error) {
	claims := &tokenClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		v.logger.WithError(err).Info("Token verification failed")
		return nil, ErrInvalidCredential
	}

	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidCredential
	}

	principal := &Principal{ID: claims.Subject, Email: claims.Email}
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	}
	return principal, nil
}
