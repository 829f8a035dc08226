package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestTokenVerifier(t *testing.T) {
	verifier := NewTokenVerifier(testSecret, quietLogger())
	ctx := context.Background()

	t.Run("valid token yields subject as principal id", func(t *testing.T) {
		expiry := time.Now().Add(time.Hour).Truncate(time.Second)
		token := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "user-42",
			ExpiresAt: jwt.NewNumericDate(expiry),
		})

		principal, err := verifier.Verify(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-42", principal.ID)
		// expiry rides along so caching layers can bound their TTL by it
		assert.True(t, principal.ExpiresAt.Equal(expiry))
	})

	t.Run("expired token rejected", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "user-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})

		_, err := verifier.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject: "user-42",
		})

		_, err := verifier.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("unexpected signing method rejected", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.SigningMethodHS384, jwt.RegisteredClaims{
			Subject: "user-42",
		})

		_, err := verifier.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("missing subject rejected", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		_, err := verifier.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := verifier.Verify(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})
}
