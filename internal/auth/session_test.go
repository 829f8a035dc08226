package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionVerifier(t *testing.T) {
	ctx := context.Background()

	t.Run("valid session yields provider subject id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/user", r.URL.Path)
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id": "sub-123", "email": "a@b.c", "aud": "authenticated"}`))
		}))
		defer server.Close()

		verifier := NewSessionVerifier(server.URL, quietLogger())
		principal, err := verifier.Verify(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "sub-123", principal.ID)
		assert.Equal(t, "a@b.c", principal.Email)
	})

	t.Run("provider rejection is opaque to callers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"msg": "JWT expired at 2026-01-01, session revoked by admin"}`))
		}))
		defer server.Close()

		verifier := NewSessionVerifier(server.URL, quietLogger())
		_, err := verifier.Verify(ctx, "tok-1")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCredential)
		assert.NotContains(t, err.Error(), "revoked")
	})

	t.Run("transport failure is opaque to callers", func(t *testing.T) {
		verifier := NewSessionVerifier("http://127.0.0.1:1", quietLogger())
		_, err := verifier.Verify(ctx, "tok-1")
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("response without id rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"email": "a@b.c"}`))
		}))
		defer server.Close()

		verifier := NewSessionVerifier(server.URL, quietLogger())
		_, err := verifier.Verify(ctx, "tok-1")
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})
}
