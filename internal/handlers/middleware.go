package handlers

import (
	"context"
	"net/http"

	"moviemagic/internal/auth"
	"moviemagic/internal/logger"
)

type contextKey string

const principalKey contextKey = "principal"

// RequireAuth verifies the bearer credential on every request it guards and
// stores the resolved principal in the request context. No store mutation
// happens before this middleware passes.
func RequireAuth(verifier auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.FromAuthHeader(r.Header.Get("Authorization"))
			if err != nil {
				writeAuthError(w, err)
				return
			}

			principal, err := verifier.Verify(r.Context(), token)
			if err != nil {
				writeAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom returns the verified principal stored by RequireAuth.
func PrincipalFrom(ctx context.Context) (*auth.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*auth.Principal)
	return principal, ok
}

// Recoverer converts a handler panic into a structured 500 response so one
// bad request never takes the process down. Detail stays in the logs.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Get().WithField("panic", rec).Error("Recovered from handler panic")
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// mustPrincipal is for handlers mounted behind RequireAuth; a missing
// principal there is a wiring bug, answered as 401 rather than a panic.
func mustPrincipal(w http.ResponseWriter, r *http.Request) (*auth.Principal, bool) {
	principal, ok := PrincipalFrom(r.Context())
	if !ok || principal == nil {
		logger.Get().Error("Protected handler reached without a principal")
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return nil, false
	}
	return principal, true
}
