package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	sessionTimeout     = 10 * time.Second
	maxUserPayloadSize = 1 << 20 // 1MB
)

// SessionVerifier resolves a bearer token by asking the identity provider
// for the session's user. The provider endpoint returns the user object
// with its subject id under "id".
type SessionVerifier struct {
	providerURL string
	httpClient  *http.Client
	logger      *logrus.Logger
}

func NewSessionVerifier(providerURL string, logger *logrus.Logger) *SessionVerifier {
	return &SessionVerifier{
		providerURL: strings.TrimRight(providerURL, "/"),
		httpClient: &http.Client{
			Timeout: sessionTimeout,
		},
		logger: logger,
	}
}

type sessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (v *SessionVerifier) Verify(ctx context.Context, token string) (*Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.providerURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		// provider detail stays in the logs, callers only see ErrInvalidCredential
		v.logger.WithError(err).Warn("Identity provider request failed")
		return nil, ErrInvalidCredential
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.logger.WithField("status", resp.StatusCode).Info("Identity provider rejected token")
		return nil, ErrInvalidCredential
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUserPayloadSize))
	if err != nil {
		v.logger.WithError(err).Warn("Failed to read identity provider response")
		return nil, ErrInvalidCredential
	}

	var user sessionUser
	if err := json.Unmarshal(body, &user); err != nil || user.ID == "" {
		v.logger.WithError(err).Warn("Unexpected identity provider response")
		return nil, ErrInvalidCredential
	}

	return &Principal{ID: user.ID, Email: user.Email}, nil
}
