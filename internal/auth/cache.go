package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	principalCachePrefix = "auth:principal:"
	defaultPrincipalTTL  = 5 * time.Minute
)

// CachingVerifier wraps another Verifier with a Redis cache keyed by a
// digest of the token. Only successful verifications are cached, and the
// entry's TTL never exceeds the credential's own remaining lifetime, so an
// expired token can never keep verifying from cache.
type CachingVerifier struct {
	inner  Verifier
	redis  *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
	now    func() time.Time
}

func NewCachingVerifier(inner Verifier, redisClient *redis.Client, ttl time.Duration, logger *logrus.Logger) *CachingVerifier {
	if ttl <= 0 {
		ttl = defaultPrincipalTTL
	}
	return &CachingVerifier{
		inner:  inner,
		redis:  redisClient,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

func (v *CachingVerifier) Verify(ctx context.Context, token string) (*Principal, error) {
	cacheKey := principalCachePrefix + digest(token)

	if v.redis != nil {
		cached, err := v.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var principal Principal
			if err := json.Unmarshal([]byte(cached), &principal); err == nil {
				return &principal, nil
			}
			v.logger.WithError(err).Warn("Failed to unmarshal cached principal")
		} else if err != redis.Nil {
			v.logger.WithError(err).Warn("Failed to read from Redis")
		}
	}

	principal, err := v.inner.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	if v.redis != nil {
		if ttl := v.cacheTTL(principal); ttl > 0 {
			payload, err := json.Marshal(principal)
			if err == nil {
				if err := v.redis.Set(ctx, cacheKey, payload, ttl).Err(); err != nil {
					v.logger.WithError(err).Warn("Failed to write principal to cache")
				}
			}
		}
	}

	return principal, nil
}

// cacheTTL caps the configured TTL at the credential's remaining lifetime.
// Zero or negative headroom means the entry is not cached at all.
func (v *CachingVerifier) cacheTTL(principal *Principal) time.Duration {
	ttl := v.ttl
	if principal.ExpiresAt.IsZero() {
		return ttl
	}
	headroom := principal.ExpiresAt.Sub(v.now())
	if headroom < ttl {
		ttl = headroom
	}
	return ttl
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
