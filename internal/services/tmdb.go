package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"moviemagic/internal/models"
)

// ErrBridge covers every failure of the external catalog source: transport,
// bad status, parse, open breaker. Callers answer 500 with a generic body
// and never see the transport error itself.
var ErrBridge = errors.New("external catalog unavailable")

const (
	tmdbAPIURL         = "https://api.themoviedb.org/3"
	defaultTimeout     = 15 * time.Second
	maxRetries         = 3
	retryDelay         = 2 * time.Second
	userAgent          = "MovieMagicServer/1.0"
	detailsCachePrefix = "tmdb:details:"
	popularCachePrefix = "tmdb:popular:"
	detailsCacheTTL    = 24 * time.Hour
	popularCacheTTL    = 4 * time.Hour
	maxResponseSize    = 5 * 1024 * 1024 // 5MB
)

type TMDBClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
	redis      *redis.Client
	retryDelay time.Duration
}

type TMDBClientConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	RetryDelay time.Duration
	Logger     *logrus.Logger
	Redis      *redis.Client
}

func NewTMDBClient(config *TMDBClientConfig) *TMDBClient {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	if config.BaseURL == "" {
		config.BaseURL = tmdbAPIURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = retryDelay
	}

	breakerSettings := gobreaker.Settings{
		Name:    "tmdb",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &TMDBClient{
		baseURL:    config.BaseURL,
		apiKey:     config.APIKey,
		httpClient: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger:     config.Logger,
		limiter:    rate.NewLimiter(rate.Every(250*time.Millisecond), 4),
		breaker:    gobreaker.NewCircuitBreaker[[]byte](breakerSettings),
		redis:      config.Redis,
		retryDelay: config.RetryDelay,
	}
}

// Detail fetches extended detail (cast, crew, clips) for one catalog item.
func (c *TMDBClient) Detail(ctx context.Context, mediaType string, tmdbID int64) (*models.TMDBDetail, error) {
	cacheKey := fmt.Sprintf("%s%s:%d", detailsCachePrefix, mediaType, tmdbID)

	var detail models.TMDBDetail
	if c.readCache(ctx, cacheKey, &detail) {
		return &detail, nil
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("append_to_response", "credits,videos")

	detailURL := fmt.Sprintf("%s/%s/%d?%s", c.baseURL, mediaType, tmdbID, params.Encode())

	body, err := c.makeRequest(ctx, detailURL)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(body, &detail); err != nil {
		c.logger.WithError(err).Warn("Failed to decode catalog detail response")
		return nil, ErrBridge
	}

	c.writeCache(ctx, cacheKey, &detail, detailsCacheTTL)
	return &detail, nil
}

// Popular fetches one page of the popular feed for the seeder.
func (c *TMDBClient) Popular(ctx context.Context, mediaType string, page int) (*models.TMDBListResponse, error) {
	cacheKey := fmt.Sprintf("%s%s:%d", popularCachePrefix, mediaType, page)

	var list models.TMDBListResponse
	if c.readCache(ctx, cacheKey, &list) {
		return &list, nil
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("page", strconv.Itoa(page))

	popularURL := fmt.Sprintf("%s/%s/popular?%s", c.baseURL, mediaType, params.Encode())

	body, err := c.makeRequest(ctx, popularURL)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(body, &list); err != nil {
		c.logger.WithError(err).Warn("Failed to decode catalog popular response")
		return nil, ErrBridge
	}

	c.writeCache(ctx, cacheKey, &list, popularCacheTTL)
	return &list, nil
}

func (c *TMDBClient) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil {
		return false
	}
	cached, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).Warn("Failed to read from Redis")
		}
		return false
	}
	if err := json.Unmarshal([]byte(cached), out); err != nil {
		c.logger.WithError(err).Warn("Failed to unmarshal cached catalog response")
		return false
	}
	return true
}

func (c *TMDBClient) writeCache(ctx context.Context, key string, value any, ttl time.Duration) {
	if c.redis == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to marshal catalog response for caching")
		return
	}
	if err := c.redis.Set(ctx, key, payload, ttl).Err(); err != nil {
		c.logger.WithError(err).Warn("Failed to write catalog response to cache")
	}
}

func (c *TMDBClient) makeRequest(ctx context.Context, requestURL string) ([]byte, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.doWithRetries(ctx, requestURL)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.WithField("url", requestURL).Warn("Catalog circuit breaker open")
		}
		return nil, ErrBridge
	}
	return body, nil
}

func (c *TMDBClient) doWithRetries(ctx context.Context, requestURL string) ([]byte, error) {
	var rErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			rErr = fmt.Errorf("failed to make HTTP request: %w", err)
			c.retryLogger(attempt, requestURL, err)
			c.waitForRetry(ctx, attempt)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			rErr = fmt.Errorf("API returned status code %d", resp.StatusCode)
			// 4xx means the item does not exist or the key is bad, retrying won't help
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return nil, rErr
			}
			c.retryLogger(attempt, requestURL, rErr)
			c.waitForRetry(ctx, attempt)
			continue
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
		resp.Body.Close()

		if err != nil {
			rErr = fmt.Errorf("failed to read response body: %w", err)
			c.retryLogger(attempt, requestURL, err)
			c.waitForRetry(ctx, attempt)
			continue
		}
		if len(body) > maxResponseSize {
			return nil, fmt.Errorf("response too large: exceeded %d bytes", maxResponseSize)
		}

		c.logger.WithFields(logrus.Fields{
			"url":           requestURL,
			"attempt":       attempt,
			"response_size": len(body),
		}).Debug("Catalog request successful")

		return body, nil
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", maxRetries, rErr)
}

func (c *TMDBClient) retryLogger(attempt int, requestURL string, err error) {
	c.logger.WithFields(logrus.Fields{
		"attempt": attempt + 1,
		"url":     requestURL,
		"error":   err.Error(),
	}).Warn("Catalog request failed, retrying...")
}

func (c *TMDBClient) waitForRetry(ctx context.Context, attempt int) {
	if attempt >= maxRetries-1 {
		return
	}
	delay := time.Duration(attempt+1) * c.retryDelay
	c.logger.WithField("delay", delay).Debug("waiting before retry")
	select {
	case <-time.After(delay):
	case <-ctx.Done():
	}
}
