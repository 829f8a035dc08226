package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"moviemagic/internal/auth"
	"moviemagic/internal/cache"
	"moviemagic/internal/config"
	"moviemagic/internal/database"
	"moviemagic/internal/logger"
	"moviemagic/internal/repository"
	"moviemagic/internal/services"
)

// Container holds every process-wide handle, built once at startup and
// read-only afterwards.
type Container struct {
	DB        *pgxpool.Pool
	Redis     *redis.Client
	Logger    *logrus.Logger
	Verifier  auth.Verifier
	Catalog   *services.TMDBClient
	Media     repository.MediaRepository
	Reviews   repository.ReviewRepository
	Profiles  repository.ProfileRepository
	Favorites repository.FavoriteRepository
	Trending  repository.TrendingRepository
}

func New(ctx context.Context) (*Container, error) {
	log := logger.Get()

	db, err := database.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := cache.New(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	verifier, err := newVerifier(redisClient, log)
	if err != nil {
		redisClient.Close()
		db.Close()
		return nil, err
	}

	return &Container{
		DB:        db,
		Redis:     redisClient,
		Logger:    log,
		Verifier:  verifier,
		Catalog:   newCatalog(redisClient, log),
		Media:     repository.NewMediaRepository(db),
		Reviews:   repository.NewReviewRepository(db),
		Profiles:  repository.NewProfileRepository(db),
		Favorites: repository.NewFavoriteRepository(db),
		Trending:  repository.NewTrendingRepository(db),
	}, nil
}

// NewIngest builds only the handles the out-of-band seeder needs: store,
// cache and catalog client. The identity verifier belongs to the live
// gateway, so the seeder runs without any auth configuration.
func NewIngest(ctx context.Context) (*Container, error) {
	log := logger.Get()

	db, err := database.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := cache.New(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	return &Container{
		DB:      db,
		Redis:   redisClient,
		Logger:  log,
		Catalog: newCatalog(redisClient, log),
		Media:   repository.NewMediaRepository(db),
	}, nil
}

func newCatalog(redisClient *redis.Client, log *logrus.Logger) *services.TMDBClient {
	apiKey, baseURL := config.TMDBConfig()
	return services.NewTMDBClient(&services.TMDBClientConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Logger:  log,
		Redis:   redisClient,
	})
}

// newVerifier picks the identity backend once at startup; nothing branches
// on it per request. Principal caching is opt-in through AUTH_CACHE_TTL.
func newVerifier(redisClient *redis.Client, log *logrus.Logger) (auth.Verifier, error) {
	backend, providerURL, secret := config.AuthConfig()

	var verifier auth.Verifier
	switch backend {
	case "session":
		if providerURL == "" {
			return nil, fmt.Errorf("AUTH_URL is required for the session auth backend")
		}
		verifier = auth.NewSessionVerifier(providerURL, log)
	case "jwt":
		if secret == "" {
			return nil, fmt.Errorf("AUTH_JWT_SECRET is required for the jwt auth backend")
		}
		verifier = auth.NewTokenVerifier(secret, log)
	default:
		return nil, fmt.Errorf("unknown auth backend: %s", backend)
	}

	if raw := config.AuthCacheTTL(); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid AUTH_CACHE_TTL: %q", raw)
		}
		verifier = auth.NewCachingVerifier(verifier, redisClient, ttl, log)
	}

	return verifier, nil
}

func (c *Container) Close() {
	if c.Redis != nil {
		c.Redis.Close()
		c.Logger.Info("Redis connection closed")
	}
	if c.DB != nil {
		c.DB.Close()
		c.Logger.Info("Database connection closed")
	}
}
