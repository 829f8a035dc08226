package config

import "os"

// DatabaseConfig returns host, port, user, password, database name
func DatabaseConfig() (string, string, string, string, string) {
	host := GetEnv("DB_HOST", "localhost")
	port := GetEnv("DB_PORT", "5432")
	user := GetEnv("DB_USER", "postgres")
	password := GetEnv("DB_PASS", "")
	name := GetEnv("DB_NAME", "moviemagic")
	return host, port, user, password, name
}

// RedisConfig returns host, port, password
func RedisConfig() (string, string, string) {
	host := GetEnv("R_HOST", "redis")
	port := GetEnv("R_PORT", "6379")
	password := GetEnv("R_PASS", "")
	return host, port, password
}

// AuthConfig returns the verifier backend ("session" or "jwt"), the identity
// provider base URL (session backend) and the shared signing secret (jwt backend)
func AuthConfig() (string, string, string) {
	backend := GetEnv("AUTH_BACKEND", "session")
	providerURL := GetEnv("AUTH_URL", "")
	secret := GetEnv("AUTH_JWT_SECRET", "")
	return backend, providerURL, secret
}

// AuthCacheTTL returns the verified-principal cache duration, e.g. "5m".
// Empty disables caching; the effective TTL is always capped at the
// credential's own expiry.
func AuthCacheTTL() string {
	return GetEnv("AUTH_CACHE_TTL", "")
}

// TMDBConfig returns the catalog API key and base URL
func TMDBConfig() (string, string) {
	apiKey := GetEnv("TMDB_API_KEY", "")
	baseURL := GetEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	return apiKey, baseURL
}

// ServerConfig returns the HTTP listen port
func ServerConfig() string {
	return GetEnv("PORT", "5000")
}

// GetEnv retrieves values from environment files based on the key it matches,
// returns a string (value) if not empty
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
