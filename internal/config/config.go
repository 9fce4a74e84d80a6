package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration of the server, read from the
// environment (and an optional .env file).
type Config struct {
	Port             string
	GoogleMapsAPIKey string
	MapsBaseURL      string
	MapsLanguage     string
	OracleTimeout    time.Duration
	DBPath           string
	DatabaseURL      string
	RedisURL         string
	DurationCacheTTL time.Duration
	CORSOrigins      []string
	SeedPath         string
}

// Load reads .env if present, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	oracleTimeout, err := getDuration("ORACLE_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, err
	}
	ttl, err := getDuration("DURATION_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:             Get("PORT", "8080"),
		GoogleMapsAPIKey: strings.TrimSpace(os.Getenv("GOOGLE_MAPS_API_KEY")),
		MapsBaseURL:      Get("MAPS_BASE_URL", "https://maps.googleapis.com"),
		MapsLanguage:     Get("MAPS_LANGUAGE", "ja"),
		OracleTimeout:    oracleTimeout,
		DBPath:           Get("DB_PATH", "data/app.db"),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisURL:         strings.TrimSpace(os.Getenv("REDIS_URL")),
		DurationCacheTTL: ttl,
		CORSOrigins:      splitCSV(Get("CORS_ORIGINS", "http://localhost:8501")),
		SeedPath:         Get("SEED_PATH", "data/seeds/origins.json"),
	}, nil
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config: %s must not be negative", key)
	}
	return d, nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
