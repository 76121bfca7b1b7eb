package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisURL string

	JWTSecret string
	JWTTTL    time.Duration

	MovieAPIBaseURL string
	MovieAPIKey     string

	MeiliSearchHost string
	MeiliMasterKey  string

	CloudinaryFolder string

	GitHubClientID     string
	GitHubClientSecret string
	GitHubRedirectURL  string
	KakaoClientID      string
	KakaoClientSecret  string
	KakaoRedirectURL   string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// SearchRateLimit throttles one movie search per client within the
	// window; SearchCacheTTL keeps identical query responses around.
	SearchRateLimit time.Duration
	SearchCacheTTL  time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASS"),
		DBName:     getEnv("DB_NAME", "reelog"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		MovieAPIBaseURL: getEnv("MOVIE_API_BASE_URL", "https://api.themoviedb.org/3"),
		MovieAPIKey:     os.Getenv("MOVIE_API_KEY"),

		MeiliSearchHost: getEnv("MEILISEARCH_HOST", "http://localhost:7700"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		CloudinaryFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "reelog_icons"),

		GitHubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GitHubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		GitHubRedirectURL:  os.Getenv("GITHUB_REDIRECT_URL"),
		KakaoClientID:      os.Getenv("KAKAO_CLIENT_ID"),
		KakaoClientSecret:  os.Getenv("KAKAO_CLIENT_SECRET"),
		KakaoRedirectURL:   os.Getenv("KAKAO_REDIRECT_URL"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
	}

	var err error
	cfg.JWTTTL, err = parseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.SearchRateLimit, err = parseDuration(getEnv("SEARCH_RATE_LIMIT", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_RATE_LIMIT: %w", err)
	}
	cfg.SearchCacheTTL, err = parseDuration(getEnv("SEARCH_CACHE_TTL", "120s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_CACHE_TTL: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
