package utils

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string
	Auth     AuthConfig
	Catalog  CatalogConfig
	TMDB     TMDBConfig
	Redis    RedisConfig
}

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

type CatalogConfig struct {
	MoviesPath     string
	SimilarityPath string
	TopK           int
}

type TMDBConfig struct {
	APIKey  string
	BaseURL string
}

type RedisConfig struct {
	Addr     string // empty disables the recommendation cache
	Password string
	DB       int
}

// Load reads configuration from the environment, with a .env file as an
// optional overlay (missing file is fine).
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr: getEnv("MOVIEREC_HTTP_ADDR", ":8080"),
		Auth: AuthConfig{
			JWTSecret:   getEnv("MOVIEREC_JWT_SECRET", "dev-secret-change-me"),
			JWTIssuer:   getEnv("MOVIEREC_JWT_ISSUER", "movierec"),
			JWTDuration: time.Duration(getEnvInt("MOVIEREC_JWT_TTL_HOURS", 24)) * time.Hour,
		},
		Catalog: CatalogConfig{
			MoviesPath:     getEnv("MOVIEREC_MOVIES_PATH", "data/movies.json"),
			SimilarityPath: getEnv("MOVIEREC_SIMILARITY_PATH", "data/similarity.json"),
			TopK:           getEnvInt("MOVIEREC_TOP_K", 6),
		},
		TMDB: TMDBConfig{
			APIKey:  getEnv("MOVIEREC_TMDB_API_KEY", ""),
			BaseURL: getEnv("MOVIEREC_TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("MOVIEREC_REDIS_ADDR", ""),
			Password: getEnv("MOVIEREC_REDIS_PASSWORD", ""),
			DB:       getEnvInt("MOVIEREC_REDIS_DB", 0),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
