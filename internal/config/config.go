package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string
	FrontendURL    string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPass      string
	DBName      string
	DBSSLMode   string

	RedisURL string

	MeiliSearchHost   string
	MeiliMasterKey    string
	SearchReindexSpec string

	CloudinaryURL          string
	CloudinaryUploadFolder string

	JWTSecret    string
	SessionTTL   time.Duration
	CookieName   string
	SecureCookie bool

	ChainRPCURL    string
	ChainPackageID string
	ChainTimeout   time.Duration

	OAuthRedirectBase string
	GoogleClientID    string
	FacebookClientID  string
	TwitchClientID    string

	MatchScorer    string
	RateLimitMatch time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		FrontendURL:    strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPass:      os.Getenv("DB_PASS"),
		DBName:      getEnv("DB_NAME", "skillsverse"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		MeiliSearchHost:   os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:    os.Getenv("MEILI_MASTER_KEY"),
		SearchReindexSpec: getEnv("SEARCH_REINDEX_SPEC", "@every 1h"),

		CloudinaryURL:          os.Getenv("CLOUDINARY_URL"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "skillsverse"),

		JWTSecret:    getEnv("JWT_SECRET", "change-me"),
		CookieName:   getEnv("SESSION_COOKIE", "sv_session"),
		SecureCookie: getEnv("SESSION_COOKIE_SECURE", "false") == "true",

		ChainRPCURL:    getEnv("CHAIN_RPC_URL", "https://fullnode.testnet.sui.io:443"),
		ChainPackageID: getEnv("CHAIN_PACKAGE_ID", "0x0"),

		OAuthRedirectBase: strings.TrimRight(getEnv("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080/auth"), "/"),
		GoogleClientID:    os.Getenv("GOOGLE_CLIENT_ID"),
		FacebookClientID:  os.Getenv("FACEBOOK_CLIENT_ID"),
		TwitchClientID:    os.Getenv("TWITCH_CLIENT_ID"),

		MatchScorer: getEnv("MATCH_SCORER", "random"),
	}

	var err error
	cfg.SessionTTL, err = parseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.ChainTimeout, err = parseDuration(getEnv("CHAIN_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHAIN_TIMEOUT: %w", err)
	}
	cfg.RateLimitMatch, err = parseDuration(getEnv("RATE_LIMIT_MATCH", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_MATCH: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings that are unsafe outside development.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	switch c.MatchScorer {
	case "random", "skills":
	default:
		return fmt.Errorf("MATCH_SCORER must be random or skills, got %q", c.MatchScorer)
	}
	if c.IsProduction() {
		if c.JWTSecret == "" || c.JWTSecret == "change-me" {
			return errors.New("JWT_SECRET must be set in production")
		}
		if !c.SecureCookie {
			return errors.New("SESSION_COOKIE_SECURE must be true in production")
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
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

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
