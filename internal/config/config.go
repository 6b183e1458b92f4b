package config

import (
	"fmt"
	"os"
	"time"
)

// Config is built once at process start and passed by reference. There is no
// runtime mutation: the signing secret and the admin allow-list are fixed for
// the lifetime of the process.
type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr string
	WebAddr  string // edge gateway listen address (cmd/web)

	// Auth / security
	JWTSecret   string
	JWTIssuer   string
	SessionTTL  time.Duration // validity window of the session cookie pair
	AdminEmails string        // comma-separated privileged allow-list, matched exactly

	// Infrastructure
	DBAddr    string
	RedisAddr string // optional; rate limiting is disabled without it
	RabbitURL string // optional; registration events are dropped without it

	// Frontend
	FrontendOrigin string // CORS origin for the API, proxy upstream for cmd/web

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8000"),
		WebAddr:  getEnv("WEB_ADDR", ":3000"),
	}

	// required values
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}

	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}

	// optional with defaults
	cfg.JWTIssuer = getEnv("JWT_ISSUER", "shopfront")
	cfg.AdminEmails = os.Getenv("ADMIN_EMAILS")
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RabbitURL = os.Getenv("RABBIT_URL")
	cfg.FrontendOrigin = getEnv("FRONTEND_ORIGIN", "http://localhost:3000")

	// Session artifacts are valid for a fixed window; role changes only take
	// effect on the next re-mint (re-login) inside that window.
	ttl, err := getDuration("SESSION_TTL", 48*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = ttl

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

// SecureCookies reports whether cookies should carry the Secure attribute.
func (c *Config) SecureCookies() bool {
	return c.Env != "dev"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}
