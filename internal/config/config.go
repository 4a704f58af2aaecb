// Package config reads service settings from flags, falling back to the
// environment and a .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	DatabaseDriver   string
	DatabaseURL      string
	VoterTokenSecret string
	CookieDomain     string
	CookieSecure     bool
	AllowedOrigins   []string
	ShutdownTimeout  time.Duration

	// Args holds the positional arguments left after the flags.
	Args []string
}

// Load reads .env, if present, into the environment and parses args.
func Load(name string, args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	} else if err != nil {
		slog.Debug("no .env file found")
	}
	return ParseFlags(name, args)
}

// ParseFlags parses args. Every flag defaults to its environment variable.
func ParseFlags(name string, args []string) (Config, error) {
	var (
		cfg            Config
		allowedOrigins string
	)

	cookieSecure, err := envBool("COOKIE_SECURE")
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", envOr("HTTP_ADDR", "0.0.0.0:8080"), "HTTP listen address")
	fs.StringVar(&cfg.DatabaseDriver, "db-driver", envOr("DATABASE_DRIVER", "postgres"), "Database driver (postgres or sqlite)")
	fs.StringVar(&cfg.DatabaseURL, "db-url", os.Getenv("DATABASE_URL"), "Database connection string")
	fs.StringVar(&cfg.VoterTokenSecret, "voter-secret", os.Getenv("VOTER_TOKEN_SECRET"), "Secret used to sign voter cookies (prefer env)")
	fs.StringVar(&cfg.CookieDomain, "cookie-domain", os.Getenv("COOKIE_DOMAIN"), "Domain attribute of the voter cookie")
	fs.BoolVar(&cfg.CookieSecure, "cookie-secure", cookieSecure, "Mark the voter cookie Secure")
	fs.StringVar(&allowedOrigins, "allowed-origins", envOr("ALLOWED_ORIGINS", "*"), "Comma separated CORS origins")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", shutdownTimeout, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Args = fs.Args()

	cfg.DatabaseDriver = strings.ToLower(cfg.DatabaseDriver)
	switch cfg.DatabaseDriver {
	case "postgres":
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = postgresConnString()
		}
	case "sqlite":
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = "file:quickpoll.db"
		}
	default:
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -db-url, DATABASE_URL or POSTGRES_* env)")
	}

	for _, origin := range strings.Split(allowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	return cfg, nil
}

// RequireVoterSecret fails when no secret is configured for signing voter
// cookies. Only the HTTP server needs one.
func (c Config) RequireVoterSecret() error {
	if c.VoterTokenSecret == "" {
		return errors.New("VOTER_TOKEN_SECRET required")
	}
	return nil
}

// postgresConnString builds a URL from the POSTGRES_* variables, or returns
// "" when POSTGRES_HOST is unset.
func postgresConnString() string {
	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		return ""
	}
	port := envOr("POSTGRES_PORT", "5432")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"), os.Getenv("POSTGRES_PASSWORD"), host, port, os.Getenv("POSTGRES_DB"))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s env variable: %w", key, err)
	}
	return b, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable: %w", key, err)
	}
	return d, nil
}
