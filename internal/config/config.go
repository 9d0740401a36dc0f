package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Auth modes.
const (
	AuthREST        = "rest"
	AuthIdentity    = "identity"
	AuthLocal       = "local"
	AuthPlaceholder = "placeholder"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all application configuration.
type Config struct {
	Addr     string
	GRPCAddr string

	// APIURL is the REST backend serving feeds and, in rest mode, auth.
	APIURL      string
	IdentityURL string
	IdentityKey string
	// AuthMode is one of the Auth* constants. Empty means derive it from
	// which backends are configured.
	AuthMode string

	DBPath    string
	OUIDBPath string

	PollInterval time.Duration
	FetchTimeout time.Duration
	MockDelay    time.Duration
	MockScenario string

	RedisURL       string
	NATSURL        string
	AllowedOrigins []string
	AuthRateLimit  int

	Debug bool
}

// Load reads an optional .env file, then environment variables, then args.
// Flags take precedence over environment variables.
func Load(args []string) (*Config, error) {
	for _, path := range []string{".env", "../.env"} {
		if err := godotenv.Load(path); err == nil {
			slog.Debug("Loaded config file", "path", path)
			break
		}
	}

	cfg := &Config{}

	// Defaults and Environment Variables
	cfg.Addr = getEnv("CYBERDASH_ADDR", ":8080")
	cfg.GRPCAddr = getEnv("CYBERDASH_GRPC", ":9000")
	cfg.APIURL = getEnv("CYBERDASH_API_URL", "")
	cfg.IdentityURL = getEnv("CYBERDASH_IDP_URL", "")
	cfg.IdentityKey = getEnv("CYBERDASH_IDP_KEY", "")
	cfg.AuthMode = getEnv("CYBERDASH_AUTH", "")
	cfg.DBPath = getEnv("CYBERDASH_DB", getDefaultDBPath())
	cfg.OUIDBPath = getEnv("CYBERDASH_OUI_DB", "")
	cfg.PollInterval = getEnvDuration("CYBERDASH_POLL_INTERVAL", 30*time.Second)
	cfg.FetchTimeout = getEnvDuration("CYBERDASH_FETCH_TIMEOUT", 15*time.Second)
	cfg.MockDelay = getEnvDuration("CYBERDASH_MOCK_DELAY", 500*time.Millisecond)
	cfg.MockScenario = getEnv("CYBERDASH_MOCK_SCENARIO", "basic")
	cfg.RedisURL = getEnv("CYBERDASH_REDIS_URL", "")
	cfg.NATSURL = getEnv("CYBERDASH_NATS_URL", "")
	origins := getEnv("CYBERDASH_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8080")
	cfg.AuthRateLimit = getEnvInt("CYBERDASH_AUTH_RATE_LIMIT", 5)
	cfg.Debug = getEnvBool("CYBERDASH_DEBUG", false)

	// Command Line Flags (Override Env)
	fs := flag.NewFlagSet("cyberdash", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	fs.StringVar(&cfg.GRPCAddr, "grpc", cfg.GRPCAddr, "gRPC health server address (empty to disable)")
	fs.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "REST backend base URL (empty for mock data)")
	fs.StringVar(&cfg.IdentityURL, "idp-url", cfg.IdentityURL, "Identity service base URL")
	fs.StringVar(&cfg.IdentityKey, "idp-key", cfg.IdentityKey, "Identity service API key")
	fs.StringVar(&cfg.AuthMode, "auth", cfg.AuthMode, "Auth provider: rest, identity, local or placeholder")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	fs.StringVar(&cfg.OUIDBPath, "oui-db", cfg.OUIDBPath, "Path to the OUI vendor database (empty for in-memory)")
	fs.DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "Screen polling interval")
	fs.DurationVar(&cfg.FetchTimeout, "fetch-timeout", cfg.FetchTimeout, "Per-fetch timeout")
	fs.DurationVar(&cfg.MockDelay, "mock-delay", cfg.MockDelay, "Simulated latency of mock data")
	fs.StringVar(&cfg.MockScenario, "scenario", cfg.MockScenario, "Mock data scenario: basic or surge")
	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "Redis URL for local sessions (empty for in-memory)")
	fs.StringVar(&cfg.NATSURL, "nats", cfg.NATSURL, "NATS URL for slice-change events (empty to disable)")
	fs.StringVar(&origins, "origins", origins, "Allowed cross-origin hosts (comma separated)")
	fs.IntVar(&cfg.AuthRateLimit, "auth-rate", cfg.AuthRateLimit, "Login and signup attempts per client per minute")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable verbose debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.AllowedOrigins = parseList(origins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and enum values.
func (c *Config) Validate() error {
	switch c.AuthMode {
	case "", AuthREST, AuthIdentity, AuthLocal, AuthPlaceholder:
	default:
		return fmt.Errorf("%w: unknown auth mode %q", ErrInvalidConfig, c.AuthMode)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", ErrInvalidConfig)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%w: fetch timeout must be positive", ErrInvalidConfig)
	}
	if c.MockDelay < 0 {
		return fmt.Errorf("%w: mock delay cannot be negative", ErrInvalidConfig)
	}
	if c.AuthRateLimit <= 0 {
		return fmt.Errorf("%w: auth rate limit must be positive", ErrInvalidConfig)
	}
	return nil
}

// Auth resolves the provider to use. Without an explicit mode the identity
// service wins over the REST backend; with neither configured the
// placeholder answers every call.
func (c *Config) Auth() string {
	if c.AuthMode != "" {
		return c.AuthMode
	}
	switch {
	case c.IdentityURL != "" && c.IdentityKey != "":
		return AuthIdentity
	case c.APIURL != "":
		return AuthREST
	}
	return AuthPlaceholder
}

func parseList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// getDefaultDBPath returns ~/.cyberdash/cyberdash.db, or a file in the
// working directory when the home directory is unusable.
func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		slog.Warn("Could not get user home directory, using current dir", "error", err)
		return "cyberdash.db"
	}
	return filepath.Join(home, ".cyberdash", "cyberdash.db")
}
