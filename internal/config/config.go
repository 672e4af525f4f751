// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// BaseURL is the public-facing URL used for CORS origin checks.
	BaseURL string

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string

	// Database holds MariaDB connection settings.
	Database DatabaseConfig

	// Redis holds Redis connection settings.
	Redis RedisConfig

	// Admin holds the admin credential configuration.
	Admin AdminConfig

	// Covers holds cover-lookup settings.
	Covers CoversConfig
}

// DatabaseConfig holds MariaDB connection parameters. Individual fields
// (Host, User, Password, Name) are read from separate env vars so container
// orchestrators can manage each independently. If DATABASE_URL is set, it
// takes precedence over the individual fields.
type DatabaseConfig struct {
	// Host is the MariaDB address in host:port format (default: "localhost:3306").
	// If no port is specified, 3306 is appended automatically.
	Host string

	// User is the MariaDB username (default: "humblespace").
	User string

	// Password is the MariaDB password (default: "humblespace").
	Password string

	// Name is the database name (default: "humblespace").
	Name string

	// dsnOverride is set when DATABASE_URL is provided, bypassing individual fields.
	dsnOverride string

	// MaxOpenConns is the maximum number of open connections in the pool.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int

	// ConnMaxLifetime is how long a connection can be reused.
	ConnMaxLifetime time.Duration
}

// DSN returns the go-sql-driver/mysql connection string. If DATABASE_URL was
// set, it is returned as-is. Otherwise the DSN is built from the individual
// Host/User/Password/Name fields using the driver's Config.FormatDSN()
// to safely handle special characters in passwords.
func (d DatabaseConfig) DSN() string {
	if d.dsnOverride != "" {
		return d.dsnOverride
	}
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = ensurePort(d.Host, "3306")
	cfg.DBName = d.Name
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// ensurePort appends the default port if the host string doesn't include one.
// Allows users to set DB_HOST=mydb (gets :3306) or DB_HOST=mydb:3307 (as-is).
func ensurePort(host, defaultPort string) string {
	_, _, err := net.SplitHostPort(host)
	if err != nil {
		return net.JoinHostPort(host, defaultPort)
	}
	return host
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string
}

// AdminConfig holds the two admin credentials. They are deliberately
// distinct: Secret is key material for deriving the session token, Password
// is the credential a human enters on the login form. Both are immutable
// after startup. Rotating Secret invalidates every outstanding session
// cookie at once, which is the intended revocation mechanism.
type AdminConfig struct {
	// Secret is the session-token signing key (ADMIN_SECRET).
	Secret string

	// Password is the login credential (ADMIN_PASSWORD).
	Password string

	// SecureCookies marks the session cookie Secure so browsers only send
	// it over HTTPS. Disabled in development so cookies work on plain HTTP.
	SecureCookies bool
}

// CoversConfig holds cover-lookup settings.
type CoversConfig struct {
	// Timeout bounds each upstream Open Library request.
	Timeout time.Duration

	// CacheTTL is how long lookup results stay in the Redis cache.
	CacheTTL time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present (ignored
// when absent, so production deployments can rely on real env vars alone).
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		BaseURL:  getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost:3306"),
			User:            getEnv("DB_USER", "humblespace"),
			Password:        getEnv("DB_PASSWORD", "humblespace"),
			Name:            getEnv("DB_NAME", "humblespace"),
			dsnOverride:     getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},

		Admin: AdminConfig{
			Secret:   getEnv("ADMIN_SECRET", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},

		Covers: CoversConfig{
			Timeout:  getEnvDuration("COVERS_TIMEOUT", 5*time.Second),
			CacheTTL: getEnvDuration("COVERS_CACHE_TTL", 24*time.Hour),
		},
	}

	// Validate required credentials in production. Case-insensitive check
	// catches common variants like "Production", "prod", etc.
	envLower := strings.ToLower(cfg.Env)
	isProd := envLower == "production" || envLower == "prod"
	if isProd {
		if cfg.Admin.Secret == "" {
			return nil, fmt.Errorf("ADMIN_SECRET is required in production")
		}
		if len(cfg.Admin.Secret) < 32 {
			return nil, fmt.Errorf("ADMIN_SECRET must be at least 32 characters in production")
		}
		if cfg.Admin.Password == "" {
			return nil, fmt.Errorf("ADMIN_PASSWORD is required in production")
		}
	}

	// Secure cookies default on in production, off in development. The flag
	// stays overridable either way since TLS termination varies by deployment.
	cfg.Admin.SecureCookies = getEnvBool("COOKIE_SECURE", isProd)

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvBool reads a boolean env var ("true", "1", "false", "0") or returns the default.
func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "24h") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
