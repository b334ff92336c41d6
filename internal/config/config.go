package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/labstack/gommon/random"
	"golang.org/x/crypto/bcrypt"
)

// FileEnv names an optional TOML file read before the environment.
const FileEnv = "VGAUTH_CONFIG_FILE"

// Config is the service configuration. Values are layered: built-in
// defaults, then the TOML file named by FileEnv, then environment variables.
type Config struct {
	Port        int    `toml:"port" env:"VG_AUTHENTICATION_PORT"`
	DatabaseURL string `toml:"database_url" env:"DATABASE_URL"`

	JWTSecret     string `toml:"jwt_secret" env:"JWT_SECRET"`
	JWTSecretFile string `toml:"jwt_secret_file" env:"JWT_SECRET_FILE"`

	AuthenticateSecret     string `toml:"authenticate_secret" env:"AUTHENTICATE_SECRET"`
	AuthenticateSecretFile string `toml:"authenticate_secret_file" env:"AUTHENTICATE_SECRET_FILE"`

	BcryptCost      int `toml:"bcrypt_cost" env:"BCRYPT_COST"`
	HashConcurrency int `toml:"hash_concurrency" env:"HASH_CONCURRENCY"`

	Redis RedisConfig `toml:"redis"`

	LogDevelopment bool `toml:"log_development" env:"LOG_DEVELOPMENT"`

	// GeneratedJWTSecret is set when no JWT secret was configured and a
	// random one was generated. Tokens will not survive a restart.
	GeneratedJWTSecret bool `toml:"-"`
}

// RedisConfig configures the optional tenant cache. An empty Addr disables it.
type RedisConfig struct {
	Addr           string        `toml:"addr" env:"REDIS_ADDR"`
	Password       string        `toml:"password" env:"REDIS_PASSWORD"`
	DB             int           `toml:"db" env:"REDIS_DB"`
	TenantCacheTTL time.Duration `toml:"tenant_cache_ttl" env:"TENANT_CACHE_TTL"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Port:                   80,
		JWTSecretFile:          "/run/secrets/authenticate-jwt-secret",
		AuthenticateSecretFile: "/run/secrets/authenticate-secret-key",
		BcryptCost:             bcrypt.DefaultCost,
		HashConcurrency:        runtime.GOMAXPROCS(0),
		Redis: RedisConfig{
			TenantCacheTTL: 5 * time.Minute,
		},
	}
}

// Load builds the configuration from defaults, the optional TOML file and
// the environment, then resolves file-backed secrets.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(FileEnv); path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.resolveSecrets(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func LoadFile(filename string, cfg *Config) error {
	if _, err := toml.DecodeFile(filename, cfg); err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}
	return nil
}

// ParseEnv overlays environment variables on target. Unset variables leave
// fields untouched.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// resolveSecrets fills empty secrets from their files. A secret set
// directly always wins over its file.
func (c *Config) resolveSecrets() error {
	if c.JWTSecret == "" {
		secret, err := readSecretFile(c.JWTSecretFile)
		if err != nil {
			return fmt.Errorf("jwt secret: %w", err)
		}
		c.JWTSecret = secret
	}
	if c.JWTSecret == "" {
		c.JWTSecret = random.String(32)
		c.GeneratedJWTSecret = true
	}

	if c.AuthenticateSecret == "" {
		secret, err := readSecretFile(c.AuthenticateSecretFile)
		if err != nil {
			return fmt.Errorf("authenticate secret: %w", err)
		}
		c.AuthenticateSecret = secret
	}
	return nil
}

// readSecretFile returns the trimmed file contents, or "" when the file
// does not exist.
func readSecretFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Validate reports configuration the service cannot start with.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	if c.AuthenticateSecret == "" {
		return fmt.Errorf("authenticate secret is required: set AUTHENTICATE_SECRET or provide %s", c.AuthenticateSecretFile)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.HashConcurrency < 1 {
		return errors.New("HASH_CONCURRENCY must be at least 1")
	}
	if c.Redis.TenantCacheTTL < 0 {
		return errors.New("TENANT_CACHE_TTL must not be negative")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
