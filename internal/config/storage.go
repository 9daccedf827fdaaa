package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/lifeledger/internal/common"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// RedisConfig holds the Redis backend settings.
type RedisConfig struct {
	Addr     string
	Password string
	Prefix   string
	DB       int
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend string
	Path    string
	Redis   RedisConfig
}

// DefaultStorageConfig returns the SQLite configuration used out of the box.
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Backend: BackendSQLite,
		Path:    ExpandPath(DefaultDatabasePath),
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "lifeledger:",
		},
	}
}

// LoadDotEnv loads variables from .env files into the process environment.
// Variables already set are kept. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// LoadStorageConfig loads storage configuration from Viper and environment variables.
// It follows this precedence:
// 1. Viper configuration (from config file or LIFELEDGER_ env vars)
// 2. Direct environment variables (REDIS_ADDR, REDIS_PASSWORD, REDIS_DB)
// 3. Default values
func LoadStorageConfig() (*StorageConfig, error) {
	config := DefaultStorageConfig()

	// Load from Viper first
	if v := viper.GetString("storage.backend"); v != "" {
		config.Backend = strings.ToLower(v)
	}
	if v := viper.GetString("storage.path"); v != "" {
		config.Path = ExpandPath(v)
	}
	if v := viper.GetString("storage.redis.addr"); v != "" {
		config.Redis.Addr = v
	} else if v := os.Getenv("REDIS_ADDR"); v != "" {
		config.Redis.Addr = v
	}
	if v := viper.GetString("storage.redis.password"); v != "" {
		config.Redis.Password = v
	} else {
		config.Redis.Password = os.Getenv("REDIS_PASSWORD")
	}
	if viper.IsSet("storage.redis.prefix") {
		config.Redis.Prefix = viper.GetString("storage.redis.prefix")
	}
	if viper.IsSet("storage.redis.db") {
		config.Redis.DB = viper.GetInt("storage.redis.db")
	} else if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: REDIS_DB must be a number: %q", common.ErrInvalidConfig, v)
		}
		config.Redis.DB = db
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that the selected backend has what it needs.
func (c StorageConfig) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if strings.TrimSpace(c.Path) == "" {
			return fmt.Errorf("%w: storage.path is required for the sqlite backend", common.ErrInvalidConfig)
		}
	case BackendMemory:
	case BackendRedis:
		if strings.TrimSpace(c.Redis.Addr) == "" {
			return fmt.Errorf("%w: storage.redis.addr is required for the redis backend", common.ErrInvalidConfig)
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("%w: storage.redis.db cannot be negative", common.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage backend %q", common.ErrInvalidConfig, c.Backend)
	}
	return nil
}
