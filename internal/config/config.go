package config

import (
	"os"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/balkashynov/taskdash/internal/parser"
	"github.com/balkashynov/taskdash/internal/storage"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "TASKDASH_"

// Config holds the application configuration.
type Config struct {
	// Storage settings
	Backend      string
	DataPath     string
	RedisAddr    string
	RedisPrefix  string
	RedisTimeout time.Duration

	// Due date format: iso or dmy
	DateFormat string

	Debug bool
}

// Load returns configuration from environment variables with sensible defaults.
func Load() *Config {
	redis := storage.DefaultRedisConfig()
	return &Config{
		Backend:      getEnv("BACKEND", storage.BackendSQLite),
		DataPath:     getEnv("DATA", ""),
		RedisAddr:    getEnv("REDIS_ADDR", redis.Addr),
		RedisPrefix:  getEnv("REDIS_PREFIX", redis.Prefix),
		RedisTimeout: getDuration("REDIS_TIMEOUT", redis.Timeout),
		DateFormat:   getEnv("DATE_FORMAT", parser.ISODate.Name),
		Debug:        getBool("DEBUG", false),
	}
}

// DatePolicy resolves the configured due date format
func (c *Config) DatePolicy() (parser.DatePolicy, error) {
	return parser.PolicyByName(c.DateFormat)
}

// StorageOptions builds the options for storage.Open
func (c *Config) StorageOptions(log lgr.L) storage.Options {
	return storage.Options{
		Backend: c.Backend,
		Path:    c.DataPath,
		Redis: storage.RedisConfig{
			Addr:    c.RedisAddr,
			Prefix:  c.RedisPrefix,
			Timeout: c.RedisTimeout,
		},
		Log: log,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}
