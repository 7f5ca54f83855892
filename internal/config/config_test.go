package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"BACKEND", "DATA", "REDIS_ADDR", "REDIS_PREFIX", "REDIS_TIMEOUT", "DATE_FORMAT", "DEBUG"} {
		t.Setenv(EnvPrefix+key, "")
	}

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, "", cfg.DataPath)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "taskdash:", cfg.RedisPrefix)
	assert.Equal(t, 3*time.Second, cfg.RedisTimeout)
	assert.Equal(t, "iso", cfg.DateFormat)
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TASKDASH_BACKEND", "redis")
	t.Setenv("TASKDASH_DATA", "/tmp/tasks.db")
	t.Setenv("TASKDASH_REDIS_ADDR", "cache:6380")
	t.Setenv("TASKDASH_REDIS_TIMEOUT", "500ms")
	t.Setenv("TASKDASH_DATE_FORMAT", "dmy")
	t.Setenv("TASKDASH_DEBUG", "true")

	cfg := Load()
	assert.Equal(t, "redis", cfg.Backend)
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.Equal(t, 500*time.Millisecond, cfg.RedisTimeout)
	assert.True(t, cfg.Debug)

	policy, err := cfg.DatePolicy()
	require.NoError(t, err)
	assert.Equal(t, "dmy", policy.Name)

	opts := cfg.StorageOptions(nil)
	assert.Equal(t, "redis", opts.Backend)
	assert.Equal(t, "/tmp/tasks.db", opts.Path)
	assert.Equal(t, "cache:6380", opts.Redis.Addr)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("TASKDASH_DEBUG", "sometimes")
	t.Setenv("TASKDASH_REDIS_TIMEOUT", "soon")
	t.Setenv("TASKDASH_DATE_FORMAT", "mdy")

	cfg := Load()
	assert.False(t, cfg.Debug)
	assert.Equal(t, 3*time.Second, cfg.RedisTimeout)

	_, err := cfg.DatePolicy()
	assert.Error(t, err)
}
