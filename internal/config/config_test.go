package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV_CHEK", "1")
	t.Setenv("DB_HOST", "")
	t.Setenv("SAVE_RETRIES", "")

	cfg := Load()
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 3, cfg.SaveRetries)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQuery)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV_CHEK", "1")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SAVE_RETRIES", "5")
	t.Setenv("SLOW_QUERY", "1s")
	t.Setenv("DEBUG", "true")
	t.Setenv("REDIS_DB", "oops")

	cfg := Load()
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, 5, cfg.SaveRetries)
	assert.Equal(t, time.Second, cfg.SlowQuery)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 0, cfg.RedisDB, "некорректное число игнорируется")
	assert.Contains(t, cfg.DSN(), "host=db.internal")
}
