package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "skubridge-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "skubridge", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.InDelta(t, 0.60, cfg.Resolution.FuzzyThreshold, 1e-9)
	assert.Equal(t, 4, cfg.Resolution.BatchWorkers)
	assert.Equal(t, 1000, cfg.Resolution.ReviewQueueSize)
	assert.Equal(t, 20, cfg.Resolution.TopUnmapped)
	assert.Equal(t, 5*time.Minute, cfg.Snapshot.CacheTTL)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SKUBRIDGE_DATABASE_PASSWORD", "secret")
	t.Setenv("SKUBRIDGE_RESOLUTION_BATCH_WORKERS", "8")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, 8, cfg.Resolution.BatchWorkers)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("accepts defaults", func(t *testing.T) {
		assert.NoError(t, valid().validate())
	})

	t.Run("rejects idle conns above open conns", func(t *testing.T) {
		cfg := valid()
		cfg.Database.MaxIdleConns = 100
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects out-of-range fuzzy threshold", func(t *testing.T) {
		cfg := valid()
		cfg.Resolution.FuzzyThreshold = 1.5
		assert.Error(t, cfg.validate())

		cfg.Resolution.FuzzyThreshold = -0.1
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects non-positive worker count", func(t *testing.T) {
		cfg := valid()
		cfg.Resolution.BatchWorkers = 0
		assert.Error(t, cfg.validate())
	})

	t.Run("production requires password and ssl", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "production"
		assert.Error(t, cfg.validate())

		cfg.Database.Password = "secret"
		assert.Error(t, cfg.validate())

		cfg.Database.SSLMode = "require"
		assert.NoError(t, cfg.validate())
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "app",
		Password: "p@ss/word",
		DBName:   "skubridge",
		SSLMode:  "require",
	}
	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word", "password must be escaped")
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
