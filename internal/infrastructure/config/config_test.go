package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"INVOICE_APP_NAME":          os.Getenv("INVOICE_APP_NAME"),
		"INVOICE_APP_ENV":           os.Getenv("INVOICE_APP_ENV"),
		"INVOICE_APP_PORT":          os.Getenv("INVOICE_APP_PORT"),
		"INVOICE_STORAGE_BACKEND":   os.Getenv("INVOICE_STORAGE_BACKEND"),
		"INVOICE_DATABASE_HOST":     os.Getenv("INVOICE_DATABASE_HOST"),
		"INVOICE_DATABASE_PORT":     os.Getenv("INVOICE_DATABASE_PORT"),
		"INVOICE_DATABASE_PASSWORD": os.Getenv("INVOICE_DATABASE_PASSWORD"),
		"INVOICE_DATABASE_SSLMODE":  os.Getenv("INVOICE_DATABASE_SSLMODE"),
		"INVOICE_CACHE_BACKEND":     os.Getenv("INVOICE_CACHE_BACKEND"),
		"INVOICE_LOG_LEVEL":         os.Getenv("INVOICE_LOG_LEVEL"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "invoicely-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "postgres", cfg.Storage.Backend)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "invoicely", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, "memory", cfg.Cache.Backend)
		assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("INVOICE_APP_PORT", "9000")
		os.Setenv("INVOICE_STORAGE_BACKEND", "sqlite")
		os.Setenv("INVOICE_LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "sqlite", cfg.Storage.Backend)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("rejects unknown storage backend", func(t *testing.T) {
		clearEnv()
		os.Setenv("INVOICE_STORAGE_BACKEND", "mongodb")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects unknown cache backend", func(t *testing.T) {
		clearEnv()
		os.Setenv("INVOICE_CACHE_BACKEND", "memcached")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production requires password and ssl for postgres", func(t *testing.T) {
		clearEnv()
		os.Setenv("INVOICE_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)

		os.Setenv("INVOICE_DATABASE_PASSWORD", "secret")
		_, err = Load()
		require.Error(t, err)

		os.Setenv("INVOICE_DATABASE_SSLMODE", "require")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})

	t.Run("file backend skips database checks in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("INVOICE_APP_ENV", "production")
		os.Setenv("INVOICE_STORAGE_BACKEND", "file")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "file", cfg.Storage.Backend)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "invoicely",
		Password: "p@ss/word",
		DBName:   "billing",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5433")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password are escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
