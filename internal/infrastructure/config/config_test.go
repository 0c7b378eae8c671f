package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"IKADA_APP_NAME":                os.Getenv("IKADA_APP_NAME"),
		"IKADA_APP_ENV":                 os.Getenv("IKADA_APP_ENV"),
		"IKADA_APP_PORT":                os.Getenv("IKADA_APP_PORT"),
		"IKADA_DATABASE_HOST":           os.Getenv("IKADA_DATABASE_HOST"),
		"IKADA_DATABASE_PORT":           os.Getenv("IKADA_DATABASE_PORT"),
		"IKADA_DATABASE_USER":           os.Getenv("IKADA_DATABASE_USER"),
		"IKADA_DATABASE_PASSWORD":       os.Getenv("IKADA_DATABASE_PASSWORD"),
		"IKADA_DATABASE_DBNAME":         os.Getenv("IKADA_DATABASE_DBNAME"),
		"IKADA_DATABASE_SSLMODE":        os.Getenv("IKADA_DATABASE_SSLMODE"),
		"IKADA_DATABASE_MAX_OPEN_CONNS": os.Getenv("IKADA_DATABASE_MAX_OPEN_CONNS"),
		"IKADA_DATABASE_MAX_IDLE_CONNS": os.Getenv("IKADA_DATABASE_MAX_IDLE_CONNS"),
		"IKADA_JWT_SECRET":              os.Getenv("IKADA_JWT_SECRET"),
		"IKADA_MIDTRANS_SERVER_KEY":     os.Getenv("IKADA_MIDTRANS_SERVER_KEY"),
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

		assert.Equal(t, "ikada-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "ikada", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 60, cfg.Midtrans.ExpiryMinute)
		assert.False(t, cfg.Midtrans.Production)
	})

	t.Run("loads values from environment variables with IKADA prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("IKADA_APP_NAME", "test-app")
		os.Setenv("IKADA_APP_ENV", "testing")
		os.Setenv("IKADA_APP_PORT", "9000")
		os.Setenv("IKADA_DATABASE_HOST", "testdb.local")
		os.Setenv("IKADA_DATABASE_PORT", "5433")
		os.Setenv("IKADA_DATABASE_USER", "testuser")
		os.Setenv("IKADA_DATABASE_PASSWORD", "testpass")
		os.Setenv("IKADA_DATABASE_DBNAME", "testdb")
		os.Setenv("IKADA_DATABASE_SSLMODE", "require")
		os.Setenv("IKADA_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("IKADA_DATABASE_MAX_IDLE_CONNS", "10")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("IKADA_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("IKADA_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("IKADA_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("production requires a strong jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("IKADA_APP_ENV", "production")
		os.Setenv("IKADA_JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "ikada",
		Password: "p@ss/word",
		DBName:   "ikada",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
