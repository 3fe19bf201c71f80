package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DATABASE", "shop.db")
	t.Setenv("ACCESS_TOKEN_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, 10, cfg.DBConnectionLimit)
	assert.Equal(t, time.Minute, cfg.AccessTokenTTL)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.IsMongo())
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("DB_DATABASE", "shop.db")
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "ACCESS_TOKEN_SECRET")
}

func TestLoadRequiresDatabase(t *testing.T) {
	t.Setenv("DB_DATABASE", "")
	t.Setenv("DB_CONNECTION_STRING", "")
	t.Setenv("ACCESS_TOKEN_SECRET", "secret")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_DATABASE")

	t.Setenv("DB_CONNECTION_STRING", "mongodb://localhost:27017/shop")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DATABASE", "shop")
	t.Setenv("ACCESS_TOKEN_SECRET", "secret")
	t.Setenv("DB_TYPE", "Postgres")
	t.Setenv("APP_ENV", "production")
	t.Setenv("ACCESS_TOKEN_TTL", "90")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBType)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 90*time.Second, cfg.AccessTokenTTL)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TTL_TEST", "2m")
	assert.Equal(t, 2*time.Minute, getEnvAsDuration("TTL_TEST", time.Second))

	t.Setenv("TTL_TEST", "garbage")
	assert.Equal(t, time.Second, getEnvAsDuration("TTL_TEST", time.Second))
}
