package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 480, cfg.JWT.Expiration)
	assert.Equal(t, 30, cfg.Forecast.DefaultWindow)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.DB.SlowQuery)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("FORECAST_DEFAULT_WINDOW", "14")
	t.Setenv("DB_SLOW_QUERY", "2s")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 14, cfg.Forecast.DefaultWindow)
	assert.Equal(t, 2*time.Second, cfg.DB.SlowQuery)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestLoad_RejectsDefaultWindowOutOfRange(t *testing.T) {
	t.Setenv("FORECAST_DEFAULT_WINDOW", "400")
	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "ledger", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/ledger?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestLoad_BootstrapAdminNeedsPassword(t *testing.T) {
	t.Setenv("BOOTSTRAP_ADMIN_EMAIL", "admin@example.com")
	t.Setenv("BOOTSTRAP_ADMIN_PASSWORD", "corta")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("BOOTSTRAP_ADMIN_PASSWORD", "suficiente")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", cfg.Bootstrap.AdminEmail)
}
