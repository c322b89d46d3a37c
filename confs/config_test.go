package confs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultValues(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.LogLevel)
	assert.Equal(t, 10, cfg.PasswordCost)
	assert.Equal(t, "0.0.0.0:5555", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "app.db", cfg.Database.SQLitePath)
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Equal(t, 168*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Session.Secure)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.UsesDevSecret())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LOG_LEVEL", "4")
	t.Setenv("PASSWORD_COST", "12")
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_URL", "postgres://u:p@db:5432/recipes")
	t.Setenv("SESSION_SECRET", "s3cr3t")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("SESSION_SECURE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.LogLevel)
	assert.Equal(t, 12, cfg.PasswordCost)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://u:p@db:5432/recipes", cfg.Database.URL)
	assert.Equal(t, "s3cr3t", cfg.Session.Secret)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.Session.Secure)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.UsesDevSecret())
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown driver", key: "DB_DRIVER", val: "mysql"},
		{name: "zero ttl", key: "SESSION_TTL", val: "0s"},
		{name: "cost too low", key: "PASSWORD_COST", val: "2"},
		{name: "bad duration", key: "HTTP_SHUTDOWN_TIMEOUT", val: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, ".env", "HTTP_ADDR=127.0.0.1:9999\n")
	t.Cleanup(func() { unsetenv(t, "HTTP_ADDR") })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.HTTP.Addr)
}
