package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "STORE_DRIVER", "MONGO_URI", "MONGO_DATABASE", "DATABASE_URL", "REDIS_ADDR",
	"TRUST_PROXY",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "BAN_STRIKES", "BAN_DURATION", "SHUTDOWN_TIMEOUT",
	"WEB_PORT", "API_URL", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	c, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 5000, c.Port)
	assert.Equal(t, ":5000", c.HTTPAddr())
	assert.Equal(t, "mongo", c.StoreDriver)
	assert.Equal(t, "mongodb://localhost:27017", c.MongoURI)
	assert.Equal(t, "catalog", c.MongoDatabase)
	assert.Empty(t, c.RedisAddr)
	assert.False(t, c.TrustProxy)
	assert.Equal(t, 10.0, c.RateLimitRPS)
	assert.Equal(t, 20, c.RateLimitBurst)
	assert.Equal(t, 5, c.BanStrikes)
	assert.Equal(t, 15*time.Minute, c.BanDuration)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	assert.Equal(t, ":3000", c.WebAddr())
	assert.Equal(t, "http://localhost:5000/api", c.APIURL)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/catalog?sslmode=disable")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("BAN_DURATION", "1h")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TRUST_PROXY", "true")

	c, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.True(t, c.TrustProxy)

	assert.Equal(t, ":9090", c.HTTPAddr())
	assert.Equal(t, "postgres", c.StoreDriver)
	assert.Equal(t, "postgres://u:p@localhost:5432/catalog?sslmode=disable", c.DatabaseURL)
	assert.Equal(t, "localhost:6379", c.RedisAddr)
	assert.Equal(t, 2.5, c.RateLimitRPS)
	assert.Equal(t, time.Hour, c.BanDuration)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown driver", env: map[string]string{"STORE_DRIVER": "sqlite"}},
		{name: "postgres without dsn", env: map[string]string{"STORE_DRIVER": "postgres"}},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "zero burst", env: map[string]string{"RATE_LIMIT_BURST": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFrom(viper.New())
			assert.Error(t, err)
		})
	}
}

func TestLoadReadsConfigYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	yaml := "PORT: 8081\nSTORE_DRIVER: memory\nLOG_LEVEL: warn\nBAN_DURATION: 30m\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("LOG_LEVEL", "error")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8081", c.HTTPAddr())
	assert.Equal(t, "memory", c.StoreDriver)
	assert.Equal(t, 30*time.Minute, c.BanDuration)
	assert.Equal(t, "error", c.LogLevel, "environment overrides the file")
}

func TestLoadReadsDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=7070\nWEB_PORT=7071\n"), 0o600))

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", c.HTTPAddr())
	assert.Equal(t, ":7071", c.WebAddr())
}

func TestLoadWithoutConfigFile(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":5000", c.HTTPAddr())
}

func TestLoadRejectsMalformedConfigYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("PORT: [unterminated\n"), 0o600))

	_, err := Load()
	assert.Error(t, err)
}
