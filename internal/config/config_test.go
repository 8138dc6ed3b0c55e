package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, uint64(5), cfg.Database.RetryAttempts)
	assert.Equal(t, 3*time.Second, cfg.Database.RetryDelay)
	assert.Equal(t, 3, cfg.Redis.MaxRetries)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Zero(t, cfg.Auth.JWTTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, time.Hour, cfg.Cache.ProductsTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_RETRY_ATTEMPTS", "10")
	t.Setenv("DB_RETRY_DELAY", "500ms")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CACHE_NAMESPACE", "gateway")
	t.Setenv("JWT_TTL", "24h")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("UPSTREAM_API_BASE_URL", "https://api.example.com")
	t.Setenv("UPSTREAM_API_TOKEN", "upstream-token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, uint64(10), cfg.Database.RetryAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Database.RetryDelay)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, "gateway", cfg.Redis.Namespace)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "https://api.example.com", cfg.Upstream.BaseURL)
	assert.Equal(t, "upstream-token", cfg.Upstream.Token)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsMalformedValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_RETRY_DELAY", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Port: 8080, Auth: Auth{JWTSecret: "s", BcryptCost: 10}}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"port out of range", func(c *Config) { c.Port = 70000 }, true},
		{"bcrypt cost too low", func(c *Config) { c.Auth.BcryptCost = 2 }, true},
		{"negative ttl", func(c *Config) { c.Auth.JWTTTL = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
