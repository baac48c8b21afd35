package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := newViper()
	v.Set("SALESDRIVE_API_KEY", " key ")
	v.Set("SALESDRIVE_DOMAIN", "shop")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "key", cfg.SalesDrive.APIKey)
	assert.Equal(t, "shop", cfg.SalesDrive.Domain)
	assert.Equal(t, 30*time.Second, cfg.SalesDrive.Timeout)
	assert.Equal(t, 3, cfg.SalesDrive.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.SalesDrive.RetryDelay)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.Webhook.DedupTTL)
	assert.Equal(t, 50, cfg.Webhook.BatchSize)
	assert.False(t, cfg.IsProduction())
}

func TestFromViperEnv(t *testing.T) {
	t.Setenv("SALESDRIVE_API_KEY", "env-key")
	t.Setenv("SALESDRIVE_BASE_URL", "http://localhost:9000")
	t.Setenv("SALESDRIVE_TIMEOUT", "5s")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := FromViper(newViper())
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.SalesDrive.APIKey)
	assert.Equal(t, "http://localhost:9000", cfg.SalesDrive.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.SalesDrive.Timeout)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.True(t, cfg.IsProduction())
}

func TestFromViperInvalid(t *testing.T) {
	tests := []struct {
		name string
		set  map[string]any
		want string
	}{
		{name: "missing key", set: map[string]any{"SALESDRIVE_DOMAIN": "shop"}, want: "APIKey"},
		{name: "missing domain and base url", set: map[string]any{"SALESDRIVE_API_KEY": "k"}, want: "Domain"},
		{name: "relative base url", set: map[string]any{"SALESDRIVE_API_KEY": "k", "SALESDRIVE_BASE_URL": "/api"}, want: "BaseURL"},
		{name: "bad port", set: map[string]any{"SALESDRIVE_API_KEY": "k", "SALESDRIVE_DOMAIN": "shop", "APP_PORT": "http"}, want: "Port"},
		{name: "bad log level", set: map[string]any{"SALESDRIVE_API_KEY": "k", "SALESDRIVE_DOMAIN": "shop", "LOG_LEVEL": "loud"}, want: "LogLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			for k, val := range tt.set {
				v.Set(k, val)
			}
			_, err := FromViper(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
