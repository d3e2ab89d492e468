package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/academlist/seller-portal/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(config.New())
	require.NoError(t, err)
	assert.Equal(t, config.Config{
		Addr:           ":8080",
		SubmitDelay:    1500 * time.Millisecond,
		SuccessDisplay: 5 * time.Second,
		SessionTTL:     30 * time.Minute,
		LogLevel:       "info",
	}, cfg)
	assert.False(t, cfg.Persistent())
	assert.Equal(t, zapcore.InfoLevel, cfg.Level())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ACADEMLIST_ADDR", "127.0.0.1:9000")
	t.Setenv("ACADEMLIST_DB_PATH", "academlist.db")
	t.Setenv("ACADEMLIST_SUBMIT_DELAY", "250ms")
	t.Setenv("ACADEMLIST_SUCCESS_DISPLAY", "2s")
	t.Setenv("ACADEMLIST_LOG_LEVEL", "debug")
	t.Setenv("ACADEMLIST_DEV", "true")

	cfg, err := config.Load(config.New())
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "academlist.db", cfg.DBPath)
	assert.True(t, cfg.Persistent())
	assert.Equal(t, 250*time.Millisecond, cfg.SubmitDelay)
	assert.Equal(t, 2*time.Second, cfg.SuccessDisplay)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level())
	assert.True(t, cfg.Dev)
}

func TestLoad_ExplicitValueBeatsEnvironment(t *testing.T) {
	t.Setenv("ACADEMLIST_ADDR", ":7000")
	v := config.New()
	v.Set(config.KeyAddr, ":7001")

	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, ":7001", cfg.Addr)
}

func TestValidate(t *testing.T) {
	base := func() config.Config {
		cfg, err := config.Load(config.New())
		require.NoError(t, err)
		return cfg
	}
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty addr", func(c *config.Config) { c.Addr = " " }},
		{"negative delay", func(c *config.Config) { c.SubmitDelay = -time.Second }},
		{"zero success display", func(c *config.Config) { c.SuccessDisplay = 0 }},
		{"zero session ttl", func(c *config.Config) { c.SessionTTL = 0 }},
		{"unknown log level", func(c *config.Config) { c.LogLevel = "chatty" }},
		{"missing font", func(c *config.Config) { c.ReceiptFont = filepath.Join(t.TempDir(), "nope.ttf") }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}

	cfg := base()
	cfg.SubmitDelay = 0
	assert.NoError(t, cfg.Validate())
}
