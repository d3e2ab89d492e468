// Package config resolves server settings from flags, ACADEMLIST_* environment
// variables and defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/academlist/seller-portal/internal/domain"
	"github.com/academlist/seller-portal/internal/session"
)

// EnvPrefix namespaces environment overrides, e.g. ACADEMLIST_DB_PATH.
const EnvPrefix = "ACADEMLIST"

// Keys, shared by flags and environment variables.
const (
	KeyAddr           = "addr"
	KeyDBPath         = "db_path"
	KeySubmitDelay    = "submit_delay"
	KeySuccessDisplay = "success_display"
	KeySessionTTL     = "session_ttl"
	KeyReceiptFont    = "receipt_font"
	KeyLogLevel       = "log_level"
	KeyDev            = "dev"
)

// ErrInvalid wraps every validation failure from Load.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Addr string `mapstructure:"addr"`
	// DBPath enables the submission ledger and receipts when non-empty.
	DBPath         string        `mapstructure:"db_path"`
	SubmitDelay    time.Duration `mapstructure:"submit_delay"`
	SuccessDisplay time.Duration `mapstructure:"success_display"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	// ReceiptFont is a TTF used for Hebrew text in receipts. Without it the
	// receipt falls back to a core font.
	ReceiptFont string `mapstructure:"receipt_font"`
	LogLevel    string `mapstructure:"log_level"`
	Dev         bool   `mapstructure:"dev"`
}

// New returns a viper instance with defaults set and the environment bound.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyDBPath, "")
	v.SetDefault(KeySubmitDelay, domain.DefaultSubmitDelay)
	v.SetDefault(KeySuccessDisplay, domain.DefaultSuccessDisplay)
	v.SetDefault(KeySessionTTL, session.DefaultTTL)
	v.SetDefault(KeyReceiptFont, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyDev, false)
	return v
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalid, KeyAddr)
	}
	if c.SubmitDelay < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalid, KeySubmitDelay)
	}
	if c.SuccessDisplay <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalid, KeySuccessDisplay)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalid, KeySessionTTL)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, KeyLogLevel, err)
	}
	if c.ReceiptFont != "" {
		if _, err := os.Stat(c.ReceiptFont); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, KeyReceiptFont, err)
		}
	}
	return nil
}

// Level is the parsed log level; Validate has already vetted it.
func (c Config) Level() zapcore.Level {
	l, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// Persistent reports whether submissions are recorded.
func (c Config) Persistent() bool {
	return c.DBPath != ""
}
