// Package config loads server settings from config.yaml and GYM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// EnvPrefix is prepended to every environment override, e.g. GYM_ADDR.
const EnvPrefix = "GYM"

// Config holds all configuration values.
type Config struct {
	Addr   string `mapstructure:"addr"`
	Env    string `mapstructure:"env"`
	DBPath string `mapstructure:"db_path"`

	CSRFKey string `mapstructure:"csrf_key"` // 32 bytes; random per process when empty

	// Email
	ResendKey  string `mapstructure:"resend_key"`
	EmailFrom  string `mapstructure:"email_from"`
	ReplyTo    string `mapstructure:"reply_to"`
	EnquiryTo  string `mapstructure:"enquiry_to"`
	GymName    string `mapstructure:"gym_name"`
	PublicURL  string `mapstructure:"public_url"`
	StaticDir  string `mapstructure:"static_dir"`
	ContentDir string `mapstructure:"content_dir"` // overrides the embedded training pages
	AdminEmail string `mapstructure:"admin_email"`
	AdminPass  string `mapstructure:"admin_password"`

	// Locale
	Timezone    string `mapstructure:"timezone"`
	DefaultLang string `mapstructure:"default_lang"`

	// Booking rules
	CancelCutoff     time.Duration `mapstructure:"cancel_cutoff"`
	ReminderInterval time.Duration `mapstructure:"reminder_interval"`
	ReminderWindow   time.Duration `mapstructure:"reminder_window"`

	// Rate limiting
	RateLimitPerMin int `mapstructure:"rate_limit_per_min"`
	RateBurst       int `mapstructure:"rate_burst"`

	// Observability
	LogLevel     string        `mapstructure:"log_level"`
	SlowRequest  time.Duration `mapstructure:"slow_request"`
	SlowQuery    time.Duration `mapstructure:"slow_query"`
	PerfRingSize int           `mapstructure:"perf_ring_size"`
}

var defaults = map[string]any{
	"addr":               ":8080",
	"env":                "development",
	"db_path":            "gym.db",
	"csrf_key":           "",
	"resend_key":         "",
	"email_from":         "Gym <noreply@gym.example>",
	"reply_to":           "info@gym.example",
	"enquiry_to":         "pt@gym.example",
	"gym_name":           "Gym",
	"public_url":         "http://localhost:8080",
	"static_dir":         "static",
	"content_dir":        "",
	"admin_email":        "admin@gym.example",
	"admin_password":     "change me please",
	"timezone":           "Europe/Rome",
	"default_lang":       "en",
	"cancel_cutoff":      "2h",
	"reminder_interval":  "15m",
	"reminder_window":    "24h",
	"rate_limit_per_min": 120,
	"rate_burst":         30,
	"log_level":          "info",
	"slow_request":       "500ms",
	"slow_query":         "100ms",
	"perf_ring_size":     1000,
}

// Load reads config.yaml from the working directory or ./config when present,
// then applies GYM_* environment overrides on top of the defaults.
// POST: returned Config has passed Validate
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	return load(v)
}

// LoadFile reads settings from an explicit file path.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		log.Println("No config file found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	if _, err := language.Parse(c.DefaultLang); err != nil {
		return fmt.Errorf("default_lang %q: %w", c.DefaultLang, err)
	}
	if c.CSRFKey != "" && len(c.CSRFKey) != 32 {
		return errors.New("csrf_key must be exactly 32 bytes")
	}
	if c.CancelCutoff < 0 {
		return errors.New("cancel_cutoff cannot be negative")
	}
	if c.ReminderInterval <= 0 {
		return errors.New("reminder_interval must be positive")
	}
	if c.RateLimitPerMin <= 0 || c.RateBurst <= 0 {
		return errors.New("rate limits must be positive")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Location returns the gym's timezone.
// PRE: Validate passed
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Language returns the fallback page language.
func (c Config) Language() language.Tag {
	tag, err := language.Parse(c.DefaultLang)
	if err != nil {
		return language.English
	}
	return tag
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
