// Package config loads praweena settings from an optional yaml file, a .env
// file and PRAWEENA_* environment variables, in increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/natefinch/atomic"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. PRAWEENA_DATABASE_URL
const EnvPrefix = "PRAWEENA"

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Auth     AuthConfig     `mapstructure:"auth" yaml:"auth"`
	Line     LineConfig     `mapstructure:"line" yaml:"line"`
	Storage  StorageConfig  `mapstructure:"storage" yaml:"storage"`
	Public   PublicConfig   `mapstructure:"public" yaml:"public"`
	Digest   DigestConfig   `mapstructure:"digest" yaml:"digest"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Theme    Theme          `mapstructure:"theme" yaml:"theme"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite"
	Driver string `mapstructure:"driver" yaml:"driver"`
	URL    string `mapstructure:"url" yaml:"url"`
}

type AuthConfig struct {
	// JWTSecret verifies bearer tokens issued by the backend auth (HS256)
	JWTSecret string `mapstructure:"jwt_secret" yaml:"jwt_secret"`
}

type LineConfig struct {
	PushURL     string `mapstructure:"push_url" yaml:"push_url"`
	AccessToken string `mapstructure:"access_token" yaml:"access_token"`
	DefaultTo   string `mapstructure:"default_to" yaml:"default_to"`
}

type StorageConfig struct {
	BaseURL     string `mapstructure:"base_url" yaml:"base_url"`
	MaxFileSize int64  `mapstructure:"max_file_size" yaml:"max_file_size"`
	Concurrency int    `mapstructure:"concurrency" yaml:"concurrency"`
}

// PublicConfig is exposed to browsers through /env.js; never put secrets here
type PublicConfig struct {
	SupabaseURL     string `mapstructure:"supabase_url" yaml:"supabase_url"`
	SupabaseAnonKey string `mapstructure:"supabase_anon_key" yaml:"supabase_anon_key"`
}

type DigestConfig struct {
	// Schedule is a cron spec evaluated in Asia/Bangkok time
	Schedule string `mapstructure:"schedule" yaml:"schedule"`
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	// File is optional; empty logs to stderr
	File string `mapstructure:"file" yaml:"file"`
}

// Load reads configuration. path may be empty to use the default location;
// a missing file is not an error. A .env file in the working directory is
// loaded first so its values act as environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Theme.ApplyDefaults()
	return cfg, nil
}

// Validate reports settings the server cannot run without
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("database.url is required")
	}
	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("database.driver must be postgres or sqlite, got %q", c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	return nil
}

// DefaultPath returns the path to the config file
func DefaultPath() string {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "praweena", "config.yaml")
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "praweena.yaml"
	}
	return filepath.Join(homeDir, ".config", "praweena", "config.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("line.push_url", "https://api.line.me/v2/bot/message/push")
	v.SetDefault("line.access_token", "")
	v.SetDefault("line.default_to", "")
	v.SetDefault("storage.base_url", "")
	v.SetDefault("storage.max_file_size", 20<<20)
	v.SetDefault("storage.concurrency", 4)
	v.SetDefault("public.supabase_url", "")
	v.SetDefault("public.supabase_anon_key", "")
	v.SetDefault("digest.schedule", "0 18 * * *")
	v.SetDefault("digest.enabled", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("theme.preset", "default")
}

// Save writes the config as yaml, replacing path atomically
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}
