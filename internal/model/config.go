package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Storage backend names.
const (
	BackendSQLite  = "sqlite"
	BackendKeyring = "keyring"
	BackendRedis   = "redis"
)

// StorageConfig selects and configures the key-value backend the stores
// persist to.
type StorageConfig struct {
	// Backend is one of "sqlite", "keyring" or "redis".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the SQLite database file.
	Path string `mapstructure:"path" yaml:"path"`

	// KeyringDir holds the encrypted files of the keyring file backend.
	KeyringDir string `mapstructure:"keyring_dir" yaml:"keyring_dir"`

	RedisAddr   string `mapstructure:"redis_addr" yaml:"redis_addr"`
	RedisPrefix string `mapstructure:"redis_prefix" yaml:"redis_prefix"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Mode is "dev" or "prod".
	Mode  string `mapstructure:"mode" yaml:"mode"`
	Level string `mapstructure:"level" yaml:"level"`
}

// GamificationConfig holds progression tuning.
type GamificationConfig struct {
	XPPerLevel int `mapstructure:"xp_per_level" yaml:"xp_per_level"`
}

// RemindersConfig holds wellness reminder settings.
type RemindersConfig struct {
	IntervalMin int `mapstructure:"interval_min" yaml:"interval_min"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage      StorageConfig      `mapstructure:"storage" yaml:"storage"`
	Log          LogConfig          `mapstructure:"log" yaml:"log"`
	Gamification GamificationConfig `mapstructure:"gamification" yaml:"gamification"`
	Reminders    RemindersConfig    `mapstructure:"reminders" yaml:"reminders"`
}

// envPrefix scopes environment overrides, e.g. WORKSPACE_STORAGE_BACKEND.
const envPrefix = "WORKSPACE"

// homeDir returns the user's home directory, or "." when it is unknown.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/humanai/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(homeDir(), ".config", "humanai", "config.yaml")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	home := homeDir()
	return &AppConfig{
		Storage: StorageConfig{
			Backend:     BackendSQLite,
			Path:        filepath.Join(home, ".humanai", "workspace.db"),
			KeyringDir:  filepath.Join(home, ".config", "humanai", "keyring"),
			RedisPrefix: "humanai:",
		},
		Log: LogConfig{
			Mode:  "dev",
			Level: "info",
		},
		Gamification: GamificationConfig{
			XPPerLevel: DefaultXPPerLevel,
		},
		Reminders: RemindersConfig{
			IntervalMin: 120,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultAppConfig()
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.keyring_dir", d.Storage.KeyringDir)
	v.SetDefault("storage.redis_addr", d.Storage.RedisAddr)
	v.SetDefault("storage.redis_prefix", d.Storage.RedisPrefix)
	v.SetDefault("log.mode", d.Log.Mode)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("gamification.xp_per_level", d.Gamification.XPPerLevel)
	v.SetDefault("reminders.interval_min", d.Reminders.IntervalMin)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, defaults are used. Environment variables with
// the WORKSPACE_ prefix override file values in both cases.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if cfg.Gamification.XPPerLevel <= 0 {
		cfg.Gamification.XPPerLevel = DefaultXPPerLevel
	}
	if cfg.Reminders.IntervalMin <= 0 {
		cfg.Reminders.IntervalMin = 120
	}

	return cfg, nil
}

// Validate checks the fields that cannot fall back to a default.
func (c *AppConfig) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path must not be empty for the sqlite backend")
		}
	case BackendKeyring:
	case BackendRedis:
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("storage.redis_addr must not be empty for the redis backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", map[string]any{
		"backend":      cfg.Storage.Backend,
		"path":         cfg.Storage.Path,
		"keyring_dir":  cfg.Storage.KeyringDir,
		"redis_addr":   cfg.Storage.RedisAddr,
		"redis_prefix": cfg.Storage.RedisPrefix,
	})
	v.Set("log", map[string]any{
		"mode":  cfg.Log.Mode,
		"level": cfg.Log.Level,
	})
	v.Set("gamification", map[string]any{
		"xp_per_level": cfg.Gamification.XPPerLevel,
	})
	v.Set("reminders", map[string]any{
		"interval_min": cfg.Reminders.IntervalMin,
	})

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
