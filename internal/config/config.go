// Package config loads user settings from TOML files.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "familles"

type Config struct {
	AssetsDir   string   `koanf:"assets_dir"`   // directory the clip paths are relative to
	CatalogFile string   `koanf:"catalog_file"` // YAML catalog replacing the built-in one
	Families    []string `koanf:"families"`     // families preselected on the selection screen
	LogFile     string   `koanf:"log_file"`
	Icons       string   `koanf:"icons"` // "nerd", "unicode" or "none" (default)

	MPRIS         *bool `koanf:"mpris"`         // media key support (default: true)
	Notifications *bool `koanf:"notifications"` // desktop notification at game end (default: true)

	Timer TimerConfig `koanf:"timer"`
	Audio AudioConfig `koanf:"audio"`
}

// TimerConfig holds the delay between two items, in seconds.
type TimerConfig struct {
	Default int `koanf:"default"` // default: 20
	Min     int `koanf:"min"`     // default: 3
	Max     int `koanf:"max"`     // default: 60
}

// AudioConfig holds sound output settings.
type AudioConfig struct {
	Enabled      *bool    `koanf:"enabled"`        // default: true; false plays silently
	Volume       *float64 `koanf:"volume"`         // 0.0-1.0 (default: 1.0)
	SilentClipMS int      `koanf:"silent_clip_ms"` // length of a clip without sound (default: 1500)
}

// Load reads the user config file then ./config.toml, the latter winning.
func Load() (*Config, error) {
	return LoadFrom(DefaultPaths()...)
}

// LoadFrom reads the given TOML files in order, later files overriding
// earlier ones. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.AssetsDir = expandPath(cfg.AssetsDir)
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = "assets"
	}
	cfg.CatalogFile = expandPath(cfg.CatalogFile)
	cfg.LogFile = expandPath(cfg.LogFile)

	return cfg, nil
}

// DefaultPaths returns the config files read by Load, lowest priority first.
func DefaultPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/familles/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// DefaultLogFile returns the log path used when log_file is unset.
func DefaultLogFile() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

// GetLogFile returns the configured log path or the default one.
func (c *Config) GetLogFile() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return DefaultLogFile()
}

// MPRISEnabled returns true unless media keys are disabled.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

// NotificationsEnabled returns true unless notifications are disabled.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// GetTimerConfig returns the timer configuration with defaults applied.
// Out-of-range values are fixed rather than rejected.
func (c *Config) GetTimerConfig() TimerConfig {
	cfg := c.Timer

	if cfg.Min <= 0 {
		cfg.Min = 3
	}
	if cfg.Max <= 0 {
		cfg.Max = 60
	}
	if cfg.Max < cfg.Min {
		cfg.Min, cfg.Max = 3, 60
	}
	if cfg.Default == 0 {
		cfg.Default = 20
	}
	cfg.Default = min(max(cfg.Default, cfg.Min), cfg.Max)

	return cfg
}

// Durations returns the default, minimum and maximum delays.
func (t TimerConfig) Durations() (def, lo, hi time.Duration) {
	return time.Duration(t.Default) * time.Second,
		time.Duration(t.Min) * time.Second,
		time.Duration(t.Max) * time.Second
}

// GetAudioConfig returns the audio configuration with defaults applied.
func (c *Config) GetAudioConfig() AudioConfig {
	cfg := c.Audio

	if cfg.Enabled == nil {
		enabled := true
		cfg.Enabled = &enabled
	}
	volume := 1.0
	if cfg.Volume != nil {
		volume = min(max(*cfg.Volume, 0), 1)
	}
	cfg.Volume = &volume
	if cfg.SilentClipMS <= 0 {
		cfg.SilentClipMS = 1500
	}

	return cfg
}

// SilentClip returns the length of a clip played without sound.
func (a AudioConfig) SilentClip() time.Duration {
	return time.Duration(a.SilentClipMS) * time.Millisecond
}
