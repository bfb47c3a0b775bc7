// Package config loads tasklist settings.
//
// Precedence (highest to lowest):
//  1. TASKLIST_* environment variables (TASKLIST_STORE_BACKEND -> store.backend)
//  2. YAML config file passed with --config
//  3. Defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix      = "TASKLIST_"
	DefaultSlotKey = "todo-local-cache"

	maxConfigFileSize = 1024 * 1024
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Store StoreConfig `koanf:"store"`
	IDs   IDConfig    `koanf:"ids"`
	Log   LogConfig   `koanf:"log"`
	UI    UIConfig    `koanf:"ui"`
}

type StoreConfig struct {
	Backend string `koanf:"backend"`
	Path    string `koanf:"path"`
	Slot    string `koanf:"slot"`
}

type IDConfig struct {
	Strategy string `koanf:"strategy"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

type UIConfig struct {
	ConfirmClear bool `koanf:"confirm_clear"`
	CharLimit    int  `koanf:"char_limit"`
}

func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend: "sqlite",
			Path:    defaultDataPath("tasklist.db"),
			Slot:    DefaultSlotKey,
		},
		IDs: IDConfig{Strategy: "numeric"},
		Log: LogConfig{Level: "info", Format: "json"},
		UI:  UIConfig{ConfirmClear: true, CharLimit: 256},
	}
}

func defaultDataPath(name string) string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "tasklist", name)
	}
	return name
}

// Load reads configPath (optional) and the environment on top of Default().
func Load(configPath string) (Config, error) {
	k := koanf.New(".")

	if strings.TrimSpace(configPath) != "" {
		info, err := os.Stat(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("stat config file: %w", err)
		}
		if info.Size() > maxConfigFileSize {
			return Config{}, fmt.Errorf("%w: config file exceeds %d bytes", ErrInvalid, maxConfigFileSize)
		}
		content, err := os.ReadFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKey maps TASKLIST_STORE_BACKEND to store.backend; only the first
// underscore after the prefix separates section from field.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

func (c *Config) normalize() {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	c.Store.Path = strings.TrimSpace(c.Store.Path)
	c.Store.Slot = strings.TrimSpace(c.Store.Slot)
	c.IDs.Strategy = strings.ToLower(strings.TrimSpace(c.IDs.Strategy))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Store.Slot == "" {
		c.Store.Slot = DefaultSlotKey
	}
	if c.UI.CharLimit <= 0 {
		c.UI.CharLimit = Default().UI.CharLimit
	}
}

func (c Config) Validate() error {
	switch c.Store.Backend {
	case "sqlite", "file":
		if c.Store.Path == "" {
			return fmt.Errorf("%w: store.path is required for backend %q", ErrInvalid, c.Store.Backend)
		}
	case "memory":
	default:
		return fmt.Errorf("%w: unknown store.backend %q", ErrInvalid, c.Store.Backend)
	}
	switch c.IDs.Strategy {
	case "numeric", "uuid":
	default:
		return fmt.Errorf("%w: unknown ids.strategy %q", ErrInvalid, c.IDs.Strategy)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: unknown log.format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}
