// Package config loads the bridge configuration from YAML, writing a
// commented starter file on first run and overlaying environment variables
// on top of whatever the file declares.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"

	"github.com/auraos/aibridge/assets"
	"github.com/auraos/aibridge/internal/domain"
	"github.com/auraos/aibridge/internal/ports"
)

// FileLoader loads YAML configuration from ~/.aibridge/config.yaml
// (overridable via AIBRIDGE_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// envOverrides are the environment knobs applied after the file is read.
// They exist so deployments can flip providers or disable the cache without
// editing the config file.
type envOverrides struct {
	DefaultProvider  string `env:"AIBRIDGE_DEFAULT_PROVIDER"`
	FallbackProvider string `env:"AIBRIDGE_FALLBACK_PROVIDER"`
	CacheDisabled    bool   `env:"AIBRIDGE_CACHE_DISABLED"`
	HistoryDisabled  bool   `env:"AIBRIDGE_HISTORY_DISABLED"`
	HistoryPath      string `env:"AIBRIDGE_HISTORY_PATH"`
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := os.WriteFile(path, assets.DefaultConfigYAML, 0o600); err != nil {
				return domain.Config{}, err
			}
			data = assets.DefaultConfigYAML
		} else {
			return domain.Config{}, err
		}
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return applyEnv(hydrateDefaults(cfg))
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("AIBRIDGE_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".aibridge", "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.DefaultProvider == "" && len(cfg.Providers) > 0 {
		cfg.DefaultProvider = cfg.Providers[0].Name
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 3600
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = 1000
	}
	if cfg.Cache.EvictionBatch == 0 {
		cfg.Cache.EvictionBatch = 100
	}
	if cfg.Engine.EarlyExitConfidence == 0 {
		cfg.Engine.EarlyExitConfidence = 0.8
	}
	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(userHomeDir(), ".aibridge", "history", "history.db")
	}
	return cfg
}

func applyEnv(cfg domain.Config) (domain.Config, error) {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return domain.Config{}, err
	}
	if overrides.DefaultProvider != "" {
		cfg.DefaultProvider = overrides.DefaultProvider
	}
	if overrides.FallbackProvider != "" {
		cfg.FallbackProvider = overrides.FallbackProvider
	}
	if overrides.CacheDisabled {
		cfg.Cache.Enabled = false
	}
	if overrides.HistoryDisabled {
		cfg.History.Enabled = false
	}
	if overrides.HistoryPath != "" {
		cfg.History.Path = expandPath(overrides.HistoryPath)
	}
	return cfg, nil
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
