// Package config resolves the renutil environment: where the instance cache
// lives and where SDK releases are downloaded from. The environment is an
// explicit value passed into every component constructor so tests can point
// it at a temporary directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the Ren'Py download index.
const DefaultBaseURL = "https://www.renpy.org/dl/"

// RegistryFileName is the registry document directly under the cache root.
const RegistryFileName = "index.json"

// Environment describes where renutil keeps its state.
type Environment struct {
	// CacheRoot is the per-user directory holding the registry file and all
	// instance folders.
	CacheRoot string
	// BaseURL is the release download index, with a trailing slash.
	BaseURL string
}

// RegistryPath returns the path of the registry file under the cache root.
func (e Environment) RegistryPath() string {
	return filepath.Join(e.CacheRoot, RegistryFileName)
}

// fileConfig is the optional on-disk configuration.
type fileConfig struct {
	CacheRoot string `yaml:"cache_root"`
	BaseURL   string `yaml:"base_url"`
}

// Load resolves the environment. Precedence, lowest to highest: built-in
// defaults, ~/.config/renutil/config.yaml, $RENUTIL_CACHE, the cacheRoot
// argument (typically the --cache-root flag; empty means unset).
func Load(cacheRoot string) (Environment, error) {
	env := Environment{BaseURL: DefaultBaseURL}

	// The home directory only matters for the defaults it anchors; an
	// explicit cache root must keep working without one.
	home, homeErr := os.UserHomeDir()
	if homeErr == nil {
		env.CacheRoot = filepath.Join(home, ".renutil")
		if err := loadFile(filepath.Join(home, ".config", "renutil", "config.yaml"), &env); err != nil {
			return Environment{}, err
		}
	}

	if v := os.Getenv("RENUTIL_CACHE"); v != "" {
		env.CacheRoot = v
	}
	if cacheRoot != "" {
		env.CacheRoot = cacheRoot
	}

	if env.CacheRoot == "" {
		return Environment{}, fmt.Errorf("failed to determine home directory: %w", homeErr)
	}
	return env, nil
}

// loadFile overlays settings from a config file onto env. A missing file is
// not an error.
func loadFile(path string, env *Environment) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.CacheRoot != "" {
		env.CacheRoot = cfg.CacheRoot
	}
	if cfg.BaseURL != "" {
		env.BaseURL = cfg.BaseURL
	}

	return nil
}
