// Package config loads colliderrc.toml, the user-level configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/zkat/electron-collider/internal/messages"
	"github.com/zkat/electron-collider/internal/version"
)

// Config is the colliderrc.toml schema. CLI flags override these values.
type Config struct {
	GitHubToken string   `toml:"github-token"`
	CacheDir    string   `toml:"cache-dir"`
	Electron    Electron `toml:"electron"`
}

// Electron holds acquisition defaults.
type Electron struct {
	Using             string `toml:"using"`
	IncludePrerelease bool   `toml:"include-prerelease"`
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigResolveUserConfigFmt, err)
	}
	return filepath.Join(base, "collider", "colliderrc.toml"), nil
}

// Validate checks field values that TOML decoding cannot.
func (c *Config) Validate(source string) error {
	if c.Electron.Using != "" {
		if _, err := version.ParseRange(c.Electron.Using); err != nil {
			return fmt.Errorf(messages.ConfigInvalidRangeFmt, source, c.Electron.Using, err)
		}
	}
	return nil
}

// ResolvedCacheDir expands a leading ~ in cache-dir. Empty when unset.
func (c *Config) ResolvedCacheDir() (string, error) {
	if c.CacheDir == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(c.CacheDir)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandCacheDirFmt, c.CacheDir, err)
	}
	return expanded, nil
}
