package blade

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the compiler configuration loaded from blade.toml.
type Config struct {
	// ViewsDir is the template root walked by compile and serve.
	ViewsDir string `toml:"views_dir"`
	// CacheDir is where compiled PHP files are written.
	CacheDir string `toml:"cache_dir"`
	// Extensions lists the template file suffixes to pick up.
	Extensions []string `toml:"extensions"`
}

// DefaultConfig returns the configuration used when no blade.toml is
// present.
func DefaultConfig() Config {
	return Config{
		ViewsDir:   "views",
		CacheDir:   DefaultCacheDir(),
		Extensions: slices.Clone(ValidFileExtensions),
	}
}

// LoadConfig reads a blade.toml file. A missing file yields the
// defaults; fields left unset in the file fall back to them too.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	defaults := DefaultConfig()
	if cfg.ViewsDir == "" {
		cfg.ViewsDir = defaults.ViewsDir
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaults.CacheDir
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = defaults.Extensions
	}
	return cfg, nil
}
