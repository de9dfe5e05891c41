package namespace

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is an xlg.toml codebase-root config: author identity, where the
// store's durable state lives on disk, and the default branch namespace
// (SPEC_FULL.md's ambient-stack note, grounded on
// pkg/dang/project.go's ProjectConfig).
type Config struct {
	Author        string `toml:"author"`
	StoreRoot     string `toml:"store_root"`
	DefaultBranch string `toml:"default_branch"`
}

// LoadConfig loads an xlg.toml file from path.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindConfig searches for xlg.toml starting at dir and walking up to
// parent directories, stopping at a .git boundary (pkg/dang/project.go's
// FindProjectConfig, generalized from "dang.toml" to "xlg.toml"). It
// returns ("", nil, nil) if none is found before the boundary.
func FindConfig(dir string) (string, *Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, "xlg.toml")
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadConfig(path)
			if err != nil {
				return "", nil, err
			}
			return path, cfg, nil
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}
