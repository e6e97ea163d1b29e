// Package config holds the derive settings read from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultFile is looked up in the working directory and then in the user
// configuration directory when no file is given.
const DefaultFile = "derive.toml"

type Config struct {
	Engine EngineConfig `toml:"engine"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

type EngineConfig struct {
	// MaxDerivations caps the derivations one search may hold, 0 for no cap.
	MaxDerivations int  `toml:"max_derivations"`
	Workers        int  `toml:"workers"`
	Prune          bool `toml:"prune"`
	// BoundFactor multiplies the word length to get the number of rewrite
	// passes. 0 keeps the default of 2n-1.
	BoundFactor int `toml:"bound_factor"`
}

type OutputConfig struct {
	Format string `toml:"format"`
	Color  bool   `toml:"color"`
}

type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			MaxDerivations: 1 << 20,
			Workers:        1,
		},
		Output: OutputConfig{
			Format: "tree",
		},
	}
}

// Load reads the file at path over the defaults. An empty path searches
// for DefaultFile and returns the defaults if there is none.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = find()
		if path == "" {
			return cfg, nil
		}
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config %s: unknown key %s", path, undecoded[0])
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot use.
func (c Config) Validate() error {
	if c.Engine.MaxDerivations < 0 {
		return errors.New("engine.max_derivations must not be negative")
	}
	if c.Engine.Workers < 1 {
		return errors.New("engine.workers must be at least 1")
	}
	if c.Engine.BoundFactor < 0 {
		return errors.New("engine.bound_factor must not be negative")
	}
	switch c.Output.Format {
	case "tree", "json", "bracket":
	default:
		return fmt.Errorf("output.format %q is not one of tree, json, bracket", c.Output.Format)
	}
	return nil
}

func find() string {
	candidates := []string{DefaultFile}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "derive", DefaultFile))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		} else if !errors.Is(err, fs.ErrNotExist) {
			return path
		}
	}
	return ""
}
