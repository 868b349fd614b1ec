// Package config loads optional project configuration from a
// `pygframe.toml` file. File values supply defaults; command-line
// flags override them.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/fabianreyesmn/pygframe/internal/context"
)

// DefaultFileName is looked for in the working directory when no
// explicit --config path is given.
const DefaultFileName = "pygframe.toml"

// Config mirrors the TOML file layout.
type Config struct {
	Debug    bool           `toml:"debug"`
	Run      bool           `toml:"run"`
	Analysis AnalysisConfig `toml:"analysis"`
	Output   OutputConfig   `toml:"output"`
}

// AnalysisConfig controls the semantic phases.
type AnalysisConfig struct {
	WarnConditions bool `toml:"warn-conditions"`
}

// OutputConfig controls what the run writes besides diagnostics.
type OutputConfig struct {
	EmitTAC bool   `toml:"emit-tac"`
	TACFile string `toml:"tac-file"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{WarnConditions: true},
	}
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open config file %s: %w", path, err)
	}
	defer f.Close()

	buff, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(buff, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path when it exists and silently falls back to
// the defaults when it does not. A present-but-broken file is still
// an error.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Options converts the file configuration into compiler options.
func (c *Config) Options() *context.CompilerOptions {
	return &context.CompilerOptions{
		Debug:          c.Debug,
		Run:            c.Run,
		EmitTAC:        c.Output.EmitTAC,
		TACFile:        c.Output.TACFile,
		WarnConditions: c.Analysis.WarnConditions,
	}
}
