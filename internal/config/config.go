package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// FileName is the name of the configuration file looked up next to a script
const FileName = "tlox.toml"

// Config tlox configuration
type Config struct {
	Interpreter InterpreterConfig `toml:"interpreter"`
	Log         LogConfig         `toml:"log"`
	Output      OutputConfig      `toml:"output"`
}

// InterpreterConfig evaluator settings
type InterpreterConfig struct {
	MaxCallDepth int  `toml:"max_call_depth"` // 0 disables the limit
	Resolve      bool `toml:"resolve"`        // static resolution pass, off by default
}

// LogConfig logging settings
type LogConfig struct {
	Level string `toml:"level"` // any level accepted by logrus.ParseLevel
}

// OutputConfig terminal settings
type OutputConfig struct {
	Color *bool `toml:"color"` // colored diagnostics, on when unset
}

// DefaultConfig returns the configuration used when no file is found
func DefaultConfig() *Config {
	return &Config{
		Interpreter: InterpreterConfig{
			MaxCallDepth: 10000,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// FindAndLoad looks for tlox.toml from startDir upwards and loads it.
// It returns the defaults and an empty path when there is none.
func FindAndLoad(startDir string) (*Config, string, error) {
	configPath := FindConfigFile(startDir)
	if configPath == "" {
		return DefaultConfig(), "", nil
	}

	config, err := Load(configPath)
	if err != nil {
		return nil, "", err
	}

	return config, configPath, nil
}

// FindConfigFile looks for tlox.toml from startDir upwards
func FindConfigFile(startDir string) string {
	dir := startDir

	for {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Load decodes a configuration file over the defaults
func Load(path string) (*Config, error) {
	config := DefaultConfig()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	if config.Interpreter.MaxCallDepth < 0 {
		return nil, fmt.Errorf("loading %s: max_call_depth must not be negative", path)
	}
	if _, err := config.LogLevel(); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	return config, nil
}

// LogLevel parses the configured log level
func (c *Config) LogLevel() (logrus.Level, error) {
	if c.Log.Level == "" {
		return logrus.WarnLevel, nil
	}
	return logrus.ParseLevel(c.Log.Level)
}

// ResolveEnabled reports whether the static resolution pass should run
func (c *Config) ResolveEnabled() bool {
	return c.Interpreter.Resolve
}

// ColorEnabled reports whether diagnostics should be colored
func (c *Config) ColorEnabled() bool {
	return c.Output.Color == nil || *c.Output.Color
}
