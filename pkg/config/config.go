// Package config loads the YAML configuration of the datum runner.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the runner configuration. Missing fields keep their defaults.
type Config struct {
	Eval   EvalConfig   `yaml:"eval"`
	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
	Mesh   MeshConfig   `yaml:"mesh"`
}

type EvalConfig struct {
	// Timeout is the hard limit for a single script evaluation.
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type OutputConfig struct {
	// Precision is the number of decimals printed for coordinates.
	Precision int `yaml:"precision"`
}

type MeshConfig struct {
	// Cells is the marching cubes resolution along the longest side of a
	// solid's bounding box.
	Cells int `yaml:"cells"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Eval:   EvalConfig{Timeout: 5 * time.Second},
		Log:    LogConfig{Level: "info"},
		Output: OutputConfig{Precision: 6},
		Mesh:   MeshConfig{Cells: 200},
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	c, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// LoadYAML decodes YAML from r over the defaults and validates the result.
// An empty document yields the defaults.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.Eval.Timeout <= 0 {
		return fmt.Errorf("eval.timeout must be positive, got %s", c.Eval.Timeout)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Output.Precision < 0 || c.Output.Precision > 17 {
		return fmt.Errorf("output.precision must be in [0, 17], got %d", c.Output.Precision)
	}
	if c.Mesh.Cells < 8 {
		return fmt.Errorf("mesh.cells must be at least 8, got %d", c.Mesh.Cells)
	}
	return nil
}

// Build returns a logger writing to stderr at the configured level: JSON
// in production, console output in development.
func (l LogConfig) Build() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	if l.Development {
		cfg.Development = true
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	return cfg.Build()
}
