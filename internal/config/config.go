// Package config loads service configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// Config is the top-level service configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Engine EngineConfig `yaml:"engine"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxRequestSize int           `yaml:"max_request_size"`
	Concurrency    int           `yaml:"concurrency"`
}

// EngineConfig configures the similarity engine.
type EngineConfig struct {
	Threshold          float64 `yaml:"threshold"`
	MaxInputLength     int     `yaml:"max_input_length"`
	OptimizedNormalize bool    `yaml:"optimized_normalizer"`
	WarmUp             bool    `yaml:"warm_up"`
}

// StoreConfig selects the document repository. An empty path keeps documents in memory.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LogConfig configures logging output.
type LogConfig struct {
	File string `yaml:"file"`
	JSON bool   `yaml:"json"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           8080,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			RequestTimeout: 30 * time.Second,
			MaxRequestSize: 10 * 1024 * 1024, // 10MB
		},
		Engine: EngineConfig{
			Threshold:      0.7,
			MaxInputLength: 20000,
			WarmUp:         true,
		},
		Log: LogConfig{
			JSON: true,
		},
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path
// or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	bin, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(bin, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	switch {
	case c.Server.Port <= 0 || c.Server.Port > 65535:
		return fmt.Errorf("%w: port must be between 1 and 65535", domain.ErrInvalidConfig)
	case c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.RequestTimeout < 0:
		return fmt.Errorf("%w: timeouts must not be negative", domain.ErrInvalidConfig)
	case c.Server.MaxRequestSize <= 0:
		return fmt.Errorf("%w: max_request_size must be greater than 0", domain.ErrInvalidConfig)
	case c.Server.Concurrency < 0:
		return fmt.Errorf("%w: concurrency must not be negative", domain.ErrInvalidConfig)
	case c.Engine.Threshold < 0 || c.Engine.Threshold > 1:
		return fmt.Errorf("%w: threshold must be between 0 and 1", domain.ErrInvalidConfig)
	case c.Engine.MaxInputLength < 0:
		return fmt.Errorf("%w: max_input_length must not be negative", domain.ErrInvalidConfig)
	}
	return nil
}

// WriteSample writes the default configuration to path.
func WriteSample(path string) error {
	bin, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, bin, 0644)
}
