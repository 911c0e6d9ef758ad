// Package config loads graphkit service configuration from YAML files
// with sane defaults for every tunable.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/citemesh/graphkit/pkg/validation"
)

// Config is the top-level service configuration.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Algorithms AlgorithmsConfig `yaml:"algorithms"`
	Service    ServiceConfig    `yaml:"service"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// AlgorithmsConfig holds the default tunables handed to algorithm runs
// when a request does not override them.
type AlgorithmsConfig struct {
	Resolution       float64 `yaml:"resolution"`
	MaxIterations    int     `yaml:"max_iterations"`
	MinImprovement   float64 `yaml:"min_improvement"`
	Epsilon          float64 `yaml:"epsilon"`
	CoreThreshold    float64 `yaml:"core_threshold"`
	BalanceTolerance float64 `yaml:"balance_tolerance"`
	Seed             int64   `yaml:"seed"`
}

// ServiceConfig bounds the inputs the service accepts.
type ServiceConfig struct {
	MaxNodes int `yaml:"max_nodes"`
	MaxEdges int `yaml:"max_edges"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Algorithms: AlgorithmsConfig{
			Resolution:       1.0,
			MaxIterations:    100,
			MinImprovement:   1e-6,
			Epsilon:          1e-4,
			CoreThreshold:    0.5,
			BalanceTolerance: 3.0,
		},
		Service: ServiceConfig{
			MaxNodes: 100000,
			MaxEdges: 1000000,
		},
	}
}

// Load reads a YAML config file and merges it over the defaults.
// Fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every tunable is inside its legal range.
func (c *Config) Validate() error {
	return validation.NewConfigValidator("Config").
		OneOf("Logging.Level", c.Logging.Level, []string{"debug", "info", "warn", "error"}).
		PositiveFloat("Algorithms.Resolution", c.Algorithms.Resolution).
		Positive("Algorithms.MaxIterations", c.Algorithms.MaxIterations).
		NonNegativeFloat("Algorithms.MinImprovement", c.Algorithms.MinImprovement).
		PositiveFloat("Algorithms.Epsilon", c.Algorithms.Epsilon).
		RangeFloat("Algorithms.CoreThreshold", c.Algorithms.CoreThreshold, 0, 1).
		MinFloat("Algorithms.BalanceTolerance", c.Algorithms.BalanceTolerance, 1.0).
		Custom("Algorithms.Seed", func() error {
			if c.Algorithms.Seed < 0 {
				return fmt.Errorf("seed %d must not be negative", c.Algorithms.Seed)
			}
			return nil
		}).
		Positive("Service.MaxNodes", c.Service.MaxNodes).
		Positive("Service.MaxEdges", c.Service.MaxEdges).
		Validate()
}
