package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"dnpsim/pkg/op"
)

type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Output     OutputConfig     `yaml:"output"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

type SimulationConfig struct {
	Runs   int `yaml:"runs" validate:"gte=1"`
	MaxOps int `yaml:"max_ops" validate:"gte=1,lte=10"`
	// Seed 0 picks a random seed per invocation.
	Seed        uint64 `yaml:"seed"`
	Parallelism int    `yaml:"parallelism" validate:"gte=1,lte=256"`
	// MaxFailures 0 keeps every failing permutation in the report.
	MaxFailures int `yaml:"max_failures" validate:"gte=0"`
}

type CatalogConfig struct {
	Values []string `yaml:"values" validate:"min=1,max=10,dive,required"`
}

type OutputConfig struct {
	File     string `yaml:"file"`
	Verbose  bool   `yaml:"verbose"`
	LogLevel string `yaml:"log_level"`
}

type CorpusConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Dir      string `yaml:"dir"`
	InMemory bool   `yaml:"in_memory"`
	Save     string `yaml:"save"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load reads path, fills unset fields with defaults and validates the result.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Read(path); err != nil {
			return nil, err
		}
		cfg.PopulateDefaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BuildCatalog returns the value catalog both attributes draw from.
func (c *CatalogConfig) BuildCatalog() (*op.Catalog, error) {
	return op.NewCatalog(c.Values...)
}
