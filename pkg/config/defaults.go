package config

import (
	"slices"

	"dnpsim/pkg/structs"
)

const (
	SaveFailures = "failures"
	SaveAll      = "all"
)

var knownLogLevels = structs.NewSet("debug", "info", "warn", "error")

var knownSaveModes = structs.NewSet(SaveFailures, SaveAll)

var defaultSimulation = SimulationConfig{
	Runs:        1,
	MaxOps:      9,
	Seed:        0,
	Parallelism: 1,
	MaxFailures: 10,
}

var defaultCatalog = CatalogConfig{
	Values: []string{"v", "u", "w"},
}

var defaultOutput = OutputConfig{
	File:     "",
	Verbose:  false,
	LogLevel: "info",
}

var defaultCorpus = CorpusConfig{
	Enabled:  false,
	Dir:      "corpus",
	InMemory: false,
	Save:     SaveFailures,
}

var defaultMetrics = MetricsConfig{}

func Default() *Config {
	cfg := &Config{
		Simulation: defaultSimulation,
		Catalog:    defaultCatalog,
		Output:     defaultOutput,
		Corpus:     defaultCorpus,
		Metrics:    defaultMetrics,
	}
	cfg.Catalog.Values = slices.Clone(defaultCatalog.Values)
	return cfg
}

func (c *SimulationConfig) PopulateDefaults() {
	if c.Runs == 0 {
		c.Runs = defaultSimulation.Runs
	}

	if c.MaxOps == 0 {
		c.MaxOps = defaultSimulation.MaxOps
	}

	if c.Parallelism == 0 {
		c.Parallelism = defaultSimulation.Parallelism
	}
}

func (c *CatalogConfig) PopulateDefaults() {
	if len(c.Values) == 0 {
		c.Values = slices.Clone(defaultCatalog.Values)
	}
}

func (c *OutputConfig) PopulateDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = defaultOutput.LogLevel
	}
}

func (c *CorpusConfig) PopulateDefaults() {
	if c.Dir == "" {
		c.Dir = defaultCorpus.Dir
	}

	if c.Save == "" {
		c.Save = defaultCorpus.Save
	}
}

func (c *MetricsConfig) PopulateDefaults() {
	//
}

func (c *Config) PopulateDefaults() {
	c.Simulation.PopulateDefaults()
	c.Catalog.PopulateDefaults()
	c.Output.PopulateDefaults()
	c.Corpus.PopulateDefaults()
	c.Metrics.PopulateDefaults()
}
