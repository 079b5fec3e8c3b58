package sim

import (
	"dnpsim/pkg/config"
	"dnpsim/pkg/op"
)

// Options are the parameters of one invocation.
type Options struct {
	Catalog *op.Catalog
	Runs    int
	MaxOps  int
	// Seed 0 draws a random seed.
	Seed        uint64
	Parallelism int
	MaxFailures int
	Verbose     bool
	// SaveAll keeps converged scenarios in the corpus too.
	SaveAll bool
}

func OptionsFromConfig(cfg *config.Config) (Options, error) {
	cat, err := cfg.Catalog.BuildCatalog()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Catalog:     cat,
		Runs:        cfg.Simulation.Runs,
		MaxOps:      cfg.Simulation.MaxOps,
		Seed:        cfg.Simulation.Seed,
		Parallelism: cfg.Simulation.Parallelism,
		MaxFailures: cfg.Simulation.MaxFailures,
		Verbose:     cfg.Output.Verbose,
		SaveAll:     cfg.Corpus.Save == config.SaveAll,
	}, nil
}
