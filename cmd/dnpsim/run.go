package main

import (
	"github.com/spf13/cobra"

	"dnpsim/pkg/sim"
)

func (a *app) cmdRun() *cobra.Command {
	var failOnDivergence bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Check random operation sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.applyRunFlags(cmd)
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			opts, err := sim.OptionsFromConfig(a.cfg)
			if err != nil {
				return err
			}
			summary, err := a.simulate(cmd, opts, func(r *sim.Runner) (*sim.Summary, error) {
				return r.Run(cmd.Context())
			})
			if err != nil {
				return err
			}
			return verdict(summary, failOnDivergence)
		},
	}

	flags := cmd.Flags()
	flags.IntP("runs", "n", 0, "number of simulations")
	flags.Int("max-ops", 0, "largest operation set to generate")
	flags.Uint64("seed", 0, "generator seed, 0 for a random one")
	flags.IntP("parallel", "p", 0, "simulations checked concurrently")
	flags.Int("max-failures", 0, "failing orderings reported per simulation, 0 for all")
	flags.BoolP("verbose", "v", false, "trace every replay with CSNs")
	flags.StringP("file", "f", "", "write reports to a file instead of stdout")
	flags.Bool("corpus", false, "save scenarios to the corpus")
	flags.String("metrics-textfile", "", "write Prometheus metrics to this file")
	flags.BoolVar(&failOnDivergence, "fail-on-divergence", false, "exit with status 1 unless every simulation converged")
	return cmd
}

// applyRunFlags lets explicitly set flags override the config file.
func (a *app) applyRunFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	cfg := a.cfg

	if flags.Changed("runs") {
		cfg.Simulation.Runs, _ = flags.GetInt("runs")
	}
	if flags.Changed("max-ops") {
		cfg.Simulation.MaxOps, _ = flags.GetInt("max-ops")
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("parallel") {
		cfg.Simulation.Parallelism, _ = flags.GetInt("parallel")
	}
	if flags.Changed("max-failures") {
		cfg.Simulation.MaxFailures, _ = flags.GetInt("max-failures")
	}
	a.applyOutputFlags(cmd)
	if flags.Changed("corpus") {
		cfg.Corpus.Enabled, _ = flags.GetBool("corpus")
	}
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.Textfile, _ = flags.GetString("metrics-textfile")
	}
}

func (a *app) applyOutputFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		a.cfg.Output.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("file") {
		a.cfg.Output.File, _ = flags.GetString("file")
	}
}
