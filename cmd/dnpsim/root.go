package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"dnpsim/pkg/config"
	"dnpsim/pkg/metrics"
	"dnpsim/pkg/sim"
	"dnpsim/pkg/storage"
	"dnpsim/pkg/util/logging"
)

var errNotConverged = errors.New("simulations did not converge")

// app holds what every subcommand shares once the config is loaded.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "dnpsim",
		Short: "Replication conflict resolution simulator for a directory entry",
		Long: `dnpsim checks that replicas converge on the same entry state.

Every operation set is replayed in all of its orderings, each time from the
same initial entry, and the final states are compared with the first one.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.CompletionOptions.HiddenDefaultCmd = true
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file")

	root.AddCommand(a.cmdRun())
	root.AddCommand(a.cmdReplay())
	root.AddCommand(a.cmdCorpus())
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	a.logger = logging.InitDefault(cmd.ErrOrStderr(), uuid.NewString(), cfg.Output.LogLevel)
	return nil
}

// output returns where reports go: the configured file or the command's
// stdout.
func (a *app) output(cmd *cobra.Command) (io.Writer, func() error, error) {
	if a.cfg.Output.File == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	f, err := os.Create(a.cfg.Output.File)
	if err != nil {
		return nil, nil, fmt.Errorf("open output file: %w", err)
	}
	return f, f.Close, nil
}

func (a *app) openCorpus() (*storage.Store, error) {
	cfg := storage.DefaultConfig(a.cfg.Corpus.Dir)
	if a.cfg.Corpus.InMemory {
		cfg = storage.InMemoryConfig()
	}
	cfg.Logger = a.logger
	return storage.Open(cfg)
}

// simulate wires a runner to the configured output, corpus and metrics and
// hands it to fn.
func (a *app) simulate(cmd *cobra.Command, opts sim.Options, fn func(*sim.Runner) (*sim.Summary, error)) (*sim.Summary, error) {
	out, closeOut, err := a.output(cmd)
	if err != nil {
		return nil, err
	}
	defer closeOut()

	var corpus *storage.Store
	if a.cfg.Corpus.Enabled {
		if corpus, err = a.openCorpus(); err != nil {
			return nil, err
		}
		defer corpus.Close()
	}

	m := metrics.New()
	summary, err := fn(sim.NewRunner(opts, out, a.logger, m, corpus))
	if err != nil {
		return nil, err
	}

	if path := a.cfg.Metrics.Textfile; path != "" {
		if err := m.WriteTextfile(path); err != nil {
			return nil, fmt.Errorf("write metrics: %w", err)
		}
	}

	a.logger.Info("done",
		"simulations", len(summary.Results), "outcome", summary.Outcome,
		"violations", summary.Violations, "seed", summary.Seed)
	return summary, nil
}

func verdict(summary *sim.Summary, failOnDivergence bool) error {
	if failOnDivergence && !summary.Clean() {
		return fmt.Errorf("%w: %s, %d contract violations", errNotConverged, summary.Outcome, summary.Violations)
	}
	return nil
}
