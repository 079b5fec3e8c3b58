package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"dnpsim/pkg/op"
	"dnpsim/pkg/report"
	"dnpsim/pkg/sim"
	"dnpsim/pkg/storage"
	"dnpsim/pkg/verify"
)

func (a *app) cmdCorpus() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Inspect and replay saved scenarios",
	}
	cmd.AddCommand(a.cmdCorpusList())
	cmd.AddCommand(a.cmdCorpusShow())
	cmd.AddCommand(a.cmdCorpusReplay())
	return cmd
}

func (a *app) cmdCorpusList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved scenarios, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			corpus, err := a.openCorpus()
			if err != nil {
				return err
			}
			defer corpus.Close()

			scenarios, err := corpus.List(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tOUTCOME\tOPERATIONS\tFAILED")
			for _, sc := range scenarios {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d/%d\n",
					sc.ID, sc.CreatedAt.Format("2006-01-02 15:04:05"), outcomeLabel(sc),
					firstLine(sc.Script), sc.Failed, sc.Permutations)
			}
			return tw.Flush()
		},
	}
}

func (a *app) cmdCorpusShow() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print a saved scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.loadScenario(cmd, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "id:           %s\n", sc.ID)
			fmt.Fprintf(w, "created:      %s\n", sc.CreatedAt.Format("2006-01-02 15:04:05 MST"))
			fmt.Fprintf(w, "seed:         %d (run %d)\n", sc.Seed, sc.Run)
			fmt.Fprintf(w, "catalog:      %s\n", strings.Join(sc.Catalog, " "))
			fmt.Fprintf(w, "outcome:      %s\n", outcomeLabel(sc))
			fmt.Fprintf(w, "permutations: %d, %d differ\n", sc.Permutations, sc.Failed)
			if sc.Violation != "" {
				fmt.Fprintf(w, "violation:    %s\n", sc.Violation)
			}
			fmt.Fprintf(w, "\n%s\n", sc.Script)
			if len(sc.Failures) == 0 {
				return nil
			}

			cat, ops, err := scenarioOperations(sc)
			if err != nil {
				return err
			}
			checker := &verify.Checker{Catalog: cat, MaxOps: len(ops)}
			p := report.NewPrinter(w, cat, false)
			for _, f := range sc.Failures {
				fmt.Fprintf(w, "run %d %v is %s:\n", f.Index+1, f.Order, f.Outcome)
				for _, m := range f.Mismatches {
					fmt.Fprintf(w, "\t%s\n", m)
				}

				final, _, err := checker.Replay(ops, f.Index)
				if err != nil {
					return fmt.Errorf("scenario %s: %w", sc.ID, err)
				}
				fmt.Fprintf(w, "final entry state of run %d:\n", f.Index+1)
				p.Entry(final)
			}
			return p.Err()
		},
	}
}

func (a *app) cmdCorpusReplay() *cobra.Command {
	var failOnDivergence bool

	cmd := &cobra.Command{
		Use:   "replay ID",
		Short: "Check a saved scenario again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.applyOutputFlags(cmd)

			sc, err := a.loadScenario(cmd, args[0])
			if err != nil {
				return err
			}

			opts, err := sim.OptionsFromConfig(a.cfg)
			if err != nil {
				return err
			}
			cat, ops, err := scenarioOperations(sc)
			if err != nil {
				return err
			}
			opts.Catalog = cat
			opts.MaxOps = max(opts.MaxOps, len(ops))

			// the scenario is already in the corpus
			a.cfg.Corpus.Enabled = false
			summary, err := a.simulate(cmd, opts, func(r *sim.Runner) (*sim.Summary, error) {
				return r.Replay(cmd.Context(), ops)
			})
			if err != nil {
				return err
			}
			return verdict(summary, failOnDivergence)
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "trace every replay with CSNs")
	cmd.Flags().StringP("file", "f", "", "write reports to a file instead of stdout")
	cmd.Flags().BoolVar(&failOnDivergence, "fail-on-divergence", false, "exit with status 1 unless the scenario converged")
	return cmd
}

func (a *app) loadScenario(cmd *cobra.Command, arg string) (*storage.Scenario, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario id %q: %w", arg, err)
	}

	corpus, err := a.openCorpus()
	if err != nil {
		return nil, err
	}
	defer corpus.Close()

	return corpus.Get(cmd.Context(), id)
}

// scenarioOperations rebuilds the catalog and operation set a scenario was
// checked with.
func scenarioOperations(sc *storage.Scenario) (*op.Catalog, []op.Operation, error) {
	cat, err := op.NewCatalog(sc.Catalog...)
	if err != nil {
		return nil, nil, fmt.Errorf("scenario %s: %w", sc.ID, err)
	}
	ops, err := op.ParseScript(strings.NewReader(sc.Script), cat, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("scenario %s: %w", sc.ID, err)
	}
	return cat, ops, nil
}

func outcomeLabel(sc *storage.Scenario) string {
	if sc.Violation != "" {
		return "violation"
	}
	return sc.Outcome.String()
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
