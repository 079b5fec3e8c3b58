package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"dnpsim/pkg/op"
	"dnpsim/pkg/sim"
)

func (a *app) cmdReplay() *cobra.Command {
	var failOnDivergence bool

	cmd := &cobra.Command{
		Use:   "replay SCRIPT",
		Short: "Check the operation set in SCRIPT (- for stdin)",
		Long: `Check the operation set in SCRIPT (- for stdin).

Script format, one operation per line after the operation count:

  add <attribute> <value>
  delete <attribute>[ <value>]
  rename to <attribute> <value>[ delete <attribute> <value>]

Attributes are sv_attr and mv_attr; values come from the catalog.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.applyOutputFlags(cmd)

			opts, err := sim.OptionsFromConfig(a.cfg)
			if err != nil {
				return err
			}
			ops, err := readScript(cmd, args[0], opts.Catalog, opts.MaxOps)
			if err != nil {
				return err
			}

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
	cmd.Flags().BoolVar(&failOnDivergence, "fail-on-divergence", false, "exit with status 1 unless the operation set converged")
	return cmd
}

func readScript(cmd *cobra.Command, path string, cat *op.Catalog, maxOps int) ([]op.Operation, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	ops, err := op.ParseScript(r, cat, maxOps)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ops, nil
}
