// Package sim runs simulations: it generates or reads operation sets,
// checks every ordering, prints the traces and records the results.
package sim

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"dnpsim/pkg/entry"
	"dnpsim/pkg/metrics"
	"dnpsim/pkg/op"
	"dnpsim/pkg/report"
	"dnpsim/pkg/storage"
	"dnpsim/pkg/verify"
)

// Result is the outcome of one simulation. Exactly one of Report and
// Violation is set.
type Result struct {
	Run        int
	Operations []op.Operation
	Report     *verify.Report
	Violation  error
	// ScenarioID is the corpus entry for this operation set, if any.
	ScenarioID uuid.UUID
}

// Summary aggregates every simulation of an invocation.
type Summary struct {
	Seed       uint64
	Results    []Result
	Outcome    verify.Outcome
	Violations int
}

// Clean reports whether every simulation converged.
func (s *Summary) Clean() bool {
	return s.Outcome == verify.Converged && s.Violations == 0
}

type Runner struct {
	opts    Options
	out     io.Writer
	logger  *slog.Logger
	metrics *metrics.Metrics
	corpus  *storage.Store
}

// NewRunner writes reports to out. m and corpus may be nil.
func NewRunner(opts Options, out io.Writer, logger *slog.Logger, m *metrics.Metrics, corpus *storage.Store) *Runner {
	if opts.Catalog == nil {
		opts.Catalog = op.DefaultCatalog()
	}
	if opts.Runs < 1 {
		opts.Runs = 1
	}
	if opts.MaxOps < 1 {
		opts.MaxOps = verify.DefaultMaxOps
	}
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{opts: opts, out: out, logger: logger, metrics: m, corpus: corpus}
}

// Run checks opts.Runs random operation sets.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	seed := r.opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	r.logger.Info("starting simulations", "runs", r.opts.Runs, "seed", seed, "max_ops", r.opts.MaxOps)

	gen := op.NewGenerator(seed, r.opts.Catalog, r.opts.MaxOps)
	sets := make([][]op.Operation, r.opts.Runs)
	for i := range sets {
		sets[i] = gen.Generate()
	}
	return r.runAll(ctx, seed, sets)
}

// Replay checks one given operation set.
func (r *Runner) Replay(ctx context.Context, ops []op.Operation) (*Summary, error) {
	r.logger.Info("replaying operation set", "operations", len(ops))
	return r.runAll(ctx, 0, [][]op.Operation{ops})
}

func (r *Runner) runAll(ctx context.Context, seed uint64, sets [][]op.Operation) (*Summary, error) {
	results := make([]Result, len(sets))

	if r.opts.Parallelism == 1 || len(sets) == 1 {
		for i, ops := range sets {
			res, err := r.simulate(ctx, i+1, seed, ops, r.out)
			if err != nil {
				return nil, err
			}
			results[i] = res
		}
		return summarize(seed, results), nil
	}

	// Each simulation prints into its own buffer; buffers are flushed in
	// run order so the output does not depend on scheduling.
	bufs := make([]bytes.Buffer, len(sets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Parallelism)
	for i, ops := range sets {
		g.Go(func() error {
			res, err := r.simulate(gctx, i+1, seed, ops, &bufs[i])
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range bufs {
		if _, err := bufs[i].WriteTo(r.out); err != nil {
			return nil, fmt.Errorf("write report: %w", err)
		}
	}
	return summarize(seed, results), nil
}

func (r *Runner) simulate(ctx context.Context, run int, seed uint64, ops []op.Operation, w io.Writer) (Result, error) {
	res := Result{Run: run, Operations: ops}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	logger := r.logger.With("run", run)
	logger.Info("simulation started", "operations", len(ops))

	p := report.NewPrinter(w, r.opts.Catalog, r.opts.Verbose)
	p.SimulationStart(run, seed)
	p.Initial(entry.New(r.opts.Catalog), ops)

	checker := &verify.Checker{
		Catalog:     r.opts.Catalog,
		MaxOps:      r.opts.MaxOps,
		MaxFailures: r.opts.MaxFailures,
	}
	p.Trace(checker, ops)

	rep, err := check(checker, ops)
	switch {
	case errors.Is(err, entry.ErrContractViolation):
		res.Violation = err
		logger.Error("resolver contract violation", "error", err, "script", op.Script(ops, r.opts.Catalog))
		if r.metrics != nil {
			r.metrics.ObserveContractViolation()
		}
		p.Violation(err)

	case err != nil:
		return res, fmt.Errorf("simulation %d: %w", run, err)

	default:
		res.Report = rep
		for _, f := range rep.Failures {
			logger.Debug("replay differs from the first one",
				"index", f.Index+1, "order", f.Order, "outcome", f.Outcome, "mismatches", len(f.Mismatches))
		}
		logger.Info("simulation finished",
			"outcome", rep.Outcome, "permutations", rep.Permutations, "failed", rep.Failed)
		if r.metrics != nil {
			r.metrics.ObserveReport(rep)
		}
		p.Report(rep)
	}
	p.SimulationEnd(run)

	if err := p.Err(); err != nil {
		return res, fmt.Errorf("write report: %w", err)
	}

	id, err := r.save(ctx, seed, res)
	if err != nil {
		return res, fmt.Errorf("save scenario: %w", err)
	}
	res.ScenarioID = id
	return res, nil
}

// check turns a contract-violation panic into an error; any other panic
// is re-raised.
func check(c *verify.Checker, ops []op.Operation) (rep *verify.Report, err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if e, ok := rec.(error); ok && errors.Is(e, entry.ErrContractViolation) {
			rep, err = nil, e
			return
		}
		panic(rec)
	}()
	return c.Check(ops)
}

func (r *Runner) save(ctx context.Context, seed uint64, res Result) (uuid.UUID, error) {
	if r.corpus == nil {
		return uuid.Nil, nil
	}

	names := r.opts.Catalog.Names()
	script := op.Script(res.Operations, r.opts.Catalog)

	sc, err := storage.NewScenario(names, script)
	if err != nil {
		return uuid.Nil, err
	}
	sc.Seed = seed
	sc.Run = res.Run
	if res.Report != nil {
		sc.Outcome = res.Report.Outcome
		sc.Permutations = res.Report.Permutations
		sc.Failed = res.Report.Failed
		sc.Failures = res.Report.Failures
	}
	if res.Violation != nil {
		sc.Violation = res.Violation.Error()
	}

	if !r.opts.SaveAll && !sc.Interesting() {
		existing, err := r.corpus.FindScript(ctx, names, script)
		switch {
		case err == nil:
			return existing.ID, nil
		case errors.Is(err, storage.ErrNotFound):
			return uuid.Nil, nil
		default:
			return uuid.Nil, err
		}
	}

	stored, created, err := r.corpus.Insert(ctx, sc)
	if err != nil {
		return uuid.Nil, err
	}
	if !created {
		r.logger.Debug("operation set already in corpus", "run", res.Run, "scenario", stored.ID)
		return stored.ID, nil
	}
	r.logger.Info("scenario saved", "run", res.Run, "scenario", sc.ID, "outcome", sc.Outcome)
	return sc.ID, nil
}

func summarize(seed uint64, results []Result) *Summary {
	s := &Summary{Seed: seed, Results: results}
	for _, res := range results {
		if res.Violation != nil {
			s.Violations++
			continue
		}
		s.Outcome |= res.Report.Outcome
	}
	return s
}
