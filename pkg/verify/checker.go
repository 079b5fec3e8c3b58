package verify

import (
	"fmt"
	"slices"

	"dnpsim/pkg/entry"
	"dnpsim/pkg/op"
	"dnpsim/pkg/perm"
)

// DefaultMaxOps keeps a full run at 9! replays.
const DefaultMaxOps = 9

// Failure is one replay whose final entry differs from the first replay's.
type Failure struct {
	Index      int        `json:"index"`
	Order      []int      `json:"order"`
	Outcome    Outcome    `json:"outcome"`
	Mismatches []Mismatch `json:"mismatches"`
}

// Report summarizes one operation set replayed in every order.
type Report struct {
	Operations   []op.Operation
	Permutations int
	Outcome      Outcome
	// Failed counts every non-converged replay; Failures holds at most
	// Checker.MaxFailures of them.
	Failed   int
	Failures []Failure
	// First is the final state of the identity ordering, which every other
	// replay is compared with.
	First *entry.State
}

func (r *Report) Converged() bool {
	return r.Outcome == Converged
}

// Checker replays an operation set in every order, each time from a fresh
// copy of the initial entry, and compares the results with the first replay.
type Checker struct {
	Catalog *op.Catalog
	// MaxOps bounds the operation count; zero means DefaultMaxOps.
	MaxOps int
	// MaxFailures bounds Report.Failures; zero keeps every failure.
	MaxFailures int

	// OnReplay runs before replay index starts. order is only valid during
	// the call.
	OnReplay func(index int, order []int)
	// OnStep runs after every applied operation.
	OnStep func(index int, o op.Operation, s *entry.State)
	// OnResult runs after replay index finishes.
	OnResult func(index int, s *entry.State, outcome Outcome, mismatches []Mismatch)
}

func (c *Checker) maxOps() int {
	if c.MaxOps > 0 {
		return c.MaxOps
	}
	return DefaultMaxOps
}

// Check replays ops in all len(ops)! orders. It fails only on invalid input;
// resolver contract violations panic with entry.ErrContractViolation.
func (c *Checker) Check(ops []op.Operation) (*Report, error) {
	if err := c.validate(ops); err != nil {
		return nil, err
	}

	initial := entry.New(c.Catalog)
	r := &Report{
		Operations:   ops,
		Permutations: perm.Count(len(ops)),
	}

	for i, order := range perm.All(len(ops)) {
		if c.OnReplay != nil {
			c.OnReplay(i, order)
		}

		s := c.replay(initial, i, perm.Apply(ops, order))

		if i == 0 {
			r.First = s
			if c.OnResult != nil {
				c.OnResult(i, s, Converged, nil)
			}
			continue
		}

		outcome, mismatches := Classify(r.First, s)
		r.Outcome |= outcome
		if c.OnResult != nil {
			c.OnResult(i, s, outcome, mismatches)
		}
		if outcome == Converged {
			continue
		}

		r.Failed++
		if c.MaxFailures == 0 || len(r.Failures) < c.MaxFailures {
			r.Failures = append(r.Failures, Failure{
				Index:      i,
				Order:      slices.Clone(order),
				Outcome:    outcome,
				Mismatches: mismatches,
			})
		}
	}
	return r, nil
}

// Replay rebuilds the final entry of replay index alone, as Check would
// have produced it, and returns it with the ordering used.
func (c *Checker) Replay(ops []op.Operation, index int) (*entry.State, []int, error) {
	if err := c.validate(ops); err != nil {
		return nil, nil, err
	}
	order := perm.Nth(len(ops), index)
	if order == nil {
		return nil, nil, fmt.Errorf("%w: %d of %d", ErrReplayOutOfRange, index, perm.Count(len(ops)))
	}
	return c.replay(entry.New(c.Catalog), index, perm.Apply(ops, order)), order, nil
}

func (c *Checker) validate(ops []op.Operation) error {
	if len(ops) == 0 {
		return ErrNoOperations
	}
	if len(ops) > c.maxOps() {
		return fmt.Errorf("%w: %d operations, at most %d", ErrTooManyOperations, len(ops), c.maxOps())
	}
	if err := op.Validate(ops, c.Catalog); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOperations, err)
	}
	return nil
}

func (c *Checker) replay(initial *entry.State, index int, ordered []op.Operation) *entry.State {
	s := initial.Clone()
	for _, o := range ordered {
		s.Apply(o)
		if c.OnStep != nil {
			c.OnStep(index, o, s)
		}
	}
	return s
}
