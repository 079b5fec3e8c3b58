// Package report renders simulation traces and convergence reports as text.
package report

import (
	"fmt"
	"io"
	"strings"

	"dnpsim/pkg/entry"
	"dnpsim/pkg/op"
	"dnpsim/pkg/verify"
)

const separator = "--------------------------------"

// Message is the one-line verdict for a run outcome.
func Message(o verify.Outcome) string {
	switch o {
	case verify.Converged:
		return "all runs left the entry in the same state"
	case verify.PresenceConverged:
		return "while value presence is consistent across all runs, the exact state does not match"
	case verify.Diverged:
		return "the runs left entries in an inconsistent state"
	}
	return fmt.Sprintf("unknown outcome %d", uint8(o))
}

// Printer writes traces for one catalog. The first write error is kept and
// every later write is skipped; check Err when done.
type Printer struct {
	w       io.Writer
	cat     *op.Catalog
	verbose bool
	err     error
}

func NewPrinter(w io.Writer, cat *op.Catalog, verbose bool) *Printer {
	return &Printer{w: w, cat: cat, verbose: verbose}
}

func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) SimulationStart(n int, seed uint64) {
	p.printf("*******running simulation #%d (seed %d) ...\n\n", n, seed)
}

func (p *Printer) SimulationEnd(n int) {
	p.printf("\n*******done with simulation #%d ...\n\n", n)
}

// Initial prints the starting entry and the operation set under test.
func (p *Printer) Initial(s *entry.State, ops []op.Operation) {
	p.printf("initial entry state:\n")
	p.Entry(s)
	p.printf("initial operation set:\n")
	p.Operations(ops, nil)
}

// Violation reports a simulation aborted by the resolver.
func (p *Printer) Violation(err error) {
	p.printf("simulation aborted: %v\n", err)
}

// Operations lists ops in the given order; a nil order keeps generation
// order.
func (p *Printer) Operations(ops []op.Operation, order []int) {
	for i := range ops {
		idx := i
		if order != nil {
			idx = order[i]
		}
		p.printf("\t%s\n", ops[idx].Describe(p.cat))
	}
	p.printf("\n")
}

// Entry dumps an entry state. CSNs are included in verbose mode.
func (p *Printer) Entry(s *entry.State) {
	p.printf("\tdn history:\n")
	for _, r := range s.History {
		p.printf("\t\t%s=%s, csn: %s\n", r.Attr, p.cat.Name(r.Value), r.CSN)
	}

	sv := s.SV
	if sv.Present {
		p.printf("\tattribute %s is present and has the value of %s\n", op.SV, p.cat.Name(sv.Current.ID))
	} else {
		p.printf("\tattribute %s is not present\n", op.SV)
	}
	if p.verbose {
		p.printf("\t\tdeletion csn: %s\n", sv.DeleteCSN)
		p.printf("\t\tcurrent value: ")
		p.singleValue(sv.Current)
		if sv.Pending != nil {
			p.printf("\t\tpending value: ")
			p.singleValue(*sv.Pending)
		}
	}

	p.printf("\tattribute %s is %s\n", op.MV, presence(s.MV.Present))
	if p.verbose {
		p.printf("\t\tdeletion csn: %s\n", s.MV.DeleteCSN)
	}
	for _, v := range s.MV.Values {
		p.printf("\tvalue %s is %s\n", p.cat.Name(v.ID), presence(v.Present))
		p.csns(v)
	}
	p.printf("\n")
}

func (p *Printer) singleValue(v entry.ValueState) {
	p.printf("%s\n", p.cat.Name(v.ID))
	p.csns(v)
}

func (p *Printer) csns(v entry.ValueState) {
	if !p.verbose {
		return
	}
	p.printf("\t\t\tpresence csn: %s\n", v.PresenceCSN)
	p.printf("\t\t\tdeletion csn: %s\n", v.DeleteCSN)
}

func presence(present bool) string {
	if present {
		return "present"
	}
	return "not present"
}

// Trace hooks the printer into c. Every replay is printed in verbose mode;
// otherwise only replays that differ from the first one.
func (p *Printer) Trace(c *verify.Checker, ops []op.Operation) {
	if !p.verbose {
		c.OnResult = func(index int, s *entry.State, outcome verify.Outcome, _ []verify.Mismatch) {
			if outcome == verify.Converged {
				return
			}
			p.printf("final entry state of run %d (%s):\n", index+1, outcome)
			p.Entry(s)
		}
		return
	}

	c.OnReplay = func(index int, order []int) {
		p.printf("%s\nsimulation run %d\n%s\n", separator, index+1, separator)
		p.printf("operation sequence for this run:\n")
		p.Operations(ops, order)
	}
	c.OnStep = func(_ int, o op.Operation, s *entry.State) {
		p.printf("after %s:\n", o.Describe(p.cat))
		p.Entry(s)
	}
	c.OnResult = func(index int, s *entry.State, outcome verify.Outcome, _ []verify.Mismatch) {
		p.printf("final entry state (%s):\n", outcome)
		p.Entry(s)
	}
}

// Report prints the verdict for r, followed by every recorded failure.
func (p *Printer) Report(r *verify.Report) {
	p.printf("%d operations, %d permutations replayed\n", len(r.Operations), r.Permutations)
	for _, f := range r.Failures {
		p.printf("run %d (order %s) is %s:\n", f.Index+1, formatOrder(r.Operations, f.Order), f.Outcome)
		for _, m := range f.Mismatches {
			p.printf("\t%s\n", m)
		}
	}
	if extra := r.Failed - len(r.Failures); extra > 0 {
		p.printf("%d more runs differ from the first run\n", extra)
	}
	p.printf("%s\n", Message(r.Outcome))
}

// formatOrder renders an ordering as the CSNs in replay order.
func formatOrder(ops []op.Operation, order []int) string {
	parts := make([]string, len(order))
	for i, idx := range order {
		parts[i] = ops[idx].CSN.String()
	}
	return strings.Join(parts, " ")
}
