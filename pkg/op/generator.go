package op

import (
	"math/rand/v2"

	"dnpsim/pkg/csn"
)

// Generator produces random, well-formed operation sets. It is not safe for
// concurrent use.
type Generator struct {
	rng     *rand.Rand
	catalog *Catalog
	maxOps  int
}

func NewGenerator(seed uint64, cat *Catalog, maxOps int) *Generator {
	if maxOps < 1 {
		maxOps = 1
	}
	return &Generator{
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		catalog: cat,
		maxOps:  maxOps,
	}
}

// Generate returns between 1 and maxOps operations stamped with CSNs 1..N.
func (g *Generator) Generate() []Operation {
	n := g.rng.IntN(g.maxOps) + 1
	clock := csn.NewClock()

	ops := make([]Operation, n)
	for i := range ops {
		ops[i] = g.operation(clock.Next())
	}
	return ops
}

func (g *Generator) operation(c csn.CSN) Operation {
	o := Operation{
		CSN:   c,
		Kind:  Kind(g.rng.IntN(int(kindCount))),
		Attr:  g.attr(),
		Value: g.value(),
	}

	if o.Kind == DeleteAttribute {
		o.Value = 0
	}
	if o.Kind == RenameEntry && g.rng.IntN(2) == 1 {
		old := RDN{Attr: g.attr(), Value: g.value()}
		for old == o.Target() {
			old = RDN{Attr: g.attr(), Value: g.value()}
		}
		o.OldRDN = &old
	}
	return o
}

func (g *Generator) attr() Attr {
	return Attr(g.rng.IntN(2))
}

func (g *Generator) value() ValueID {
	return ValueID(g.rng.IntN(g.catalog.Len()))
}
