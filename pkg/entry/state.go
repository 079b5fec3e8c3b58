package entry

import (
	"slices"

	"dnpsim/pkg/csn"
	"dnpsim/pkg/op"
)

// ValueState is the lifecycle record of one attribute value. Present is
// derived by the resolver.
type ValueState struct {
	ID          op.ValueID
	PresenceCSN csn.CSN // latest CSN at which the value is known to be written
	DeleteCSN   csn.CSN // latest attempt to delete the value, or Absent
	Present     bool
}

// AttrState holds the attribute-wide fields.
type AttrState struct {
	DeleteCSN csn.CSN // latest whole-attribute deletion, or Absent
	Present   bool
}

// SingleValued carries the authoritative value and at most one pending
// candidate. The pending slot is owned by the attribute and never aliased.
type SingleValued struct {
	AttrState
	Current ValueState
	Pending *ValueState
}

// MultiValued carries one ValueState per catalog value, indexed by ValueID.
type MultiValued struct {
	AttrState
	Values []ValueState
}

// State is the replicated state of one entry. A State belongs to a single
// replay; use Clone to start another one.
type State struct {
	Catalog *op.Catalog
	History DnHistory
	SV      SingleValued
	MV      MultiValued
}

func newValueState(id op.ValueID) ValueState {
	return ValueState{
		ID:          id,
		PresenceCSN: csn.Initial,
		DeleteCSN:   csn.Absent,
		Present:     true,
	}
}

// New returns the initial entry: named by the first catalog value of the
// multi-valued attribute, every value present, nothing deleted. The
// single-valued attribute starts with the second catalog value (the first
// one when the catalog has a single value).
func New(cat *op.Catalog) *State {
	s := &State{
		Catalog: cat,
		History: DnHistory{{CSN: csn.Initial, Attr: op.MV, Value: 0}},
	}

	svInitial := op.ValueID(0)
	if cat.Len() > 1 {
		svInitial = 1
	}
	s.SV = SingleValued{
		AttrState: AttrState{DeleteCSN: csn.Absent, Present: true},
		Current:   newValueState(svInitial),
	}

	s.MV = MultiValued{
		AttrState: AttrState{DeleteCSN: csn.Absent, Present: true},
		Values:    make([]ValueState, cat.Len()),
	}
	for i := range s.MV.Values {
		s.MV.Values[i] = newValueState(op.ValueID(i))
	}
	return s
}

// Clone returns a deep copy sharing only the immutable catalog.
func (s *State) Clone() *State {
	c := &State{
		Catalog: s.Catalog,
		History: slices.Clone(s.History),
		SV:      s.SV,
		MV:      s.MV,
	}
	c.MV.Values = slices.Clone(s.MV.Values)
	if s.SV.Pending != nil {
		p := *s.SV.Pending
		c.SV.Pending = &p
	}
	return c
}

// lookup returns the current or pending value with the given id, or nil.
func (a *SingleValued) lookup(id op.ValueID) *ValueState {
	if a.Current.ID == id {
		return &a.Current
	}
	if a.Pending != nil && a.Pending.ID == id {
		return a.Pending
	}
	return nil
}
