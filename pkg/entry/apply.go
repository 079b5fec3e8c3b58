package entry

import (
	"dnpsim/pkg/csn"
	"dnpsim/pkg/op"
)

// Apply folds one operation into the entry state. Operations must be valid
// for the entry's catalog (see op.Validate); Apply panics with
// ErrContractViolation otherwise.
func (s *State) Apply(o op.Operation) {
	if !o.Attr.Valid() {
		violation("unknown attribute %s", o.Attr)
	}
	if o.Kind != op.DeleteAttribute && !s.Catalog.Contains(o.Value) {
		violation("value %d outside the catalog", int(o.Value))
	}
	if r := o.OldRDN; r != nil && (!r.Attr.Valid() || !s.Catalog.Contains(r.Value)) {
		violation("old RDN %s=%d outside the catalog", r.Attr, int(r.Value))
	}

	switch o.Kind {
	case op.AddValue:
		s.applyAdd(o)
	case op.DeleteValue:
		s.applyValueDelete(o)
	case op.DeleteAttribute:
		s.applyAttrDelete(o)
	case op.RenameEntry:
		s.applyRename(o)
	default:
		violation("unknown operation kind %s", o.Kind)
	}
}

func (s *State) applyAdd(o op.Operation) {
	if o.Attr == op.SV {
		v := s.SV.lookup(o.Value)
		if v == nil {
			tmp := newValueState(o.Value)
			v = &tmp
		}
		if v.PresenceCSN.Before(o.CSN) {
			v.PresenceCSN = o.CSN
		}
		s.resolveSV(v)
		return
	}

	v := &s.MV.Values[o.Value]
	if v.PresenceCSN.Before(o.CSN) {
		v.PresenceCSN = o.CSN
		s.resolveMV(v)
	}
}

// A single-valued attribute holds one value, so deleting its value deletes
// the attribute.
func (s *State) applyValueDelete(o op.Operation) {
	if o.Attr == op.SV {
		s.applyAttrDelete(o)
		return
	}

	v := &s.MV.Values[o.Value]
	if v.DeleteCSN.Before(o.CSN) {
		v.DeleteCSN = o.CSN
		s.resolveMV(v)
	}
}

func (s *State) applyAttrDelete(o op.Operation) {
	if o.Attr == op.SV {
		if s.SV.DeleteCSN.Before(o.CSN) {
			s.SV.DeleteCSN = o.CSN
			s.resolveSV(nil)
		}
		return
	}

	if s.MV.DeleteCSN.Before(o.CSN) {
		s.MV.DeleteCSN = o.CSN
		for i := range s.MV.Values {
			s.resolveMV(&s.MV.Values[i])
		}
	}
}

func (s *State) applyRename(o op.Operation) {
	if o.OldRDN != nil && *o.OldRDN == o.Target() {
		violation("rename at %s deletes its own target %s", o.CSN, o.Attr)
	}

	idx := s.History.insert(DnRecord{CSN: o.CSN, Attr: o.Attr, Value: o.Value})

	if o.OldRDN != nil {
		s.applyValueDelete(op.Delete(o.CSN, o.OldRDN.Attr, o.OldRDN.Value))
	}

	// the value named just before the new record may have lost its protection
	if idx > 0 {
		prev := s.History[idx-1]
		if prev.Attr == op.SV {
			if v := s.SV.lookup(prev.Value); v != nil {
				s.resolveSV(v)
			}
		} else {
			s.resolveMV(&s.MV.Values[prev.Value])
		}
	}

	if o.Attr == op.SV {
		v := s.SV.lookup(o.Value)
		if v == nil {
			tmp := newValueState(o.Value)
			v = &tmp
		}
		raisePresence(v, o.CSN)
		s.resolveSV(v)
		return
	}

	v := &s.MV.Values[o.Value]
	raisePresence(v, o.CSN)
	s.resolveMV(v)
}

func raisePresence(v *ValueState, c csn.CSN) {
	if v.PresenceCSN.IsAbsent() || v.PresenceCSN.Before(c) {
		v.PresenceCSN = c
	}
}
