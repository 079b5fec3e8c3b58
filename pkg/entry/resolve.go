package entry

import (
	"dnpsim/pkg/csn"
	"dnpsim/pkg/op"
)

// purgeMV drops a value delete superseded by a later write.
func (s *State) purgeMV(v *ValueState) {
	if v.PresenceCSN.After(v.DeleteCSN) {
		v.DeleteCSN = csn.Absent
	}
}

// purgeSV drops the attribute delete once the latest known value is newer.
func (s *State) purgeSV() {
	a := &s.SV
	if a.DeleteCSN.IsAbsent() {
		return
	}

	latest := a.Current.PresenceCSN
	if a.Pending != nil {
		latest = csn.Max(latest, a.Pending.PresenceCSN)
	}
	if a.DeleteCSN.Before(latest) {
		a.DeleteCSN = csn.Absent
	}
}

func (s *State) resolveMV(v *ValueState) {
	s.purgeMV(v)

	pressure := csn.Max(v.DeleteCSN, s.MV.DeleteCSN)
	if pressure.Before(v.PresenceCSN) {
		v.Present = true
		return
	}

	// under delete pressure only the live RDN survives
	v.Present = s.DistinguishedAt(op.MV, v.ID, pressure)

	if s.MV.DeleteCSN.IsAbsent() {
		s.MV.Present = true
		return
	}
	s.MV.Present = false
	for i := range s.MV.Values {
		if s.DistinguishedAt(op.MV, s.MV.Values[i].ID, s.MV.DeleteCSN) {
			s.MV.Present = true
			break
		}
	}
}

// resolveSV settles the single-valued attribute after v changed. v is the
// current value, the pending value, a transient new value, or nil when
// only the attribute delete moved.
func (s *State) resolveSV(v *ValueState) {
	a := &s.SV
	s.purgeSV()

	switch {
	case v == nil:

	case v == &a.Current || v == a.Pending:
		if a.Pending != nil && !s.DistinguishedAt(op.SV, a.Current.ID, a.Current.PresenceCSN) {
			a.Current = *a.Pending
			a.Pending = nil
		}

	case v.PresenceCSN.Before(a.Current.PresenceCSN):
		// for a new value presence is also the CSN it became distinguished at
		if s.DistinguishedAt(op.SV, v.ID, a.Current.PresenceCSN) {
			if a.Pending != nil {
				violation("value %s at %s displaces %s while %s is pending",
					s.Catalog.Name(v.ID), v.PresenceCSN,
					s.Catalog.Name(a.Current.ID), s.Catalog.Name(a.Pending.ID))
			}
			demoted := a.Current
			a.Pending = &demoted
			a.Current = *v
		}

	default:
		switch {
		case !s.DistinguishedAt(op.SV, a.Current.ID, v.PresenceCSN):
			a.Current = *v
		case a.Pending == nil:
			p := *v
			a.Pending = &p
		case v.PresenceCSN.After(a.Pending.PresenceCSN):
			*a.Pending = *v
		}
	}

	s.purgeSV()
	a.Present = a.DeleteCSN.IsAbsent() ||
		s.DistinguishedAt(op.SV, a.Current.ID, a.DeleteCSN)
}
