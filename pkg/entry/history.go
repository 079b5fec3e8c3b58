package entry

import (
	"slices"

	"dnpsim/pkg/csn"
	"dnpsim/pkg/op"
)

// DnRecord states that from CSN on, the entry was named by Attr=Value.
type DnRecord struct {
	CSN   csn.CSN
	Attr  op.Attr
	Value op.ValueID
}

// DnHistory is ordered by CSN ascending. Records are only ever inserted.
type DnHistory []DnRecord

// insert places r after every record with CSN <= r.CSN and returns its index.
func (h *DnHistory) insert(r DnRecord) int {
	i := 0
	for i < len(*h) && !(*h)[i].CSN.After(r.CSN) {
		i++
	}
	*h = slices.Insert(*h, i, r)
	return i
}

// At returns the record in force at c. ok is false when c precedes the
// whole history.
func (h DnHistory) At(c csn.CSN) (rec DnRecord, ok bool) {
	for _, r := range h {
		if r.CSN.After(c) {
			break
		}
		rec, ok = r, true
	}
	return rec, ok
}

// DistinguishedAt reports whether attr=id named the entry as of c.
func (s *State) DistinguishedAt(attr op.Attr, id op.ValueID, c csn.CSN) bool {
	r, ok := s.History.At(c)
	return ok && r.Attr == attr && r.Value == id
}
