package verify

import (
	"fmt"
	"strconv"

	"dnpsim/pkg/csn"
	"dnpsim/pkg/entry"
	"dnpsim/pkg/op"
)

// Mismatch is one field that differs between the first replay and another.
// Field is a dotted path such as "mv.values[u].present" or "history[1].csn".
type Mismatch struct {
	Field string `json:"field"`
	First string `json:"first"`
	Other string `json:"other"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s in the first run, %s in this run", m.Field, m.First, m.Other)
}

type comparer struct {
	cat *op.Catalog
	out []Mismatch
}

func (c *comparer) add(field, first, other string) {
	c.out = append(c.out, Mismatch{Field: field, First: first, Other: other})
}

func (c *comparer) bool(field string, a, b bool) {
	if a != b {
		c.add(field, strconv.FormatBool(a), strconv.FormatBool(b))
	}
}

func (c *comparer) csn(field string, a, b csn.CSN) {
	if a != b {
		c.add(field, a.String(), b.String())
	}
}

func (c *comparer) value(field string, a, b op.ValueID) {
	if a != b {
		c.add(field, c.cat.Name(a), c.cat.Name(b))
	}
}

func (c *comparer) attr(field string, a, b op.Attr) {
	if a != b {
		c.add(field, a.String(), b.String())
	}
}

// Quick compares what a client would observe: attribute presence, the
// single value while the attribute is present, and the presence of every
// multi-valued value.
func Quick(a, b *entry.State) []Mismatch {
	c := &comparer{cat: a.Catalog}
	c.quick(a, b)
	return c.out
}

func (c *comparer) quick(a, b *entry.State) {
	c.bool("sv.present", a.SV.Present, b.SV.Present)
	if a.SV.Present && b.SV.Present {
		c.value("sv.current.id", a.SV.Current.ID, b.SV.Current.ID)
	}

	c.bool("mv.present", a.MV.Present, b.MV.Present)
	for i := range a.MV.Values {
		c.bool(c.mvField(i, "present"), a.MV.Values[i].Present, b.MV.Values[i].Present)
	}
}

// Full compares everything Quick does plus the dn history and every CSN the
// resolver keeps.
func Full(a, b *entry.State) []Mismatch {
	c := &comparer{cat: a.Catalog}
	c.quick(a, b)
	c.bookkeeping(a, b)
	return c.out
}

func (c *comparer) bookkeeping(a, b *entry.State) {
	if len(a.History) != len(b.History) {
		c.add("history.len", strconv.Itoa(len(a.History)), strconv.Itoa(len(b.History)))
	}
	for i := range min(len(a.History), len(b.History)) {
		ra, rb := a.History[i], b.History[i]
		c.csn(fmt.Sprintf("history[%d].csn", i), ra.CSN, rb.CSN)
		c.attr(fmt.Sprintf("history[%d].attr", i), ra.Attr, rb.Attr)
		c.value(fmt.Sprintf("history[%d].value", i), ra.Value, rb.Value)
	}

	c.csn("sv.delete", a.SV.DeleteCSN, b.SV.DeleteCSN)
	if !(a.SV.Present && b.SV.Present) {
		c.value("sv.current.id", a.SV.Current.ID, b.SV.Current.ID)
	}
	c.valueState("sv.current", a.SV.Current, b.SV.Current)

	switch pa, pb := a.SV.Pending, b.SV.Pending; {
	case pa == nil && pb == nil:
	case pa == nil || pb == nil:
		c.add("sv.pending", pendingString(c.cat, pa), pendingString(c.cat, pb))
	default:
		c.value("sv.pending.id", pa.ID, pb.ID)
		c.valueState("sv.pending", *pa, *pb)
	}

	c.csn("mv.delete", a.MV.DeleteCSN, b.MV.DeleteCSN)
	for i := range a.MV.Values {
		c.csn(c.mvField(i, "presence"), a.MV.Values[i].PresenceCSN, b.MV.Values[i].PresenceCSN)
		c.csn(c.mvField(i, "delete"), a.MV.Values[i].DeleteCSN, b.MV.Values[i].DeleteCSN)
	}
}

func (c *comparer) valueState(prefix string, a, b entry.ValueState) {
	c.csn(prefix+".presence", a.PresenceCSN, b.PresenceCSN)
	c.csn(prefix+".delete", a.DeleteCSN, b.DeleteCSN)
}

func (c *comparer) mvField(i int, field string) string {
	return fmt.Sprintf("mv.values[%s].%s", c.cat.Name(op.ValueID(i)), field)
}

func pendingString(cat *op.Catalog, v *entry.ValueState) string {
	if v == nil {
		return "none"
	}
	return cat.Name(v.ID)
}

// Classify compares other against first. On divergence only the presence
// mismatches are returned.
func Classify(first, other *entry.State) (Outcome, []Mismatch) {
	if q := Quick(first, other); len(q) > 0 {
		return Diverged, q
	}
	if f := Full(first, other); len(f) > 0 {
		return PresenceConverged, f
	}
	return Converged, nil
}
