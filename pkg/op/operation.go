package op

import (
	"fmt"

	"dnpsim/pkg/csn"
	"dnpsim/pkg/structs"
)

// RDN names one attribute value used as (part of) the entry's relative name.
type RDN struct {
	Attr  Attr
	Value ValueID
}

// Operation is one replicated change to the entry. Value is ignored for
// DeleteAttribute; OldRDN is only meaningful for RenameEntry.
type Operation struct {
	CSN    csn.CSN
	Kind   Kind
	Attr   Attr
	Value  ValueID
	OldRDN *RDN
}

func Add(c csn.CSN, attr Attr, value ValueID) Operation {
	return Operation{CSN: c, Kind: AddValue, Attr: attr, Value: value}
}

func Delete(c csn.CSN, attr Attr, value ValueID) Operation {
	return Operation{CSN: c, Kind: DeleteValue, Attr: attr, Value: value}
}

func DeleteAttr(c csn.CSN, attr Attr) Operation {
	return Operation{CSN: c, Kind: DeleteAttribute, Attr: attr}
}

// Rename moves the entry's RDN to attr=value; oldRDN, when non-nil, is
// removed at the same CSN.
func Rename(c csn.CSN, attr Attr, value ValueID, oldRDN *RDN) Operation {
	return Operation{CSN: c, Kind: RenameEntry, Attr: attr, Value: value, OldRDN: oldRDN}
}

// Target is the attribute value the operation acts on.
func (o Operation) Target() RDN {
	return RDN{Attr: o.Attr, Value: o.Value}
}

func (o Operation) Validate(cat *Catalog) error {
	if !o.Kind.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKind, uint8(o.Kind))
	}
	if !o.CSN.After(csn.Initial) {
		return fmt.Errorf("%w: %s", ErrInvalidCSN, o.CSN)
	}
	if !o.Attr.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownAttribute, o.Attr)
	}
	if o.Kind != DeleteAttribute && !cat.Contains(o.Value) {
		return fmt.Errorf("%w: %d", ErrUnknownValue, int(o.Value))
	}

	if o.OldRDN == nil {
		return nil
	}
	if o.Kind != RenameEntry {
		return ErrUnexpectedOldRDN
	}
	if !o.OldRDN.Attr.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownAttribute, o.OldRDN.Attr)
	}
	if !cat.Contains(o.OldRDN.Value) {
		return fmt.Errorf("%w: %d", ErrUnknownValue, int(o.OldRDN.Value))
	}
	if *o.OldRDN == o.Target() {
		return ErrOldRDNIsTarget
	}
	return nil
}

// Validate checks every operation and that CSNs are unique.
func Validate(ops []Operation, cat *Catalog) error {
	seen := structs.NewSet[csn.CSN]()
	for i, o := range ops {
		if err := o.Validate(cat); err != nil {
			return fmt.Errorf("operation %d: %w", i+1, err)
		}
		if seen.Contains(o.CSN) {
			return fmt.Errorf("operation %d: %w: %s", i+1, ErrDuplicateCSN, o.CSN)
		}
		seen.Add(o.CSN)
	}
	return nil
}

// Describe renders the operation for traces.
func (o Operation) Describe(cat *Catalog) string {
	switch o.Kind {
	case AddValue:
		return fmt.Sprintf("%s add value %s to %s", o.CSN, cat.Name(o.Value), o.Attr)
	case DeleteValue:
		return fmt.Sprintf("%s delete value %s from %s", o.CSN, cat.Name(o.Value), o.Attr)
	case DeleteAttribute:
		return fmt.Sprintf("%s delete %s attribute", o.CSN, o.Attr)
	case RenameEntry:
		s := fmt.Sprintf("%s rename entry to %s=%s", o.CSN, o.Attr, cat.Name(o.Value))
		if o.OldRDN != nil {
			s += fmt.Sprintf(" delete old rdn %s=%s", o.OldRDN.Attr, cat.Name(o.OldRDN.Value))
		}
		return s
	}
	return fmt.Sprintf("%s %s", o.CSN, o.Kind)
}
