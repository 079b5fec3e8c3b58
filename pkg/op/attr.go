package op

import "fmt"

// Attr selects one of the two attributes an entry carries.
type Attr uint8

const (
	MV Attr = iota
	SV
)

const (
	SVAttrName = "sv_attr"
	MVAttrName = "mv_attr"
)

func (a Attr) String() string {
	switch a {
	case SV:
		return SVAttrName
	case MV:
		return MVAttrName
	}
	return fmt.Sprintf("attr(%d)", uint8(a))
}

func (a Attr) Valid() bool {
	return a == SV || a == MV
}

func ParseAttr(name string) (Attr, error) {
	switch name {
	case SVAttrName:
		return SV, nil
	case MVAttrName:
		return MV, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
}

// Kind is the operation type.
type Kind uint8

const (
	AddValue Kind = iota
	DeleteValue
	RenameEntry
	DeleteAttribute

	kindCount
)

func (k Kind) String() string {
	switch k {
	case AddValue:
		return "add"
	case DeleteValue:
		return "delete-value"
	case RenameEntry:
		return "rename"
	case DeleteAttribute:
		return "delete-attribute"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k Kind) Valid() bool {
	return k < kindCount
}
