package op

import (
	"fmt"
	"strings"

	"dnpsim/pkg/structs"
)

// MaxValues bounds the value identity space.
const MaxValues = 10

// ValueID indexes a value in a Catalog.
type ValueID int

// Catalog is the closed, ordered set of value identities shared by both
// attributes. It is immutable after construction.
type Catalog struct {
	names []string
	index map[string]ValueID
}

var defaultValues = []string{"v", "u", "w"}

func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultValues...)
	if err != nil {
		panic(err)
	}
	return c
}

func NewCatalog(names ...string) (*Catalog, error) {
	if len(names) == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(names) > MaxValues {
		return nil, fmt.Errorf("%w: %d > %d", ErrCatalogTooLarge, len(names), MaxValues)
	}

	seen := structs.NewSet[string]()
	c := &Catalog{
		names: make([]string, 0, len(names)),
		index: make(map[string]ValueID, len(names)),
	}
	for _, name := range names {
		if name == "" || strings.ContainsAny(name, " \t\r\n#") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidValueName, name)
		}
		if seen.Contains(name) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateValue, name)
		}
		seen.Add(name)
		c.index[name] = ValueID(len(c.names))
		c.names = append(c.names, name)
	}
	return c, nil
}

func (c *Catalog) Len() int {
	return len(c.names)
}

func (c *Catalog) Contains(id ValueID) bool {
	return id >= 0 && int(id) < len(c.names)
}

func (c *Catalog) Name(id ValueID) string {
	if !c.Contains(id) {
		return fmt.Sprintf("#%d", int(id))
	}
	return c.names[id]
}

func (c *Catalog) Lookup(name string) (ValueID, error) {
	id, ok := c.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownValue, name)
	}
	return id, nil
}

// Names returns a copy of the value names in catalog order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}
