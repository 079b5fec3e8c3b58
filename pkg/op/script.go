package op

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"dnpsim/pkg/csn"
)

// Script format:
//
//	<operation count>
//	add <attribute> <value>
//	delete <attribute>[ <value>]
//	rename to <attribute> <value>[ delete <attribute> <value>]
//
// Operations get CSNs 1..N in file order. Blank lines and lines starting
// with '#' are skipped.

// ParseScript reads an operation script. maxOps bounds the declared count;
// zero disables the bound.
func ParseScript(r io.Reader, cat *Catalog, maxOps int) ([]Operation, error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	count := -1
	var ops []Operation

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if count < 0 {
			n, err := strconv.Atoi(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: count %q", lineNo, ErrInvalidScript, line)
			}
			if n < 1 || (maxOps > 0 && n > maxOps) {
				return nil, fmt.Errorf("line %d: %w: %d, must be between 1 and %d", lineNo, ErrOperationCount, n, maxOps)
			}
			count = n
			ops = make([]Operation, 0, n)
			continue
		}

		if len(ops) == count {
			return nil, fmt.Errorf("line %d: %w: more than %d operations", lineNo, ErrOperationCount, count)
		}
		o, err := parseOperation(line, csn.CSN(len(ops)+1), cat)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		ops = append(ops, o)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if count < 0 {
		return nil, fmt.Errorf("%w: missing operation count", ErrInvalidScript)
	}
	if len(ops) != count {
		return nil, fmt.Errorf("%w: declared %d, found %d", ErrOperationCount, count, len(ops))
	}
	return ops, nil
}

func parseOperation(line string, c csn.CSN, cat *Catalog) (Operation, error) {
	f := strings.Fields(line)

	switch {
	case f[0] == "add" && len(f) == 3:
		rdn, err := parseRDN(f[1], f[2], cat)
		if err != nil {
			return Operation{}, err
		}
		return Add(c, rdn.Attr, rdn.Value), nil

	case f[0] == "delete" && len(f) == 2:
		attr, err := ParseAttr(f[1])
		if err != nil {
			return Operation{}, err
		}
		return DeleteAttr(c, attr), nil

	case f[0] == "delete" && len(f) == 3:
		rdn, err := parseRDN(f[1], f[2], cat)
		if err != nil {
			return Operation{}, err
		}
		return Delete(c, rdn.Attr, rdn.Value), nil

	case f[0] == "rename" && len(f) >= 4 && f[1] == "to":
		rdn, err := parseRDN(f[2], f[3], cat)
		if err != nil {
			return Operation{}, err
		}
		o := Rename(c, rdn.Attr, rdn.Value, nil)

		switch {
		case len(f) == 4:
		case len(f) == 7 && f[4] == "delete":
			old, err := parseRDN(f[5], f[6], cat)
			if err != nil {
				return Operation{}, err
			}
			o.OldRDN = &old
		default:
			return Operation{}, fmt.Errorf("%w: %q", ErrInvalidScript, line)
		}

		if err := o.Validate(cat); err != nil {
			return Operation{}, err
		}
		return o, nil
	}

	return Operation{}, fmt.Errorf("%w: %q", ErrInvalidScript, line)
}

func parseRDN(attrName, valueName string, cat *Catalog) (RDN, error) {
	attr, err := ParseAttr(attrName)
	if err != nil {
		return RDN{}, err
	}
	value, err := cat.Lookup(valueName)
	if err != nil {
		return RDN{}, err
	}
	return RDN{Attr: attr, Value: value}, nil
}

// ScriptLine renders the operation in script syntax.
func (o Operation) ScriptLine(cat *Catalog) string {
	switch o.Kind {
	case AddValue:
		return fmt.Sprintf("add %s %s", o.Attr, cat.Name(o.Value))
	case DeleteValue:
		return fmt.Sprintf("delete %s %s", o.Attr, cat.Name(o.Value))
	case DeleteAttribute:
		return fmt.Sprintf("delete %s", o.Attr)
	case RenameEntry:
		s := fmt.Sprintf("rename to %s %s", o.Attr, cat.Name(o.Value))
		if o.OldRDN != nil {
			s += fmt.Sprintf(" delete %s %s", o.OldRDN.Attr, cat.Name(o.OldRDN.Value))
		}
		return s
	}
	return ""
}

// FormatScript writes ops in script syntax. Operations must be in CSN
// order for the output to parse back to the same CSNs.
func FormatScript(w io.Writer, ops []Operation, cat *Catalog) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d\n", len(ops)); err != nil {
		return err
	}
	for _, o := range ops {
		if _, err := fmt.Fprintln(bw, o.ScriptLine(cat)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Script returns ops in script syntax.
func Script(ops []Operation, cat *Catalog) string {
	var sb strings.Builder
	_ = FormatScript(&sb, ops, cat)
	return sb.String()
}
