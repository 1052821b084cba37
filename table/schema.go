package table

import (
	"fmt"
	"github.com/pkg/errors"
	"strings"
)

// Field maps the column at position Index of a delimited file to a named, typed column.
type Field struct {
	Index int
	Name  string
	Kind  Kind
}

// Schema is an ordered list of fields. Mapping is positional: header names in a file are
// never consulted.
type Schema []Field

// Validate checks the schema can be used to load a file.
func (s Schema) Validate() error {
	if len(s) == 0 {
		return errors.New("schema has no fields")
	}
	seenName := make(map[string]bool, len(s))
	seenIndex := make(map[int]bool, len(s))
	for _, f := range s {
		switch {
		case len(f.Name) == 0:
			return errors.Errorf("field at index %d has no name", f.Index)
		case f.Index < 0:
			return errors.Errorf("field %q has negative index %d", f.Name, f.Index)
		case f.Kind == Vector:
			return errors.Errorf("field %q: vector fields cannot be loaded from text", f.Name)
		case seenName[f.Name]:
			return errors.Errorf("duplicate field name %q", f.Name)
		case seenIndex[f.Index]:
			return errors.Errorf("duplicate field index %d", f.Index)
		}
		seenName[f.Name] = true
		seenIndex[f.Index] = true
	}
	return nil
}

// Width is the number of columns a row must have to satisfy the schema.
func (s Schema) Width() int {
	w := 0
	for _, f := range s {
		if f.Index+1 > w {
			w = f.Index + 1
		}
	}
	return w
}

// Conforms checks that t has every field of s, by name and kind. Extra columns are allowed.
func (s Schema) Conforms(t *Table) error {
	var problems []string
	for _, f := range s {
		c, ok := t.Column(f.Name)
		if !ok {
			problems = append(problems, fmt.Sprintf("missing column %q", f.Name))
			continue
		}
		if c.Kind != f.Kind {
			problems = append(problems, fmt.Sprintf("column %q is %s, expected %s", f.Name, c.Kind, f.Kind))
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func (s Schema) String() string {
	parts := make([]string, len(s))
	for i, f := range s {
		parts[i] = fmt.Sprintf("%d:%s(%s)", f.Index, f.Name, f.Kind)
	}
	return strings.Join(parts, ", ")
}
