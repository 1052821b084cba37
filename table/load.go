package table

import (
	"bufio"
	"encoding/csv"
	"github.com/ProfessorX0227/fare/fault"
	"github.com/pkg/errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Loader configures how delimited text is read.
type Loader struct {
	separator rune
	header    bool
	trim      bool
}

// Separator sets the field delimiter (default ',').
func Separator(r rune) func(*Loader) {
	return func(l *Loader) {
		l.separator = r
	}
}

// HasHeader sets whether the first row is a header to skip (default true).
func HasHeader(header bool) func(*Loader) {
	return func(l *Loader) {
		l.header = header
	}
}

// TrimSpace sets whether surrounding white space is removed from fields (default true).
func TrimSpace(trim bool) func(*Loader) {
	return func(l *Loader) {
		l.trim = trim
	}
}

func newLoader(options ...func(*Loader)) Loader {
	l := Loader{
		separator: ',',
		header:    true,
		trim:      true,
	}
	for _, option := range options {
		option(&l)
	}
	return l
}

// Load reads the delimited file at path into a table with one column per schema field.
// A missing or unreadable file is a fault.IO error; a row that does not fit the schema is a
// fault.Schema error and no table is returned.
func Load(path string, schema Schema, options ...func(*Loader)) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fault.Wrap(fault.IO, "table.Load", err)
	}
	defer f.Close()

	t, err := Read(f, schema, options...)
	if err != nil {
		return nil, fault.Wrap(fault.Schema, "table.Load", errors.Wrap(err, path))
	}
	return t, nil
}

// Read is Load over an arbitrary reader.
func Read(r io.Reader, schema Schema, options ...func(*Loader)) (*Table, error) {
	if err := schema.Validate(); err != nil {
		return nil, fault.Wrap(fault.Schema, "table.Read", err)
	}
	l := newLoader(options...)

	br := bufio.NewReader(r)
	if c, _, err := br.ReadRune(); err == nil && c != '\uFEFF' {
		_ = br.UnreadRune()
	}
	reader := csv.NewReader(br)
	reader.Comma = l.separator
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = l.trim

	width := schema.Width()
	text := make([][]string, len(schema))
	scalar := make([][]float64, len(schema))

	first := true
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, fault.Wrap(fault.Schema, "table.Read", err)
			}
			return nil, fault.Wrap(fault.IO, "table.Read", err)
		}
		if first && l.header {
			first = false
			continue
		}
		first = false

		line, _ := reader.FieldPos(0)
		if len(rec) != width {
			return nil, fault.New(fault.Schema, "table.Read", "line %d: expected %d columns, found %d", line, width, len(rec))
		}

		for i, f := range schema {
			v := rec[f.Index]
			if l.trim {
				v = strings.TrimSpace(v)
			}
			switch f.Kind {
			case Text:
				text[i] = append(text[i], v)
			case Scalar:
				x, err := parseFloat(v)
				if err != nil {
					return nil, fault.New(fault.Schema, "table.Read", "line %d: column %d (%s): %q is not a number", line, f.Index, f.Name, v)
				}
				scalar[i] = append(scalar[i], x)
			}
		}
	}

	rows := 0
	if len(schema) > 0 {
		switch schema[0].Kind {
		case Text:
			rows = len(text[0])
		default:
			rows = len(scalar[0])
		}
	}

	t := New(rows)
	for i, f := range schema {
		var c *Column
		if f.Kind == Text {
			c = TextColumn(f.Name, text[i])
		} else {
			c = ScalarColumn(f.Name, scalar[i])
		}
		if err := t.Add(c); err != nil {
			return nil, fault.Wrap(fault.Schema, "table.Read", err)
		}
	}
	return t, nil
}

// parseFloat treats an empty field as a missing value.
func parseFloat(s string) (float64, error) {
	if len(s) == 0 {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
