package learning

import (
	"github.com/ProfessorX0227/fare/table"
	"github.com/pkg/errors"
)

// vocabulary lists the distinct values of a text column in first-seen order.
func vocabulary(c *table.Column) ([]string, error) {
	if c.Kind != table.Text {
		return nil, errors.Errorf("column %q is %s, one-hot encoding needs text", c.Name, c.Kind)
	}
	seen := make(map[string]bool)
	var vocab []string
	for _, v := range c.Text {
		if !seen[v] {
			seen[v] = true
			vocab = append(vocab, v)
		}
	}
	return vocab, nil
}

// encode produces one indicator vector per row. Slot 0 is the unknown bucket, slot i+1 the
// i-th vocabulary entry.
func encode(c *table.Column, vocab []string, output string) (*table.Column, error) {
	if c.Kind != table.Text {
		return nil, errors.Errorf("column %q is %s, one-hot encoding needs text", c.Name, c.Kind)
	}
	slot := make(map[string]int, len(vocab))
	for i, v := range vocab {
		slot[v] = i + 1
	}
	width := len(vocab) + 1
	rows := make([][]float64, len(c.Text))
	for i, v := range c.Text {
		row := make([]float64, width)
		row[slot[v]] = 1
		rows[i] = row
	}
	return table.VectorColumn(output, width, rows), nil
}
