// Package learning fits declarative feature pipelines ending in a regression trainer, and
// saves and loads the fitted models.
package learning

import (
	"github.com/ProfessorX0227/fare/boost"
	"github.com/ProfessorX0227/fare/fault"
	"github.com/ProfessorX0227/fare/table"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"time"
)

// Transformer is anything that can score a table, adding columns to a copy of it.
type Transformer interface {
	Transform(t *table.Table) (*table.Table, error)
}

// Fitted is a step after fitting. Like Step it is a tagged variant: Vocabulary is set for
// OneHotStep, Widths for ConcatStep and Ensemble for TrainStep.
type Fitted struct {
	Kind       StepKind
	Output     string
	Inputs     []string
	Vocabulary []string
	Widths     []int
	Ensemble   *boost.Ensemble
}

// Meta describes a fitted model.
type Meta struct {
	ID      string
	Created time.Time
	Version int
	// Input lists the columns the model reads from the tables it transforms.
	Input table.Schema
}

// Model is a fitted pipeline. It is opaque to callers, who only Transform tables with it.
type Model struct {
	Meta  Meta
	Steps []Fitted
}

// Transform applies every fitted step in order to a copy of t.
func (m *Model) Transform(t *table.Table) (*table.Table, error) {
	if m == nil {
		return nil, errors.New("no model")
	}
	if t == nil {
		return nil, errors.New("no table")
	}
	if err := m.Meta.Input.Conforms(t); err != nil {
		return nil, errors.Wrap(err, "table does not match the model's input schema")
	}
	cur := t.Clone()
	for i, f := range m.Steps {
		if err := f.transform(cur); err != nil {
			return nil, errors.Wrapf(err, "step %d (%s)", i, f.Kind)
		}
	}
	return cur, nil
}

// Fit folds the estimator over t: each step is fitted on the output of the steps before it.
// Failures are fault.Training errors.
func (e Estimator) Fit(t *table.Table) (*Model, error) {
	const op = "learning.Fit"
	if t == nil || t.Len() == 0 {
		return nil, fault.New(fault.Training, op, "training table is empty")
	}
	trainer := false
	for _, s := range e {
		if s.Kind == TrainStep {
			trainer = true
		}
	}
	if !trainer {
		return nil, fault.New(fault.Training, op, "estimator has no trainer step")
	}

	input, err := e.input(t)
	if err != nil {
		return nil, fault.Wrap(fault.Training, op, err)
	}

	m := &Model{
		Meta: Meta{
			ID:      uuid.New().String(),
			Created: time.Now().UTC(),
			Version: FormatVersion,
			Input:   input,
		},
	}

	cur := t.Clone()
	for i, s := range e {
		f, err := fit(s, cur)
		if err != nil {
			return nil, fault.Wrap(fault.Training, op, errors.Wrapf(err, "step %d (%s)", i, s.Kind))
		}
		m.Steps = append(m.Steps, f)
		if i == len(e)-1 {
			break
		}
		if err := f.transform(cur); err != nil {
			return nil, fault.Wrap(fault.Training, op, errors.Wrapf(err, "step %d (%s)", i, s.Kind))
		}
	}
	return m, nil
}

// input finds the columns of t the estimator reads before any step produces them.
func (e Estimator) input(t *table.Table) (table.Schema, error) {
	produced := make(map[string]bool)
	added := make(map[string]bool)
	var s table.Schema
	for _, step := range e {
		for _, name := range step.Inputs {
			if produced[name] || added[name] {
				continue
			}
			c, ok := t.Column(name)
			if !ok {
				return nil, errors.Errorf("%s step reads column %q, which does not exist", step.Kind, name)
			}
			added[name] = true
			s = append(s, table.Field{Index: len(s), Name: name, Kind: c.Kind})
		}
		produced[step.Output] = true
	}
	return s, nil
}

func fit(s Step, t *table.Table) (Fitted, error) {
	f := Fitted{
		Kind:   s.Kind,
		Output: s.Output,
		Inputs: s.Inputs,
	}
	if len(s.Output) == 0 {
		return f, errors.New("step has no output column")
	}
	columns := make([]*table.Column, len(s.Inputs))
	for i, name := range s.Inputs {
		c, ok := t.Column(name)
		if !ok {
			return f, errors.Errorf("no column %q", name)
		}
		columns[i] = c
	}

	switch s.Kind {
	case CopyStep:
		if len(columns) != 1 {
			return f, errors.Errorf("copy takes one input, got %d", len(columns))
		}
	case OneHotStep:
		if len(columns) != 1 {
			return f, errors.Errorf("one-hot encoding takes one input, got %d", len(columns))
		}
		vocab, err := vocabulary(columns[0])
		if err != nil {
			return f, err
		}
		f.Vocabulary = vocab
	case ConcatStep:
		if len(columns) == 0 {
			return f, errors.New("concatenate needs at least one input")
		}
		f.Widths = make([]int, len(columns))
		for i, c := range columns {
			if c.Kind == table.Text {
				return f, errors.Errorf("column %q is text and cannot be concatenated", c.Name)
			}
			f.Widths[i] = c.Width
		}
	case TrainStep:
		if len(columns) != 2 {
			return f, errors.Errorf("trainer takes label and features inputs, got %d", len(columns))
		}
		label, features := columns[0], columns[1]
		if label.Kind != table.Scalar {
			return f, errors.Errorf("label column %q is %s, expected scalar", label.Name, label.Kind)
		}
		if features.Kind != table.Vector {
			return f, errors.Errorf("features column %q is %s, expected vector", features.Name, features.Kind)
		}
		ensemble, err := boost.Train(features.Vector, label.Scalar, s.Trainer...)
		if err != nil {
			return f, err
		}
		f.Ensemble = ensemble
	default:
		return f, errors.Errorf("unknown step kind %d", s.Kind)
	}
	return f, nil
}

// transform adds the step's output column to t.
func (f Fitted) transform(t *table.Table) error {
	columns := make([]*table.Column, len(f.Inputs))
	for i, name := range f.Inputs {
		c, ok := t.Column(name)
		if !ok {
			return errors.Errorf("no column %q", name)
		}
		columns[i] = c
	}

	var out *table.Column
	switch f.Kind {
	case CopyStep:
		out = columns[0].Rename(f.Output)
	case OneHotStep:
		var err error
		out, err = encode(columns[0], f.Vocabulary, f.Output)
		if err != nil {
			return err
		}
	case ConcatStep:
		width := 0
		for i, c := range columns {
			if c.Kind == table.Text || c.Width != f.Widths[i] {
				return errors.Errorf("column %q changed shape since fitting", c.Name)
			}
			width += c.Width
		}
		rows := make([][]float64, t.Len())
		for r := range rows {
			row := make([]float64, 0, width)
			for _, c := range columns {
				row, _ = c.Floats(row, r)
			}
			rows[r] = row
		}
		out = table.VectorColumn(f.Output, width, rows)
	case TrainStep:
		features := columns[1]
		if features.Kind != table.Vector {
			return errors.Errorf("features column %q is %s, expected vector", features.Name, features.Kind)
		}
		scores := make([]float64, t.Len())
		for r, x := range features.Vector {
			s, err := f.Ensemble.Predict(x)
			if err != nil {
				return errors.Wrapf(err, "row %d", r)
			}
			scores[r] = s
		}
		out = table.ScalarColumn(f.Output, scores)
	default:
		return errors.Errorf("unknown step kind %d", f.Kind)
	}
	return t.Add(out)
}
