package eval

import (
	"github.com/ProfessorX0227/fare/fault"
	"github.com/ProfessorX0227/fare/table"
	"github.com/pkg/errors"
	"math"
)

// Metrics summarises a regression evaluation.
type Metrics struct {
	RSquared             float64
	RootMeanSquaredError float64
	MeanSquaredError     float64
	MeanAbsoluteError    float64
	// LossFunction is the mean of the squared loss the trainer minimises.
	LossFunction float64
	// Count is the number of rows scored; rows without a label are skipped.
	Count int
}

// Transformer scores a table by adding columns to a copy of it.
type Transformer interface {
	Transform(t *table.Table) (*table.Table, error)
}

// Regression transforms t with m and compares the score column to the label column.
// Failures are fault.Evaluation errors.
func Regression(m Transformer, t *table.Table, label, score string) (Metrics, error) {
	const op = "eval.Regression"
	if t == nil || t.Len() == 0 {
		return Metrics{}, fault.New(fault.Evaluation, op, "evaluation table is empty")
	}
	scored, err := m.Transform(t)
	if err != nil {
		return Metrics{}, fault.Wrap(fault.Evaluation, op, err)
	}

	actual, err := scalar(scored, label)
	if err != nil {
		return Metrics{}, fault.Wrap(fault.Evaluation, op, err)
	}
	predicted, err := scalar(scored, score)
	if err != nil {
		return Metrics{}, fault.Wrap(fault.Evaluation, op, err)
	}

	var a, p []float64
	for i := range actual {
		if math.IsNaN(actual[i]) {
			continue
		}
		a = append(a, actual[i])
		p = append(p, predicted[i])
	}
	if len(a) == 0 {
		return Metrics{}, fault.New(fault.Evaluation, op, "column %q has no values", label)
	}

	scores := Evaluate([]Evaluator{RSquared, MeanSquaredError, RootMeanSquaredError, MeanAbsoluteError}, a, p)
	return Metrics{
		RSquared:             scores[RSquared.Name()],
		RootMeanSquaredError: scores[RootMeanSquaredError.Name()],
		MeanSquaredError:     scores[MeanSquaredError.Name()],
		MeanAbsoluteError:    scores[MeanAbsoluteError.Name()],
		LossFunction:         scores[MeanSquaredError.Name()],
		Count:                len(a),
	}, nil
}

func scalar(t *table.Table, name string) ([]float64, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, errors.Errorf("no column %q", name)
	}
	if c.Kind != table.Scalar {
		return nil, errors.Errorf("column %q is %s, expected scalar", name, c.Kind)
	}
	return c.Scalar, nil
}
