// Package eval measures how well a regression model's scores match the observed labels.
package eval

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"math"
)

// Evaluator is an interface for scoring predictions against the observed values.
type Evaluator interface {
	Score(actual, predicted []float64) float64
	Name() string
}

type rSquared struct{}
type meanSquaredError struct{}
type rootMeanSquaredError struct{}
type meanAbsoluteError struct{}

var (
	// RSquared is the coefficient of determination.
	RSquared = rSquared{}
	// MeanSquaredError is the average squared residual.
	MeanSquaredError = meanSquaredError{}
	// RootMeanSquaredError is the square root of MeanSquaredError, in label units.
	RootMeanSquaredError = rootMeanSquaredError{}
	// MeanAbsoluteError is the average absolute residual.
	MeanAbsoluteError = meanAbsoluteError{}
)

// Score is 1 - SSres/SStot. When the labels are constant SStot is zero; the score is then 1
// for a perfect fit and 0 otherwise.
func (rSquared) Score(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	if floats.Max(actual) == floats.Min(actual) {
		if floats.Distance(actual, predicted, 2) == 0 {
			return 1
		}
		return 0
	}
	return stat.RSquaredFrom(predicted, actual, nil)
}

func (rSquared) Name() string {
	return "RSquared"
}

func (meanSquaredError) Score(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	d := floats.Distance(actual, predicted, 2)
	return d * d / float64(len(actual))
}

func (meanSquaredError) Name() string {
	return "MeanSquaredError"
}

func (rootMeanSquaredError) Score(actual, predicted []float64) float64 {
	return math.Sqrt(MeanSquaredError.Score(actual, predicted))
}

func (rootMeanSquaredError) Name() string {
	return "RootMeanSquaredError"
}

func (meanAbsoluteError) Score(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	return floats.Distance(actual, predicted, 1) / float64(len(actual))
}

func (meanAbsoluteError) Name() string {
	return "MeanAbsoluteError"
}

// Evaluate scores the predictions with every evaluator, keyed by evaluator name.
func Evaluate(evaluators []Evaluator, actual, predicted []float64) map[string]float64 {
	scores := make(map[string]float64, len(evaluators))
	for _, e := range evaluators {
		scores[e.Name()] = e.Score(actual, predicted)
	}
	return scores
}
