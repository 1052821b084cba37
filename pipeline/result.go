// Package pipeline defines the results a fare pipeline reports as it runs.
package pipeline

import (
	"github.com/ProfessorX0227/fare/eval"
	"github.com/ProfessorX0227/fare/trip"
)

// ResultType is the type of result being returned through a pipeline channel.
type ResultType uint8

const (
	// Training indicates the training data is loaded and fitting has started.
	Training ResultType = iota
	// Trained indicates a model has been fitted.
	Trained
	// Saved indicates the model has been written to Path.
	Saved
	// Evaluation is an evaluation result on the held-out data.
	Evaluation
	// Prediction is the prediction of the reloaded model for a single record.
	Prediction
	// Error indicates an error was raised.
	Error
	// Done indicates the pipeline has completed.
	Done
)

func (t ResultType) String() string {
	switch t {
	case Training:
		return "training"
	case Trained:
		return "trained"
	case Saved:
		return "saved"
	case Evaluation:
		return "evaluation"
	case Prediction:
		return "prediction"
	case Error:
		return "error"
	case Done:
		return "done"
	}
	return "unknown"
}

// Result is the output of a fare pipeline. Only the fields relevant to Type are set.
type Result struct {
	Type ResultType

	// Rows is the number of training rows (Training).
	Rows int
	// ModelID identifies the fitted model (Trained, Saved).
	ModelID string
	// Path is where the model was written (Saved).
	Path string

	Metrics eval.Metrics
	// Evaluations holds Metrics rendered by each of the pipeline's formatters.
	Evaluations []string

	Record     trip.Record
	Prediction trip.FarePrediction

	Error error
}
