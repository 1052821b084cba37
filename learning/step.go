package learning

import (
	"fmt"
	"github.com/ProfessorX0227/fare/boost"
)

// Columns produced and consumed by the regression trainer.
const (
	LabelColumn    = "Label"
	FeaturesColumn = "Features"
	ScoreColumn    = "Score"
)

// StepKind tags the variant of a pipeline step.
type StepKind uint8

const (
	// CopyStep copies a column under a new name.
	CopyStep StepKind = iota + 1
	// OneHotStep encodes a text column as an indicator vector.
	OneHotStep
	// ConcatStep joins numeric columns into one vector.
	ConcatStep
	// TrainStep fits a boosted regression tree ensemble from Label and Features and scores into Score.
	TrainStep
)

func (k StepKind) String() string {
	switch k {
	case CopyStep:
		return "copy"
	case OneHotStep:
		return "one-hot"
	case ConcatStep:
		return "concatenate"
	case TrainStep:
		return "fast-tree"
	}
	return fmt.Sprintf("step(%d)", k)
}

// Step is a declarative pipeline step. Only the fields relevant to Kind are set.
type Step struct {
	Kind    StepKind
	Output  string
	Inputs  []string
	Trainer []boost.Option
}

// CopyColumns declares that input is copied to output.
func CopyColumns(output, input string) Step {
	return Step{Kind: CopyStep, Output: output, Inputs: []string{input}}
}

// OneHotEncoding declares that the text column input is encoded into output. The vocabulary
// is learnt at fit time; values not seen then set the first, unknown, slot.
func OneHotEncoding(output, input string) Step {
	return Step{Kind: OneHotStep, Output: output, Inputs: []string{input}}
}

// Concatenate declares that the numeric inputs are joined, in order, into the vector output.
func Concatenate(output string, inputs ...string) Step {
	return Step{Kind: ConcatStep, Output: output, Inputs: inputs}
}

// FastTree declares a boosted regression tree trainer reading LabelColumn and FeaturesColumn
// and writing ScoreColumn.
func FastTree(options ...boost.Option) Step {
	return Step{
		Kind:    TrainStep,
		Output:  ScoreColumn,
		Inputs:  []string{LabelColumn, FeaturesColumn},
		Trainer: options,
	}
}

// Estimator is an ordered, declarative sequence of steps. It has no effect until fitted.
type Estimator []Step

// Append returns a new estimator with step added at the end; e is left unchanged.
func (e Estimator) Append(step Step) Estimator {
	out := make(Estimator, len(e), len(e)+1)
	copy(out, e)
	return append(out, step)
}
