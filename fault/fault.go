// Package fault classifies the errors raised while loading data, training, evaluating,
// persisting and predicting with a fare model.
package fault

import (
	"fmt"
	"github.com/pkg/errors"
)

// Kind identifies the class of failure an error belongs to.
type Kind uint8

const (
	// Unknown is the zero kind; errors not created by this package report it.
	Unknown Kind = iota
	// IO indicates a file is missing, unreadable or unwritable.
	IO
	// Schema indicates a row does not match the declared column types or count.
	Schema
	// Training indicates the underlying fit procedure failed.
	Training
	// Evaluation indicates the held-out data cannot be scored by the model.
	Evaluation
	// Deserialization indicates a model file is corrupt or of an incompatible format.
	Deserialization
	// Prediction indicates a single record could not be scored.
	Prediction
	// Config indicates the configuration is invalid.
	Config
)

var kindNames = [...]string{
	Unknown:         "unknown",
	IO:              "io",
	Schema:          "schema",
	Training:        "training",
	Evaluation:      "evaluation",
	Deserialization: "deserialization",
	Prediction:      "prediction",
	Config:          "config",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Error is a classified error. Op names the operation that failed (e.g. "table.Load").
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Cause lets errors.Cause from github.com/pkg/errors see through an Error.
func (e *Error) Cause() error {
	return e.Err
}

// New creates a classified error from a formatted message, recording a stack trace.
func New(kind Kind, op string, format string, args ...interface{}) error {
	return &Error{
		Kind: kind,
		Op:   op,
		Err:  errors.Errorf(format, args...),
	}
}

// Wrap classifies err. A nil err stays nil. If err is already classified, its kind is kept
// and only the operation context is added.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return &Error{Kind: fe.Kind, Op: op, Err: err}
	}
	return &Error{
		Kind: kind,
		Op:   op,
		Err:  errors.WithStack(err),
	}
}

// KindOf reports the kind of the outermost classified error in err's chain.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
