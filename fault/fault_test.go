package fault_test

import (
	"github.com/ProfessorX0227/fare/fault"
	"github.com/pkg/errors"
	"os"
	"strings"
	"testing"
)

func TestWrapNil(t *testing.T) {
	if err := fault.Wrap(fault.IO, "op", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestWrapKeepsKind(t *testing.T) {
	inner := fault.New(fault.Schema, "table.Read", "line %d: bad value", 3)
	outer := fault.Wrap(fault.Training, "learning.Fit", inner)
	if !fault.Is(outer, fault.Schema) {
		t.Fatalf("expected schema kind, got %v", fault.KindOf(outer))
	}
	if !strings.Contains(outer.Error(), "line 3: bad value") {
		t.Errorf("message lost: %q", outer.Error())
	}
}

func TestWrapUnwrapsToCause(t *testing.T) {
	_, statErr := os.Open("does/not/exist")
	err := fault.Wrap(fault.IO, "table.Load", statErr)
	if !fault.Is(err, fault.IO) {
		t.Fatalf("expected io kind, got %v", fault.KindOf(err))
	}
	if !os.IsNotExist(errors.Cause(err)) {
		t.Errorf("expected the cause to be a not-exist error, got %v", errors.Cause(err))
	}
	var pathErr *os.PathError
	if !errors.As(err, &pathErr) {
		t.Error("expected *os.PathError in chain")
	}
}

func TestKindOfPlainError(t *testing.T) {
	if k := fault.KindOf(errors.New("plain")); k != fault.Unknown {
		t.Errorf("expected unknown, got %v", k)
	}
	if fault.Is(nil, fault.Unknown) {
		t.Error("nil must not match any kind")
	}
}

func TestKindString(t *testing.T) {
	if fault.Deserialization.String() != "deserialization" {
		t.Errorf("unexpected name %q", fault.Deserialization.String())
	}
	if fault.Kind(200).String() != "kind(200)" {
		t.Errorf("unexpected name %q", fault.Kind(200).String())
	}
}
