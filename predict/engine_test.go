package predict_test

import (
	"github.com/ProfessorX0227/fare/boost"
	"github.com/ProfessorX0227/fare/fault"
	"github.com/ProfessorX0227/fare/learning"
	"github.com/ProfessorX0227/fare/predict"
	"github.com/ProfessorX0227/fare/table"
	"github.com/ProfessorX0227/fare/trip"
	"github.com/ProfessorX0227/fare/trip/triptest"
	"math"
	"testing"
)

// counting scores every row with a constant and counts the calls.
type counting struct {
	calls int
	score float64
}

func (c *counting) Transform(t *table.Table) (*table.Table, error) {
	c.calls++
	scores := make([]float64, t.Len())
	for i := range scores {
		scores[i] = c.score
	}
	out := t.Clone()
	return out, out.Add(table.ScalarColumn(learning.ScoreColumn, scores))
}

func TestPredict(t *testing.T) {
	m, err := learning.TaxiFare(boost.Trees(30)).Fit(trip.Table(triptest.Records(200, 4)...))
	if err != nil {
		t.Fatal(err)
	}
	e, err := predict.NewEngine(m)
	if err != nil {
		t.Fatal(err)
	}
	p, err := e.Predict(triptest.Probe)
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(float64(p.FareAmount)) || p.FareAmount < 0 {
		t.Errorf("unexpected fare %v", p.FareAmount)
	}

	again, err := e.Predict(triptest.Probe)
	if err != nil {
		t.Fatal(err)
	}
	if again != p {
		t.Errorf("%v != %v", again, p)
	}
}

func TestPredictCached(t *testing.T) {
	m := &counting{score: 12.5}
	e, err := predict.NewEngine(m, predict.CacheSize(1))
	if err != nil {
		t.Fatal(err)
	}
	withFare := triptest.Probe
	withFare.FareAmount = 99
	for _, r := range []trip.Record{triptest.Probe, triptest.Probe, withFare} {
		p, err := e.Predict(r)
		if err != nil {
			t.Fatal(err)
		}
		if p.FareAmount != 12.5 {
			t.Errorf("unexpected fare %v", p.FareAmount)
		}
	}
	if m.calls != 1 {
		t.Errorf("expected one transform, got %d", m.calls)
	}

	// The cache holds one record, so the fixture evicts the probe.
	if _, err := e.Predict(triptest.Fixture); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Predict(triptest.Probe); err != nil {
		t.Fatal(err)
	}
	if m.calls != 3 {
		t.Errorf("expected three transforms, got %d", m.calls)
	}
}

func TestPredictErrors(t *testing.T) {
	for _, score := range []float64{math.NaN(), math.Inf(1)} {
		e, err := predict.NewEngine(&counting{score: score})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := e.Predict(triptest.Probe); !fault.Is(err, fault.Prediction) {
			t.Errorf("score %v: expected prediction error, got %v", score, err)
		}
	}

	e, err := predict.NewEngine(&counting{}, predict.ScoreColumn("Missing"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Predict(triptest.Probe); !fault.Is(err, fault.Prediction) {
		t.Errorf("expected prediction error, got %v", err)
	}

	if _, err := predict.NewEngine(&counting{}, predict.CacheSize(0)); !fault.Is(err, fault.Prediction) {
		t.Errorf("expected prediction error, got %v", err)
	}
}

func TestNewEngineWithoutModel(t *testing.T) {
	var m *learning.Model
	for _, tr := range []learning.Transformer{nil, m} {
		e, err := predict.NewEngine(tr)
		if !fault.Is(err, fault.Prediction) {
			t.Errorf("expected prediction error, got %v", err)
		}
		if e != nil {
			t.Error("no engine may be returned on error")
		}
	}
}

func TestPredictSchemaMismatch(t *testing.T) {
	// A model trained on a single numeric column cannot read trip tables without it.
	tbl := table.New(20)
	x := make([]float64, 20)
	for i := range x {
		x[i] = float64(i)
	}
	_ = tbl.Add(table.ScalarColumn("Tip", x))
	m, err := learning.Estimator{
		learning.CopyColumns(learning.LabelColumn, "Tip"),
		learning.Concatenate(learning.FeaturesColumn, "Tip"),
		learning.FastTree(boost.Trees(2), boost.MinLeaf(2)),
	}.Fit(tbl)
	if err != nil {
		t.Fatal(err)
	}
	e, err := predict.NewEngine(m)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Predict(triptest.Probe); !fault.Is(err, fault.Prediction) {
		t.Fatalf("expected prediction error, got %v", err)
	}
}
