// Package predict scores single trips with a fitted fare model.
package predict

import (
	"github.com/ProfessorX0227/fare/fault"
	"github.com/ProfessorX0227/fare/learning"
	"github.com/ProfessorX0227/fare/trip"
	"github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"math"
)

// Engine predicts fares for individual records. Predictions are memoised per record.
type Engine struct {
	model     learning.Transformer
	score     string
	cacheSize int
	cache     *lru.Cache
}

// CacheSize sets how many predictions are remembered.
func CacheSize(n int) func(*Engine) {
	return func(e *Engine) {
		e.cacheSize = n
	}
}

// ScoreColumn sets the column the prediction is read from.
func ScoreColumn(name string) func(*Engine) {
	return func(e *Engine) {
		e.score = name
	}
}

// NewEngine creates a prediction engine over m.
func NewEngine(m learning.Transformer, options ...func(*Engine)) (*Engine, error) {
	const op = "predict.NewEngine"
	if m == nil {
		return nil, fault.New(fault.Prediction, op, "no model")
	}
	if lm, ok := m.(*learning.Model); ok && lm == nil {
		return nil, fault.New(fault.Prediction, op, "no model")
	}
	e := &Engine{
		model:     m,
		score:     learning.ScoreColumn,
		cacheSize: 128,
	}
	for _, option := range options {
		option(e)
	}
	c, err := lru.New(e.cacheSize)
	if err != nil {
		return nil, fault.Wrap(fault.Prediction, op, err)
	}
	e.cache = c
	return e, nil
}

// Predict scores r. Its FareAmount is ignored.
func (e *Engine) Predict(r trip.Record) (trip.FarePrediction, error) {
	const op = "predict.Predict"
	r.FareAmount = 0
	if v, ok := e.cache.Get(r); ok {
		return v.(trip.FarePrediction), nil
	}

	out, err := e.model.Transform(trip.Table(r))
	if err != nil {
		return trip.FarePrediction{}, fault.Wrap(fault.Prediction, op, errors.Wrapf(err, "record %s", r))
	}
	c, ok := out.Column(e.score)
	if !ok || len(c.Scalar) != 1 {
		return trip.FarePrediction{}, fault.New(fault.Prediction, op, "model produced no %s column", e.score)
	}
	s := c.Scalar[0]
	if math.IsNaN(s) || math.IsInf(s, 0) || math.Abs(s) > math.MaxFloat32 {
		return trip.FarePrediction{}, fault.New(fault.Prediction, op, "record %s scored %v", r, s)
	}

	p := trip.FarePrediction{FareAmount: float32(s)}
	e.cache.Add(r, p)
	return p, nil
}
