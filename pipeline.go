// Package fare trains, evaluates, saves and reloads a taxi fare regression model.
package fare

import (
	"github.com/ProfessorX0227/fare/config"
	"github.com/ProfessorX0227/fare/eval"
	"github.com/ProfessorX0227/fare/learning"
	"github.com/ProfessorX0227/fare/output"
	"github.com/ProfessorX0227/fare/pipeline"
	"github.com/ProfessorX0227/fare/predict"
	"github.com/ProfessorX0227/fare/table"
	"github.com/ProfessorX0227/fare/trip"
	"log"
)

// DefaultProbe is the trip a pipeline predicts a fare for unless told otherwise.
var DefaultProbe = trip.Record{
	VendorID:       "VTS",
	RateCode:       "1",
	PassengerCount: 2,
	TripTime:       1130,
	TripDistance:   4.13,
	PaymentType:    "CRD",
}

// Pipeline contains all the information for training a fare model and checking it.
type Pipeline struct {
	TrainPath string
	TestPath  string
	ModelPath string
	Loader    []func(*table.Loader)

	Estimator            learning.Estimator
	EvaluationFormatters []output.EvaluationFormatter
	PredictOptions       []func(*predict.Engine)
	Probe                trip.Record
}

// DataSource is where the training and held-out trips are read from.
type DataSource struct {
	TrainPath string
	TestPath  string
	Options   []func(*table.Loader)
}

// ModelPath is where the fitted model is saved and reloaded from.
type ModelPath string

// Data configures the training and held-out files.
func Data(train, test string, options ...func(*table.Loader)) func() interface{} {
	return func() interface{} {
		return DataSource{
			TrainPath: train,
			TestPath:  test,
			Options:   options,
		}
	}
}

// Model configures the model file.
func Model(path string) func() interface{} {
	return func() interface{} {
		return ModelPath(path)
	}
}

// Estimator replaces the default taxi fare estimator.
func Estimator(e learning.Estimator) func() interface{} {
	return func() interface{} {
		return e
	}
}

// EvaluationOutput adds formatters for the evaluation results.
func EvaluationOutput(formatters ...output.EvaluationFormatter) func() interface{} {
	return func() interface{} {
		return formatters
	}
}

// Predictor configures the prediction engine.
func Predictor(options ...func(*predict.Engine)) func() interface{} {
	return func() interface{} {
		return options
	}
}

// Probe sets the trip the reloaded model predicts a fare for.
func Probe(r trip.Record) func() interface{} {
	return func() interface{} {
		return r
	}
}

// NewPipeline creates a new fare pipeline. Components not provided fall back to the default
// configuration and the taxi fare estimator.
func NewPipeline(components ...func() interface{}) Pipeline {
	c := config.Default()
	p := Pipeline{
		TrainPath: c.TrainPath,
		TestPath:  c.TestPath,
		ModelPath: c.ModelPath,
		Loader:    c.LoaderOptions(),
		Estimator: learning.TaxiFare(),
		Probe:     DefaultProbe,
	}

	for _, component := range components {
		val := component()
		switch v := val.(type) {
		case DataSource:
			p.TrainPath = v.TrainPath
			p.TestPath = v.TestPath
			p.Loader = v.Options
		case ModelPath:
			p.ModelPath = string(v)
		case learning.Estimator:
			p.Estimator = v
		case []output.EvaluationFormatter:
			p.EvaluationFormatters = append(p.EvaluationFormatters, v...)
		case []func(*predict.Engine):
			p.PredictOptions = append(p.PredictOptions, v...)
		case trip.Record:
			p.Probe = v
		}
	}
	return p
}

// Execute trains the model, saves it, evaluates it on the held-out data, reloads it and
// predicts the probe's fare, reporting each stage on c. The first error stops the pipeline.
// c is closed when Execute returns.
func (p Pipeline) Execute(c chan pipeline.Result) {
	defer close(c)
	log.Println("starting fare pipeline...")

	fail := func(err error) {
		c <- pipeline.Result{
			Error: err,
			Type:  pipeline.Error,
		}
	}

	log.Printf("loading training data from %s\n", p.TrainPath)
	train, err := trip.Load(p.TrainPath, p.Loader...)
	if err != nil {
		fail(err)
		return
	}
	c <- pipeline.Result{
		Type: pipeline.Training,
		Rows: train.Len(),
	}

	model, err := p.Estimator.Fit(train)
	if err != nil {
		fail(err)
		return
	}
	c <- pipeline.Result{
		Type:    pipeline.Trained,
		ModelID: model.Meta.ID,
	}

	if err := learning.Save(model, p.ModelPath); err != nil {
		fail(err)
		return
	}
	c <- pipeline.Result{
		Type:    pipeline.Saved,
		ModelID: model.Meta.ID,
		Path:    p.ModelPath,
	}

	log.Printf("evaluating model on %s\n", p.TestPath)
	test, err := trip.Load(p.TestPath, p.Loader...)
	if err != nil {
		fail(err)
		return
	}
	metrics, err := eval.Regression(model, test, learning.LabelColumn, learning.ScoreColumn)
	if err != nil {
		fail(err)
		return
	}
	evaluations := make([]string, len(p.EvaluationFormatters))
	for i, formatter := range p.EvaluationFormatters {
		evaluations[i], err = formatter(metrics)
		if err != nil {
			fail(err)
			return
		}
	}
	c <- pipeline.Result{
		Type:        pipeline.Evaluation,
		Metrics:     metrics,
		Evaluations: evaluations,
	}

	log.Printf("reloading model from %s\n", p.ModelPath)
	loaded, err := learning.Load(p.ModelPath)
	if err != nil {
		fail(err)
		return
	}
	engine, err := predict.NewEngine(loaded, p.PredictOptions...)
	if err != nil {
		fail(err)
		return
	}
	prediction, err := engine.Predict(p.Probe)
	if err != nil {
		fail(err)
		return
	}
	c <- pipeline.Result{
		Type:       pipeline.Prediction,
		Record:     p.Probe,
		Prediction: prediction,
	}

	c <- pipeline.Result{
		Type: pipeline.Done,
	}
}
