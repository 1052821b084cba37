package main

import (
	"bufio"
	"fmt"
	"github.com/ProfessorX0227/fare"
	"github.com/ProfessorX0227/fare/boost"
	"github.com/ProfessorX0227/fare/config"
	"github.com/ProfessorX0227/fare/learning"
	"github.com/ProfessorX0227/fare/output"
	"github.com/ProfessorX0227/fare/pipeline"
	"github.com/ProfessorX0227/fare/predict"
	"github.com/ProfessorX0227/fare/trip"
	"github.com/alexflint/go-arg"
	"github.com/go-errors/errors"
	"os"
)

var (
	name    = "farepredict"
	version = "19.Oct.2026"
)

type args struct {
	Config   string  `help:"properties file with data, model and trainer settings" arg:"-c"`
	Train    string  `help:"training data file" arg:"--train"`
	Test     string  `help:"held-out data file" arg:"--test"`
	Model    string  `help:"where to save the model" arg:"-m"`
	Probe    string  `help:"trip to predict, as a line of the data file without the fare" arg:"-p"`
	Actual   float64 `help:"observed fare of the probe trip" arg:"--actual"`
	Seed     *int64  `help:"seed of the trainer" arg:"--seed"`
	Trees    int     `help:"number of boosted trees" arg:"--trees"`
	NoWait   bool    `help:"exit without waiting for enter" arg:"--no-wait"`
	Progress bool    `help:"show a progress bar while training" arg:"--progress"`
	Debug    bool    `help:"print stack traces of errors" arg:"--debug"`
	JSON     bool    `help:"print metrics as JSON" arg:"--json"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
trains a taxi fare regression model, evaluates it, saves it and predicts a single fare with it.
# %s`, name, version)
}

func main() {
	var args args
	args.Actual = 15.5
	arg.MustParse(&args)

	if err := run(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if args.Debug {
			fmt.Fprintln(os.Stderr, errors.Wrap(err, 0).ErrorStack())
		}
		os.Exit(1)
	}
}

func run(args args) error {
	c := config.Default()
	if len(args.Config) > 0 {
		var err error
		c, err = config.Load(args.Config)
		if err != nil {
			return err
		}
	}
	if len(args.Train) > 0 {
		c.TrainPath = args.Train
	}
	if len(args.Test) > 0 {
		c.TestPath = args.Test
	}
	if len(args.Model) > 0 {
		c.ModelPath = args.Model
	}
	if args.Seed != nil {
		c.Trainer.Seed = *args.Seed
	}
	if args.Trees > 0 {
		c.Trainer.Trees = args.Trees
	}

	probe := fare.DefaultProbe
	if len(args.Probe) > 0 {
		var err error
		probe, err = trip.Parse(args.Probe)
		if err != nil {
			return err
		}
	}

	trainer := c.TrainerOptions()
	if args.Progress {
		trainer = append(trainer, boost.Progress(os.Stderr))
	}
	formatter := output.BannerFormatter
	if args.JSON {
		formatter = output.JsonEvaluationFormatter
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	fmt.Println(wd)

	p := fare.NewPipeline(
		fare.Data(c.TrainPath, c.TestPath, c.LoaderOptions()...),
		fare.Model(c.ModelPath),
		fare.Estimator(learning.TaxiFare(trainer...)),
		fare.EvaluationOutput(formatter),
		fare.Predictor(predict.CacheSize(c.CacheSize)),
		fare.Probe(probe),
	)

	results := make(chan pipeline.Result)
	go p.Execute(results)

	for result := range results {
		switch result.Type {
		case pipeline.Training:
			fmt.Println("=============== Create and Train the Model ===============")
		case pipeline.Trained:
			fmt.Println("=============== End of training ===============")
			fmt.Println()
		case pipeline.Saved:
			fmt.Printf("The model is saved to %s\n", result.Path)
		case pipeline.Evaluation:
			fmt.Println()
			for _, s := range result.Evaluations {
				fmt.Println(s)
			}
		case pipeline.Prediction:
			fmt.Println("**********************************************************************")
			fmt.Printf("Predicted fare: %.4f, actual fare: %v\n", result.Prediction.FareAmount, args.Actual)
			fmt.Println("**********************************************************************")
		case pipeline.Error:
			return result.Error
		}
	}

	if !args.NoWait {
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
	}
	return nil
}
