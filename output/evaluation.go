// Package output provides different formats of output for evaluation results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"github.com/ProfessorX0227/fare/eval"
	"strconv"
	"strings"
)

// EvaluationFormatter is used in a fare pipeline to output evaluation results.
type EvaluationFormatter func(eval.Metrics) (string, error)

const (
	stars  = "*************************************************"
	dashes = "*------------------------------------------------"
)

// BannerFormatter outputs the headline metrics in a boxed block for the console.
func BannerFormatter(m eval.Metrics) (string, error) {
	var b strings.Builder
	fmt.Fprintln(&b, stars)
	fmt.Fprintln(&b, "*       Model quality metrics evaluation")
	fmt.Fprintln(&b, dashes)
	fmt.Fprintf(&b, "*      Success Rate %% Score:      %.2f\n", m.RSquared)
	fmt.Fprintf(&b, "*       RMS Room for Error:      %.2f\n", m.RootMeanSquaredError)
	fmt.Fprint(&b, stars)
	return b.String(), nil
}

// JsonEvaluationFormatter outputs every metric in a JSON format.
func JsonEvaluationFormatter(m eval.Metrics) (string, error) {
	v, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// CsvEvaluationFormatter outputs a header row of metric names and a row of values.
func CsvEvaluationFormatter(m eval.Metrics) (string, error) {
	b := bytes.NewBufferString("")
	w := csv.NewWriter(b)
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	w.Write([]string{"RSquared", "RootMeanSquaredError", "MeanSquaredError", "MeanAbsoluteError", "LossFunction", "Count"})
	w.Write([]string{f(m.RSquared), f(m.RootMeanSquaredError), f(m.MeanSquaredError), f(m.MeanAbsoluteError), f(m.LossFunction), strconv.Itoa(m.Count)})
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}
