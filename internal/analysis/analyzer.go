package analysis

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/user/challenge_data_go/internal/parser"
)

// Summarize computes statistics of values, skipping NaNs.
func Summarize(name string, values []float64) Summary {
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}

	res := emptySummary(name)
	res.Count = len(valid)
	res.Missing = len(values) - len(valid)
	if len(valid) == 0 {
		return res
	}

	res.Mean, res.StdDev = stat.PopMeanStdDev(valid, nil)
	res.Min = floats.Min(valid)
	res.Max = floats.Max(valid)
	return res
}

// Describe summarizes the three loaded series and, when yPred is not nil,
// the predictions.
func Describe(data *parser.TrainingData, yPred []float64) (*Results, error) {
	if data == nil || data.XTrain == nil || data.YTrain == nil || data.XTest == nil {
		return nil, errors.New("training data is nil or incomplete, cannot describe")
	}

	results := &Results{
		XTrain: Summarize(labelOf("training inputs", data.XTrain), data.XTrain.Values()),
		YTrain: Summarize(labelOf("training outputs", data.YTrain), data.YTrain.Values()),
		XTest:  Summarize(labelOf("testing inputs", data.XTest), data.XTest.Values()),
	}
	for _, s := range []Summary{results.XTrain, results.YTrain, results.XTest} {
		if s.Count == 0 {
			results.Warnings = append(results.Warnings, fmt.Sprintf("%s has no numeric values", s.Name))
		}
	}
	if data.XTrain.Len() != data.YTrain.Len() {
		results.Warnings = append(results.Warnings, fmt.Sprintf("training inputs have %d rows but training outputs have %d", data.XTrain.Len(), data.YTrain.Len()))
	}

	if yPred != nil {
		p := Summarize("predictions", yPred)
		results.Predictions = &p
		if len(yPred) != data.XTest.Len() {
			results.Warnings = append(results.Warnings, fmt.Sprintf("%d predictions for %d test rows", len(yPred), data.XTest.Len()))
		}
	}
	return results, nil
}

func labelOf(role string, s *parser.Series) string {
	if s.Name == "" {
		return role
	}
	return fmt.Sprintf("%s (%s)", role, s.Name)
}
