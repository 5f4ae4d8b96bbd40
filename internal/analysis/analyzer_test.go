package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/user/challenge_data_go/internal/parser"
)

func mustSeries(t *testing.T, name string, values ...float64) *parser.Series {
	t.Helper()
	keys := make([]string, len(values))
	for i := range keys {
		keys[i] = strings.Repeat("k", i+1)
	}
	s, err := parser.NewSeries(name, "ID", keys, values)
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}
	return s
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize("x", []float64{1, 3, math.NaN(), 5})
	if s.Count != 3 || s.Missing != 1 {
		t.Fatalf("count/missing = %d/%d", s.Count, s.Missing)
	}
	if s.Mean != 3 || s.Min != 1 || s.Max != 5 {
		t.Fatalf("unexpected stats %+v", s)
	}
	if want := math.Sqrt(8.0 / 3.0); math.Abs(s.StdDev-want) > 1e-12 {
		t.Fatalf("StdDev = %v, want %v", s.StdDev, want)
	}
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	s := Summarize("x", []float64{math.NaN()})
	if s.Count != 0 || s.Missing != 1 {
		t.Fatalf("count/missing = %d/%d", s.Count, s.Missing)
	}
	if !math.IsNaN(s.Mean) || !math.IsNaN(s.Min) {
		t.Fatalf("expected NaN statistics, got %+v", s)
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	data := &parser.TrainingData{
		XTrain: mustSeries(t, "x", 1, 2),
		YTrain: mustSeries(t, "y", 5, 6),
		XTest:  mustSeries(t, "x", 3),
	}

	res, err := Describe(data, nil)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if res.Predictions != nil || len(res.Summaries()) != 3 {
		t.Fatalf("unexpected predictions summary")
	}
	if res.YTrain.Mean != 5.5 {
		t.Fatalf("YTrain mean = %v", res.YTrain.Mean)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings %v", res.Warnings)
	}

	res, err = Describe(data, []float64{7, 8})
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if res.Predictions == nil || res.Predictions.Count != 2 {
		t.Fatalf("unexpected predictions summary %+v", res.Predictions)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "2 predictions for 1 test rows") {
		t.Fatalf("unexpected warnings %v", res.Warnings)
	}
}

func TestDescribe_Nil(t *testing.T) {
	t.Parallel()

	if _, err := Describe(nil, nil); err == nil {
		t.Fatal("expected error")
	}
}
