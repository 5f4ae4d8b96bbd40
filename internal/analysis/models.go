package analysis

import "math"

// Summary holds descriptive statistics of one column of values.
type Summary struct {
	Name    string
	Count   int // non-missing values
	Missing int // NaN values
	Mean    float64
	StdDev  float64 // population standard deviation
	Min     float64
	Max     float64
}

// Results holds the summaries of a loaded dataset.
type Results struct {
	XTrain      Summary
	YTrain      Summary
	XTest       Summary
	Predictions *Summary // nil when no predictions were given
	Warnings    []string
}

// Summaries returns all summaries in display order.
func (r *Results) Summaries() []Summary {
	out := []Summary{r.XTrain, r.YTrain, r.XTest}
	if r.Predictions != nil {
		out = append(out, *r.Predictions)
	}
	return out
}

func emptySummary(name string) Summary {
	return Summary{
		Name:   name,
		Mean:   math.NaN(),
		StdDev: math.NaN(),
		Min:    math.NaN(),
		Max:    math.NaN(),
	}
}
