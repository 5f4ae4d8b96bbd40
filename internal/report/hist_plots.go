package report

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/plotter"
)

// DefaultBins is the histogram bin count used when none is given.
const DefaultBins = 30

// CreateHistogramPlot draws the distribution of values and returns the
// PNG bytes. NaN and infinite values are skipped.
func CreateHistogramPlot(title string, size FigSize, values []float64, bins int) ([]byte, error) {
	if bins <= 0 {
		bins = DefaultBins
	}

	finite := make(plotter.Values, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return nil, errors.Errorf("%s: no finite values to plot", title)
	}

	fig, p := FigAx(size)
	p.Title.Text = title
	p.X.Label.Text = "Value"
	p.Y.Label.Text = "Count"
	p.Add(plotter.NewGrid())

	h, err := plotter.NewHist(finite, bins)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create histogram for %s", title)
	}
	h.FillColor = plotColors[0]
	p.Add(h)

	return fig.PNG()
}
