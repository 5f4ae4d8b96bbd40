package report

import (
	"image/color"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/user/challenge_data_go/internal/parser"
)

var plotColors = []color.Color{
	color.RGBA{R: 31, G: 119, B: 180, A: 255},  // Blue
	color.RGBA{R: 255, G: 127, B: 14, A: 255},  // Orange
	color.RGBA{R: 44, G: 160, B: 44, A: 255},   // Green
	color.RGBA{R: 214, G: 39, B: 40, A: 255},   // Red
	color.RGBA{R: 148, G: 103, B: 189, A: 255}, // Purple
	color.RGBA{G: 128, B: 128, A: 255},         // Teal
}

// Line is one labelled sequence of values plotted against row position.
type Line struct {
	Label  string
	Values []float64
}

// SeriesLine turns a series into a Line labelled with its column name.
func SeriesLine(label string, s *parser.Series) Line {
	if s.Name != "" {
		label = label + " (" + s.Name + ")"
	}
	return Line{Label: label, Values: s.Values()}
}

// CreateLinePlot draws each line against its row position on a figure
// from FigAx and returns the PNG bytes. NaN values leave gaps.
func CreateLinePlot(title string, size FigSize, lines ...Line) ([]byte, error) {
	if len(lines) == 0 {
		return nil, errors.New("no lines to plot")
	}

	fig, p := FigAx(size)
	p.Title.Text = title
	p.X.Label.Text = "Row"
	p.Y.Label.Text = "Value"
	p.Add(plotter.NewGrid())

	linesPlotted := false
	for i, ln := range lines {
		segments := splitOnNaN(ln.Values)
		if len(segments) == 0 {
			continue
		}
		linesPlotted = true

		c := plotColors[i%len(plotColors)]
		for j, pts := range segments {
			line, err := plotter.NewLine(pts)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to create line for %s", ln.Label)
			}
			line.Color = c
			line.LineStyle.Width = vg.Points(1)
			p.Add(line)
			if j == 0 {
				p.Legend.Add(ln.Label, line)
			}
		}
	}
	if !linesPlotted {
		return nil, errors.Errorf("%s: no finite values to plot", title)
	}

	p.Legend.Top = true
	return fig.PNG()
}

// splitOnNaN cuts values into runs of finite points, so missing values
// break the line instead of being joined across.
func splitOnNaN(values []float64) []plotter.XYs {
	var segments []plotter.XYs
	var cur plotter.XYs
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			if len(cur) > 0 {
				segments = append(segments, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: float64(i), Y: v})
	}
	if len(cur) > 0 {
		segments = append(segments, cur)
	}
	return segments
}
