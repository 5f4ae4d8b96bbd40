package report

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// FigSize is a figure size in inches.
type FigSize struct {
	Width  float64
	Height float64
}

// DefaultFigSize is the size FigAx uses when called without one.
var DefaultFigSize = FigSize{Width: 15, Height: 5}

// Figure is the canvas a plot is rendered onto.
type Figure struct {
	Width  vg.Length
	Height vg.Length
	Plot   *plot.Plot
}

// FigAx returns a new figure and its plot. The plot has no horizontal
// padding, so data reaches the left and right edges of the axes. Only
// the first size is used; without one the figure is DefaultFigSize.
func FigAx(size ...FigSize) (*Figure, *plot.Plot) {
	fs := DefaultFigSize
	if len(size) > 0 && size[0].Width > 0 && size[0].Height > 0 {
		fs = size[0]
	}

	p := plot.New()
	p.X.Padding = 0

	fig := &Figure{
		Width:  vg.Length(fs.Width) * vg.Inch,
		Height: vg.Length(fs.Height) * vg.Inch,
		Plot:   p,
	}
	return fig, p
}

// WriterTo renders the figure in the given format ("png", "svg", "pdf", ...).
func (f *Figure) WriterTo(format string) (io.WriterTo, error) {
	w, err := f.Plot.WriterTo(f.Width, f.Height, format)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create plot writer")
	}
	return w, nil
}

// PNG renders the figure as PNG bytes.
func (f *Figure) PNG() ([]byte, error) {
	writer, err := f.WriterTo("png")
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, errors.Wrap(err, "failed to write plot to buffer")
	}
	return buf.Bytes(), nil
}

// Save writes the figure to path; the extension picks the format.
func (f *Figure) Save(path string) error {
	return f.Plot.Save(f.Width, f.Height, path)
}
