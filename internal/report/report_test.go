package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/plot/vg"

	"github.com/user/challenge_data_go/internal/analysis"
)

var pngMagic = []byte("\x89PNG")

func TestFigAx_Defaults(t *testing.T) {
	t.Parallel()

	fig, ax := FigAx()
	if fig.Width != 15*vg.Inch || fig.Height != 5*vg.Inch {
		t.Fatalf("size = %v x %v, want 15in x 5in", fig.Width, fig.Height)
	}
	if ax.X.Padding != 0 {
		t.Fatalf("X.Padding = %v, want 0", ax.X.Padding)
	}
	if fig.Plot != ax {
		t.Fatal("figure is not attached to the returned plot")
	}
}

func TestFigAx_CustomSize(t *testing.T) {
	t.Parallel()

	fig, ax := FigAx(FigSize{Width: 4, Height: 3})
	if fig.Width != 4*vg.Inch || fig.Height != 3*vg.Inch {
		t.Fatalf("size = %v x %v, want 4in x 3in", fig.Width, fig.Height)
	}
	if ax.X.Padding != 0 {
		t.Fatalf("X.Padding = %v, want 0", ax.X.Padding)
	}

	fig, _ = FigAx(FigSize{})
	if fig.Width != 15*vg.Inch {
		t.Fatalf("zero size should fall back to the default, got %v", fig.Width)
	}
}

func TestFigure_Save(t *testing.T) {
	t.Parallel()

	fig, _ := FigAx(FigSize{Width: 2, Height: 1})
	out := filepath.Join(t.TempDir(), "fig.png")
	if err := fig.Save(out); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(raw, pngMagic) {
		t.Fatal("saved file is not a PNG")
	}
}

func TestCreateLinePlot(t *testing.T) {
	t.Parallel()

	img, err := CreateLinePlot("test", FigSize{Width: 4, Height: 2},
		Line{Label: "a", Values: []float64{1, 2, math.NaN(), 4}},
		Line{Label: "b", Values: []float64{3, 1}},
	)
	if err != nil {
		t.Fatalf("CreateLinePlot: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Fatal("output is not a PNG")
	}

	if _, err := CreateLinePlot("empty", FigSize{}); err == nil {
		t.Fatal("expected error without lines")
	}
	if _, err := CreateLinePlot("nan", FigSize{}, Line{Values: []float64{math.NaN()}}); err == nil {
		t.Fatal("expected error without finite values")
	}
}

func TestSplitOnNaN(t *testing.T) {
	t.Parallel()

	segs := splitOnNaN([]float64{1, math.NaN(), 2, 3, math.Inf(1)})
	if len(segs) != 2 || len(segs[0]) != 1 || len(segs[1]) != 2 {
		t.Fatalf("unexpected segments %v", segs)
	}
	if segs[1][0].X != 2 {
		t.Fatalf("segment keeps row positions, got X=%v", segs[1][0].X)
	}
}

func TestCreateHistogramPlot(t *testing.T) {
	t.Parallel()

	img, err := CreateHistogramPlot("hist", FigSize{Width: 4, Height: 2}, []float64{1, 2, 2, 3, math.NaN()}, 0)
	if err != nil {
		t.Fatalf("CreateHistogramPlot: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Fatal("output is not a PNG")
	}
	if _, err := CreateHistogramPlot("hist", FigSize{}, []float64{math.NaN()}, 5); err == nil {
		t.Fatal("expected error without finite values")
	}
}

func TestBuildPDFReport(t *testing.T) {
	t.Parallel()

	img, err := CreateLinePlot("train", FigSize{Width: 4, Height: 2}, Line{Label: "x", Values: []float64{1, 2, 3}})
	if err != nil {
		t.Fatalf("CreateLinePlot: %v", err)
	}
	preds := analysis.Summarize("predictions", []float64{1, 2})
	results := &analysis.Results{
		XTrain:      analysis.Summarize("training inputs", []float64{1, 2}),
		YTrain:      analysis.Summarize("training outputs", []float64{5, 6}),
		XTest:       analysis.Summarize("testing inputs", []float64{math.NaN()}),
		Predictions: &preds,
		Warnings:    []string{"testing inputs has no numeric values"},
	}

	out := filepath.Join(t.TempDir(), "report.pdf")
	err = BuildPDFReport(out, ReportInput{
		Folder:  "data",
		Results: results,
		Charts:  map[string][]byte{ChartTrainingSeries: img},
	})
	if err != nil {
		t.Fatalf("BuildPDFReport: %v", err)
	}
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}

	if err := BuildPDFReport(out, ReportInput{}); err == nil {
		t.Fatal("expected error without results")
	}
}
