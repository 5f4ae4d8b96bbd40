// Package pipeline runs the load, describe, chart and save steps shared by
// the desktop app and the command line tool.
package pipeline

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/user/challenge_data_go/internal/analysis"
	"github.com/user/challenge_data_go/internal/config"
	"github.com/user/challenge_data_go/internal/parser"
	"github.com/user/challenge_data_go/internal/report"
	"github.com/user/challenge_data_go/internal/submission"
)

// ErrNoPredictions means a submission was requested without predictions.
var ErrNoPredictions = errors.New("no predictions file given")

// StatusFunc receives progress messages.
type StatusFunc func(message string)

func (f StatusFunc) send(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logrus.Info(msg)
	if f != nil {
		f(msg)
	}
}

// Workspace is a loaded data folder with its optional predictions and
// summaries. Load it once and run any number of steps on it.
type Workspace struct {
	Data        *parser.TrainingData
	Predictions []float64 // nil when no predictions file was given
	Results     *analysis.Results
}

// Describe loads the configured data folder and summarizes it, with the
// predictions in predictionsPath when that is not empty.
func Describe(ctx context.Context, cfg *config.Config, predictionsPath string, status StatusFunc) (*Workspace, error) {
	status.send("Loading data from %s", cfg.Data.Folder)
	data, err := parser.LoadData(cfg.Data.Folder)
	if err != nil {
		return nil, errors.Wrap(err, "load data")
	}
	status.send("Loaded %d training rows, %d test rows", data.XTrain.Len(), data.XTest.Len())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var preds []float64
	if predictionsPath != "" {
		status.send("Reading predictions from %s", predictionsPath)
		preds, err = parser.ReadPredictions(predictionsPath)
		if err != nil {
			return nil, errors.Wrap(err, "read predictions")
		}
	}

	results, err := analysis.Describe(data, preds)
	if err != nil {
		return nil, errors.Wrap(err, "describe data")
	}
	for _, w := range results.Warnings {
		status.send("Warning: %s", w)
	}
	return &Workspace{Data: data, Predictions: preds, Results: results}, nil
}

// WriteSubmission loads the data and the predictions in predictionsPath
// and saves them with WriteSubmission on the workspace.
func WriteSubmission(ctx context.Context, cfg *config.Config, predictionsPath, outPath string, status StatusFunc) error {
	if predictionsPath == "" {
		return ErrNoPredictions
	}
	ws, err := Describe(ctx, cfg, predictionsPath, status)
	if err != nil {
		return err
	}
	return ws.WriteSubmission(ctx, cfg, outPath, status)
}

// GenerateReport loads the data and writes the PDF report with
// GenerateReport on the workspace.
func GenerateReport(ctx context.Context, cfg *config.Config, predictionsPath, pdfPath string, status StatusFunc) error {
	ws, err := Describe(ctx, cfg, predictionsPath, status)
	if err != nil {
		return err
	}
	return ws.GenerateReport(ctx, cfg, pdfPath, status)
}

// WriteSubmission pairs the predictions with the test index and saves
// them to outPath (the configured path when empty).
func (ws *Workspace) WriteSubmission(ctx context.Context, cfg *config.Config, outPath string, status StatusFunc) error {
	if ws.Predictions == nil {
		return ErrNoPredictions
	}
	if outPath == "" {
		outPath = cfg.Submission.OutPath
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	status.send("Writing %d predictions to %s", len(ws.Predictions), outPath)
	err := submission.Save(ws.Predictions, ws.Data.XTest.Index(), outPath, submission.Options{
		ValueColumn: cfg.Submission.ValueColumn,
	})
	if err != nil {
		return errors.Wrap(err, "save submission")
	}
	status.send("Submission written: %s", outPath)
	return nil
}

type chartJob struct {
	Key    string
	Render func() ([]byte, error)
}

// GenerateReport renders the charts and writes the PDF to pdfPath (the
// configured path when empty). Chart failures are reported and leave the
// chart out of the PDF.
func (ws *Workspace) GenerateReport(ctx context.Context, cfg *config.Config, pdfPath string, status StatusFunc) error {
	if pdfPath == "" {
		pdfPath = cfg.Report.Path
	}
	data, preds := ws.Data, ws.Predictions
	if err := ctx.Err(); err != nil {
		return err
	}

	status.send("Generating plots...")
	size := cfg.FigSize()
	testLines := []report.Line{report.SeriesLine("testing inputs", data.XTest)}
	if preds != nil {
		testLines = append(testLines, report.Line{Label: "predictions", Values: preds})
	}

	plotConfigs := []chartJob{
		{report.ChartTrainingSeries, func() ([]byte, error) {
			return report.CreateLinePlot("Training Data", size,
				report.SeriesLine("training inputs", data.XTrain),
				report.SeriesLine("training outputs", data.YTrain))
		}},
		{report.ChartTestingSeries, func() ([]byte, error) {
			return report.CreateLinePlot("Testing Data", size, testLines...)
		}},
		{report.ChartTargetHist, func() ([]byte, error) {
			return report.CreateHistogramPlot("Training Outputs", size, data.YTrain.Values(), cfg.Report.HistogramBins)
		}},
	}
	if preds != nil {
		plotConfigs = append(plotConfigs, chartJob{report.ChartPredictionsHist, func() ([]byte, error) {
			return report.CreateHistogramPlot("Predictions", size, preds, cfg.Report.HistogramBins)
		}})
	}

	charts := make(map[string][]byte)
	for _, pc := range plotConfigs {
		if err := ctx.Err(); err != nil {
			return err
		}
		status.send("Plot: %s", pc.Key)
		img, err := pc.Render()
		if err != nil {
			status.send("Error generating plot %s: %v", pc.Key, err)
			continue
		}
		charts[pc.Key] = img
	}
	status.send("Plot generation complete.")

	status.send("Generating PDF: %s...", pdfPath)
	err := report.BuildPDFReport(pdfPath, report.ReportInput{
		Title:   cfg.Report.Title,
		Folder:  data.Folder,
		Results: ws.Results,
		Charts:  charts,
	})
	if err != nil {
		return errors.Wrap(err, "build report")
	}
	status.send("PDF report successfully generated: %s", pdfPath)
	return nil
}
