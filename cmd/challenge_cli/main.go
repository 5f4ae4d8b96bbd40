package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/user/challenge_data_go/internal/config"
	"github.com/user/challenge_data_go/internal/pipeline"
)

var (
	configPath  = flag.String("config", config.DefaultPath, "path to the TOML config file")
	dataDir     = flag.String("data", "", "data folder (overrides the config file)")
	predictions = flag.String("predictions", "", "CSV file with predicted values")
	outPath     = flag.String("out", "", "submission file, .csv or .xlsx (overrides the config file)")
	reportPath  = flag.String("report", "", "write a PDF report to this path")
	verbose     = flag.Bool("v", false, "debug logging")
)

// options are the per-run flags.
type options struct {
	Predictions string
	OutPath     string
	ReportPath  string
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}
	cfg.ApplyLogging()
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if *dataDir != "" {
		cfg.Data.Folder = *dataDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := options{Predictions: *predictions, OutPath: *outPath, ReportPath: *reportPath}
	if err := run(ctx, cfg, opts, os.Stdout); err != nil {
		logrus.WithError(err).Error("Failed")
		stop()
		os.Exit(1)
	}
}

// run loads the data once, prints the summaries and then writes the
// submission and the report as requested.
func run(ctx context.Context, cfg *config.Config, opts options, w io.Writer) error {
	if opts.OutPath != "" && opts.Predictions == "" {
		logrus.WithField("out", opts.OutPath).Warn("-out given without -predictions, no submission will be written")
	}

	ws, err := pipeline.Describe(ctx, cfg, opts.Predictions, nil)
	if err != nil {
		return err
	}
	for _, s := range ws.Results.Summaries() {
		fmt.Fprintf(w, "%-32s count=%-6d missing=%-4d mean=%-10.4g std=%-10.4g min=%-10.4g max=%.4g\n",
			s.Name, s.Count, s.Missing, s.Mean, s.StdDev, s.Min, s.Max)
	}

	if opts.Predictions != "" {
		if err := ws.WriteSubmission(ctx, cfg, opts.OutPath, nil); err != nil {
			return err
		}
	}
	if opts.ReportPath != "" {
		if err := ws.GenerateReport(ctx, cfg, opts.ReportPath, nil); err != nil {
			return err
		}
	}
	return nil
}
