package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/user/challenge_data_go/internal/analysis"
	"github.com/user/challenge_data_go/internal/config"
	"github.com/user/challenge_data_go/internal/pipeline"
)

// App is bound to the frontend.
type App struct {
	ctx  context.Context
	cfg  *config.Config
	jobs sync.WaitGroup // background handlers still running
}

// NewApp creates a new App using cfg for defaults.
func NewApp(cfg *config.Config) *App {
	return &App{cfg: cfg}
}

// Startup is called when the app starts. The context is saved so the
// runtime methods can be called.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	runtime.WindowSetTitle(a.ctx, "Challenge Data")
}

// emit sends an event to the frontend. Before Startup there is no
// runtime context and events are dropped.
func (a *App) emit(event string, data ...interface{}) {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, event, data...)
	}
}

func (a *App) sendStatus(message string) {
	a.emit("statusUpdate", message)
}

func (a *App) clearLog() {
	a.emit("clearLog")
}

func (a *App) context() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

// withFolder returns a copy of the config reading data from folder.
func (a *App) withFolder(folder string) *config.Config {
	cfg := *a.cfg
	if folder != "" {
		cfg.Data.Folder = folder
	}
	return &cfg
}

// runInBackground runs job off the UI thread and reports completion over
// the generationComplete event.
func (a *App) runInBackground(name string, job func(ctx context.Context) (string, error)) {
	a.jobs.Add(1)
	go func() {
		defer a.jobs.Done()
		defer func() {
			if r := recover(); r != nil {
				errMsg := fmt.Sprintf("PANIC recovered: %v", r)
				logrus.Error(errMsg)
				a.sendStatus(errMsg)
				a.emit("generationComplete", false, errMsg)
			}
		}()

		a.emit("generationStart")
		msg, err := job(a.context())
		if err != nil {
			errMsg := fmt.Sprintf("Error in %s: %v", name, err)
			logrus.WithError(err).Error(name + " failed")
			a.sendStatus(errMsg)
			a.emit("generationComplete", false, errMsg)
			return
		}
		a.emit("generationComplete", true, msg)
	}()
}

// HandleDescribe loads the data folder and returns the summaries.
func (a *App) HandleDescribe(folder string, predictionsPath string) ([]analysis.Summary, error) {
	a.clearLog()
	ws, err := pipeline.Describe(a.context(), a.withFolder(folder), predictionsPath, a.sendStatus)
	if err != nil {
		a.sendStatus(fmt.Sprintf("Error: %v", err))
		return nil, err
	}
	return ws.Results.Summaries(), nil
}

// HandleWriteSubmission starts writing the submission file in the background.
func (a *App) HandleWriteSubmission(folder, predictionsPath, outPath string) (string, error) {
	a.clearLog()
	a.sendStatus(fmt.Sprintf("Request: data=[%s], predictions=[%s], out=[%s]", folder, predictionsPath, outPath))

	cfg := a.withFolder(folder)
	a.runInBackground("submission", func(ctx context.Context) (string, error) {
		if err := pipeline.WriteSubmission(ctx, cfg, predictionsPath, outPath, a.sendStatus); err != nil {
			return "", err
		}
		return "Submission written.", nil
	})
	return "Submission started in background.", nil
}

// HandleGenerateReport starts building the PDF report in the background.
func (a *App) HandleGenerateReport(folder, predictionsPath, pdfPath string) (string, error) {
	a.clearLog()
	a.sendStatus(fmt.Sprintf("Request: data=[%s], predictions=[%s], PDF=[%s]", folder, predictionsPath, pdfPath))

	cfg := a.withFolder(folder)
	a.runInBackground("report", func(ctx context.Context) (string, error) {
		if err := pipeline.GenerateReport(ctx, cfg, predictionsPath, pdfPath, a.sendStatus); err != nil {
			return "", err
		}
		return "PDF report generated.", nil
	})
	return "Report generation started in background.", nil
}
