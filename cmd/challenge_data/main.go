package main

import (
	"embed"
	"flag"

	"github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/user/challenge_data_go/internal/config"
)

//go:embed all:frontend/public
var assets embed.FS

var configPath = flag.String("config", config.DefaultPath, "path to the TOML config file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Warn("Failed to load config, using defaults")
		cfg = config.DefaultConfig()
	}
	cfg.ApplyLogging()

	app := NewApp(cfg)

	err = wails.Run(&options.App{
		Title:  "Challenge Data",
		Width:  720,
		Height: 600,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 46, G: 46, B: 46, A: 255}, // #2e2e2e
		OnStartup:        app.Startup,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		logrus.WithError(err).Fatal("Error running Wails app")
	}
}
