package config

import (
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/user/challenge_data_go/internal/parser"
	"github.com/user/challenge_data_go/internal/report"
	"github.com/user/challenge_data_go/internal/submission"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "config.toml"

// Config is the toolkit configuration.
type Config struct {
	Data       DataConfig       `toml:"data"`
	Submission SubmissionConfig `toml:"submission"`
	Plot       PlotConfig       `toml:"plot"`
	Report     ReportConfig     `toml:"report"`
	Log        LogConfig        `toml:"log"`
}

// DataConfig locates the input CSV files.
type DataConfig struct {
	Folder string `toml:"folder"`
}

// SubmissionConfig controls the written predictions file.
type SubmissionConfig struct {
	OutPath     string `toml:"out_path"`
	ValueColumn string `toml:"value_column"`
}

// PlotConfig is the figure size in inches.
type PlotConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// ReportConfig controls the PDF report.
type ReportConfig struct {
	Path          string `toml:"path"`
	Title         string `toml:"title"`
	HistogramBins int    `toml:"histogram_bins"`
}

// LogConfig sets the logrus level.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Folder: parser.DefaultFolder,
		},
		Submission: SubmissionConfig{
			OutPath:     submission.DefaultOutPath,
			ValueColumn: submission.DefaultValueColumn,
		},
		Plot: PlotConfig{
			Width:  report.DefaultFigSize.Width,
			Height: report.DefaultFigSize.Height,
		},
		Report: ReportConfig{
			Path:          "report.pdf",
			Title:         "Challenge Data Report",
			HistogramBins: report.DefaultBins,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.WithField("path", path).Debug("config file not found, using defaults")
			return cfg, nil
		}
		return nil, errors.Wrap(err, "read config")
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Save writes cfg as TOML to path.
func Save(cfg *Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write config")
}

// Validate checks values that would fail later in a less obvious way.
func (c *Config) Validate() error {
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		return errors.Errorf("plot size must be positive, got %gx%g", c.Plot.Width, c.Plot.Height)
	}
	if c.Report.HistogramBins < 0 {
		return errors.Errorf("histogram_bins must not be negative, got %d", c.Report.HistogramBins)
	}
	if _, err := logrus.ParseLevel(strings.TrimSpace(c.Log.Level)); err != nil {
		return errors.Wrap(err, "log level")
	}
	return nil
}

// FigSize returns the configured figure size.
func (c *Config) FigSize() report.FigSize {
	return report.FigSize{Width: c.Plot.Width, Height: c.Plot.Height}
}

// ApplyLogging sets the global logrus level from the config.
func (c *Config) ApplyLogging() {
	level, err := logrus.ParseLevel(strings.TrimSpace(c.Log.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
