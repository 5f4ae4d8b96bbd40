package parser

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const utf8BOM = "\ufeff"

// isMissing reports whether a cell stands for a missing value.
func isMissing(cell string) bool {
	for _, m := range missingMarkers {
		if cell == m {
			return true
		}
	}
	return false
}

// ParseValue reads one value cell. Missing markers become NaN.
func ParseValue(cell string) (float64, error) {
	trimmed := strings.TrimSpace(cell)
	if isMissing(trimmed) {
		return math.NaN(), nil
	}
	val, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrNonNumeric, "%q", cell)
	}
	return val, nil
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	return reader
}

// FindDataFile returns the single file in folder matching pattern.
func FindDataFile(folder, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(folder, pattern))
	if err != nil {
		return "", errors.Wrapf(err, "glob %s", pattern)
	}
	switch len(matches) {
	case 0:
		return "", errors.Wrapf(ErrNoMatch, "%s in %s", pattern, folder)
	case 1:
		return matches[0], nil
	default:
		return "", errors.Wrapf(ErrAmbiguousMatch, "%s in %s: %s", pattern, folder, strings.Join(matches, ", "))
	}
}

// ParseSeries reads a CSV with a header row, a key column and one value
// column into a Series.
func ParseSeries(r io.Reader) (*Series, error) {
	reader := newReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("empty CSV, header row missing")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV header")
	}
	if len(header) != 2 {
		return nil, errors.Wrapf(ErrColumnCount, "found %d columns", len(header))
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	var keys []string
	var values []float64
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read CSV data")
		}
		val, err := ParseValue(record[1])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d, column %q", row, header[1])
		}
		keys = append(keys, record[0])
		values = append(values, val)
	}

	return NewSeries(header[1], header[0], keys, values)
}

// ParseSeriesFile opens path and parses it with ParseSeries.
func ParseSeriesFile(path string) (*Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()

	s, err := ParseSeries(file)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return s, nil
}

// LoadData locates and parses the training inputs, training outputs and
// testing inputs in folder. An empty folder means DefaultFolder.
func LoadData(folder string) (*TrainingData, error) {
	if folder == "" {
		folder = DefaultFolder
	}

	out := make([]*Series, 0, len(FilePatterns))
	paths := make([]string, 0, len(FilePatterns))
	for _, pattern := range FilePatterns {
		path, err := FindDataFile(folder, pattern)
		if err != nil {
			return nil, err
		}
		s, err := ParseSeriesFile(path)
		if err != nil {
			return nil, err
		}
		logrus.WithFields(logrus.Fields{
			"path": path,
			"rows": s.Len(),
		}).Debug("loaded series")
		out = append(out, s)
		paths = append(paths, path)
	}

	return &TrainingData{
		Folder: folder,
		Paths:  paths,
		XTrain: out[0],
		YTrain: out[1],
		XTest:  out[2],
	}, nil
}

// ReadPredictions reads predicted values from a CSV with a header row.
// A single column file is read as is; with more columns the last one
// holds the values, so a previously written submission can be read back.
func ReadPredictions(path string) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open predictions file")
	}
	defer file.Close()

	reader := newReader(file)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.Errorf("%s: empty CSV, header row missing", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s: failed to read CSV header", path)
	}
	col := len(header) - 1

	preds := make([]float64, 0)
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "%s: failed to read CSV data", path)
		}
		val, err := ParseValue(record[col])
		if err != nil {
			return nil, errors.Wrapf(err, "%s: row %d", path, row)
		}
		preds = append(preds, val)
	}
	return preds, nil
}
