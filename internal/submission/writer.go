package submission

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/user/challenge_data_go/internal/parser"
)

const (
	// DefaultOutPath is where SaveResults writes when no path is given.
	DefaultOutPath = "submission.csv"
	// DefaultValueColumn is the header of the prediction column.
	DefaultValueColumn = "0"
)

// Format selects the file format of a submission.
type Format int

const (
	FormatAuto Format = iota // from the file extension
	FormatCSV
	FormatXLSX
)

// ErrLengthMismatch means the predictions and the test index differ in length.
var ErrLengthMismatch = errors.New("prediction count does not match test index length")

// Options tune Save. The zero value gives the SaveResults behaviour.
type Options struct {
	ValueColumn string
	Format      Format
}

// SaveResults writes yPred paired with testIndex as CSV to outPath.
// An empty outPath means DefaultOutPath.
func SaveResults(yPred []float64, testIndex parser.Index, outPath string) error {
	return Save(yPred, testIndex, outPath, Options{Format: FormatCSV})
}

// Save writes yPred paired with testIndex to outPath. Row i holds
// testIndex.Keys[i] and yPred[i].
func Save(yPred []float64, testIndex parser.Index, outPath string, opts Options) error {
	if outPath == "" {
		outPath = DefaultOutPath
	}
	if len(yPred) != testIndex.Len() {
		return errors.Wrapf(ErrLengthMismatch, "%d predictions, %d index keys", len(yPred), testIndex.Len())
	}
	if opts.ValueColumn == "" {
		opts.ValueColumn = DefaultValueColumn
	}

	format := opts.Format
	if format == FormatAuto {
		format = formatFromPath(outPath)
	}

	var err error
	switch format {
	case FormatXLSX:
		err = writeXLSX(yPred, testIndex, outPath, opts.ValueColumn)
	default:
		err = writeCSV(yPred, testIndex, outPath, opts.ValueColumn)
	}
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"path": outPath,
		"rows": len(yPred),
	}).Debug("saved submission")
	return nil
}

func formatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

func writeCSV(yPred []float64, testIndex parser.Index, outPath, valueColumn string) error {
	file, err := os.Create(outPath)
	if err != nil {
		return errors.Wrap(err, "failed to create submission file")
	}

	w := csv.NewWriter(file)
	records := make([][]string, 0, len(yPred)+1)
	records = append(records, []string{testIndex.Name, valueColumn})
	for i, v := range yPred {
		records = append(records, []string{testIndex.Keys[i], FormatValue(v)})
	}
	if err := w.WriteAll(records); err != nil {
		file.Close()
		return errors.Wrapf(err, "write %s", outPath)
	}
	if err := file.Close(); err != nil {
		return errors.Wrapf(err, "close %s", outPath)
	}
	return nil
}

// FormatValue renders v as the shortest decimal that reads back to v,
// keeping a decimal point on integral values. NaN is an empty cell.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
