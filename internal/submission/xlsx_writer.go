package submission

import (
	"math"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/user/challenge_data_go/internal/parser"
)

const xlsxSheet = "submission"

// writeXLSX writes the submission as a single sheet workbook. Keys are
// stored as text, predictions as numbers and NaN as an empty cell.
func writeXLSX(yPred []float64, testIndex parser.Index, outPath, valueColumn string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return errors.Wrap(err, "rename sheet")
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &[]interface{}{testIndex.Name, valueColumn}); err != nil {
		return errors.Wrap(err, "write header")
	}
	for i, v := range yPred {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "cell name")
		}
		row := []interface{}{testIndex.Keys[i], nil}
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			row[1] = v
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "write row %d", i+1)
		}
	}
	if err := f.SaveAs(outPath); err != nil {
		return errors.Wrap(err, "failed to save submission workbook")
	}
	return nil
}

// ReadXLSX reads back a workbook written by Save. It returns the keys and
// values of the data rows.
func ReadXLSX(path string) ([]string, []float64, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read sheet %s", xlsxSheet)
	}
	if len(rows) == 0 {
		return nil, nil, errors.Errorf("%s: header row missing", path)
	}

	keys := make([]string, 0, len(rows)-1)
	values := make([]float64, 0, len(rows)-1)
	for i, row := range rows[1:] {
		var key, cell string
		if len(row) > 0 {
			key = row[0]
		}
		if len(row) > 1 {
			cell = row[1]
		}
		val, err := parser.ParseValue(cell)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "row %d", i+2)
		}
		keys = append(keys, key)
		values = append(values, val)
	}
	return keys, values, nil
}
