package submission

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/user/challenge_data_go/internal/parser"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return records
}

func TestSaveResults_SingleRow(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out.csv")
	if err := SaveResults([]float64{7.0}, parser.Index{Keys: []string{"0"}}, out); err != nil {
		t.Fatalf("SaveResults: %v", err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got, want := string(raw), ",0\n0,7.0\n"; got != want {
		t.Fatalf("file = %q, want %q", got, want)
	}
}

func TestSaveResults_RoundTrip(t *testing.T) {
	t.Parallel()

	index := parser.Index{Name: "ID", Keys: []string{"a", "b", "c", "d"}}
	preds := []float64{0.125, -3, 1e-7, 12345678.5}

	out := filepath.Join(t.TempDir(), "submission.csv")
	if err := SaveResults(preds, index, out); err != nil {
		t.Fatalf("SaveResults: %v", err)
	}

	records := readCSV(t, out)
	if len(records) != len(preds)+1 {
		t.Fatalf("got %d records, want %d", len(records), len(preds)+1)
	}
	if records[0][0] != "ID" || records[0][1] != DefaultValueColumn {
		t.Fatalf("unexpected header %v", records[0])
	}
	for i, rec := range records[1:] {
		if rec[0] != index.Keys[i] {
			t.Errorf("row %d key = %q, want %q", i, rec[0], index.Keys[i])
		}
		v, err := parser.ParseValue(rec[1])
		if err != nil {
			t.Fatalf("row %d: %v", i, err)
		}
		if v != preds[i] {
			t.Errorf("row %d value = %v, want %v", i, v, preds[i])
		}
	}
}

func TestSave_LengthMismatch(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out.csv")
	err := SaveResults([]float64{1, 2}, parser.Index{Keys: []string{"0"}}, out)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("want ErrLengthMismatch, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("file was created despite the mismatch: %v", statErr)
	}
}

func TestSave_UnwritablePath(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "missing", "out.csv")
	if err := SaveResults([]float64{1}, parser.Index{Keys: []string{"0"}}, out); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestSave_ValueColumn(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out.csv")
	err := Save([]float64{1}, parser.Index{Name: "ID", Keys: []string{"9"}}, out, Options{ValueColumn: "TARGET"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	records := readCSV(t, out)
	if records[0][1] != "TARGET" || records[1][1] != "1.0" {
		t.Fatalf("unexpected records %v", records)
	}
}

func TestSave_XLSX(t *testing.T) {
	t.Parallel()

	index := parser.Index{Name: "ID", Keys: []string{"0", "1", "2"}}
	preds := []float64{7, math.NaN(), 2.5}

	out := filepath.Join(t.TempDir(), "submission.xlsx")
	if err := Save(preds, index, out, Options{}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	keys, values, err := ReadXLSX(out)
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	if len(keys) != 3 || keys[2] != "2" {
		t.Fatalf("unexpected keys %v", keys)
	}
	if values[0] != 7 || !math.IsNaN(values[1]) || values[2] != 2.5 {
		t.Fatalf("unexpected values %v", values)
	}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want string
	}{
		{7, "7.0"},
		{-0.5, "-0.5"},
		{0, "0.0"},
		{1234567, "1234567.0"},
		{1e-5, "1e-05"},
		{1e20, "1e+20"},
		{math.NaN(), ""},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	}
	for _, tc := range cases {
		if got := FormatValue(tc.in); got != tc.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
