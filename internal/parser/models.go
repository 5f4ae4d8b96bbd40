package parser

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// DefaultFolder is the folder LoadData searches when none is given.
const DefaultFolder = "data"

// FilePatterns are the glob patterns of the training inputs, training
// outputs and testing inputs, in that order.
var FilePatterns = []string{"input_training_*.csv", "output_training_*.csv", "input_testing.csv"}

// missingMarkers are the cell values read as NaN instead of failing.
var missingMarkers = []string{"", "NA", "NaN", "nan", "N/A", "null"}

var (
	// ErrNoMatch means a glob pattern matched no file.
	ErrNoMatch = errors.New("no file matches pattern")
	// ErrAmbiguousMatch means a glob pattern matched more than one file.
	ErrAmbiguousMatch = errors.New("more than one file matches pattern")
	// ErrColumnCount means the CSV does not have exactly one value column.
	ErrColumnCount = errors.New("expected a key column and exactly one value column")
	// ErrNonNumeric means a value cell could not be read as float64.
	ErrNonNumeric = errors.New("non-numeric value")
)

// Series is an ordered mapping from row key to a float64 value, read from
// a two column CSV. The first column holds the keys.
type Series struct {
	Name      string // header of the value column
	IndexName string // header of the key column

	keys   series.Series
	values series.Series
}

// NewSeries builds a Series from parallel keys and values.
func NewSeries(name, indexName string, keys []string, values []float64) (*Series, error) {
	if len(keys) != len(values) {
		return nil, errors.Errorf("series %q: %d keys but %d values", name, len(keys), len(values))
	}
	k := series.New(keys, series.String, indexName)
	v := series.New(values, series.Float, name)
	if k.Err != nil {
		return nil, errors.Wrap(k.Err, "build key column")
	}
	if v.Err != nil {
		return nil, errors.Wrap(v.Err, "build value column")
	}
	return &Series{Name: name, IndexName: indexName, keys: k, values: v}, nil
}

// Len returns the number of rows.
func (s *Series) Len() int {
	return s.values.Len()
}

// Keys returns the row keys in file order.
func (s *Series) Keys() []string {
	return s.keys.Records()
}

// Values returns the values in file order. Missing cells are NaN.
func (s *Series) Values() []float64 {
	return s.values.Float()
}

// Get returns the value stored under key. Duplicate keys resolve to the
// first occurrence.
func (s *Series) Get(key string) (float64, bool) {
	for i, k := range s.keys.Records() {
		if k == key {
			return s.values.Elem(i).Float(), true
		}
	}
	return math.NaN(), false
}

// Index returns the row keys together with the key column's name.
func (s *Series) Index() Index {
	return Index{Name: s.IndexName, Keys: s.Keys()}
}

// Frame returns the series as a two column dataframe (keys, values).
func (s *Series) Frame() dataframe.DataFrame {
	return dataframe.New(s.keys.Copy(), s.values.Copy())
}

// Index is the ordered list of row keys of a series. Predictions are
// paired with it by position when saved.
type Index struct {
	Name string
	Keys []string
}

// Len returns the number of keys.
func (i Index) Len() int {
	return len(i.Keys)
}

// TrainingData holds the three series loaded by LoadData.
type TrainingData struct {
	Folder string
	Paths  []string // resolved file of each pattern, same order as FilePatterns

	XTrain *Series
	YTrain *Series
	XTest  *Series
}

// List returns training inputs, training outputs and testing inputs, in
// that order.
func (d *TrainingData) List() []*Series {
	return []*Series{d.XTrain, d.YTrain, d.XTest}
}
