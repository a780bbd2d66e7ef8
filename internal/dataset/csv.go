package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const utf8BOM = "\ufeff"

var errNoHeader = errors.New("no header row")

// LoadCSVFile reads a CSV dataset from disk.
func LoadCSVFile(path string, opts Options) (*Dataset, error) {
	f, err := openResource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadCSV(f, path, opts)
}

// LoadCSV reads a CSV dataset with a header row. Every column is read as
// text and converted by the record builder so that a malformed cell is
// reported with its row and column rather than coerced to NaN. A header with
// no data rows yields an empty dataset.
func LoadCSV(r io.Reader, source string, opts Options) (*Dataset, error) {
	opts = opts.withDefaults()

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{Source: source, Err: errNoHeader}
	}
	header := records[0]
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}
	for _, name := range opts.Columns.list() {
		if !present[name] {
			return nil, &ParseError{Source: source, Column: name, Err: ErrMissingColumn}
		}
	}
	if len(records) == 1 {
		return Empty(), nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, &ParseError{Source: source, Err: df.Err}
	}

	cols := make([][]string, 0, 5)
	for _, name := range opts.Columns.list() {
		s := df.Col(name)
		if s.Err != nil {
			return nil, &ParseError{Source: source, Column: name, Err: ErrMissingColumn}
		}
		cols = append(cols, s.Records())
	}

	n := df.Nrow()
	b := newBuilder(source, opts, n)
	for i := 0; i < n; i++ {
		if err := b.addStrings(i+1, cols[0][i], cols[1][i], cols[2][i], cols[3][i], cols[4][i]); err != nil {
			return nil, err
		}
	}
	return b.dataset(), nil
}
