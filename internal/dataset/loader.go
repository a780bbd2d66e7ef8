package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chrissnell/bikeshare/internal/log"
	"github.com/chrissnell/bikeshare/internal/types"
)

// Columns names the source columns that make up a record.
type Columns struct {
	Date    string
	Season  string
	Weather string
	Weekday string
	Count   string
}

// DefaultColumns matches the day table of the public bike-sharing dataset.
var DefaultColumns = Columns{
	Date:    "dteday",
	Season:  "season",
	Weather: "weathersit",
	Weekday: "weekday",
	Count:   "cnt",
}

// Options controls how a dataset resource is read. Zero fields fall back to
// the defaults.
type Options struct {
	// Format is "csv" or "sqlite". Empty means infer from the file extension.
	Format     string
	Table      string
	DateLayout string
	Columns    Columns
}

func (o Options) withDefaults() Options {
	if o.Table == "" {
		o.Table = "day"
	}
	if o.DateLayout == "" {
		o.DateLayout = types.DateLayout
	}
	if o.Columns.Date == "" {
		o.Columns.Date = DefaultColumns.Date
	}
	if o.Columns.Season == "" {
		o.Columns.Season = DefaultColumns.Season
	}
	if o.Columns.Weather == "" {
		o.Columns.Weather = DefaultColumns.Weather
	}
	if o.Columns.Weekday == "" {
		o.Columns.Weekday = DefaultColumns.Weekday
	}
	if o.Columns.Count == "" {
		o.Columns.Count = DefaultColumns.Count
	}
	return o
}

func (c Columns) list() []string {
	return []string{c.Date, c.Season, c.Weather, c.Weekday, c.Count}
}

// Load reads the dataset at path. Failures are returned as *ResourceError or
// *ParseError; callers treat both as fatal.
func Load(ctx context.Context, path string, opts Options) (*Dataset, error) {
	opts = opts.withDefaults()

	format := strings.ToLower(opts.Format)
	if format == "" {
		format = formatFromExt(path)
	}

	var ds *Dataset
	var err error
	switch format {
	case "csv":
		ds, err = LoadCSVFile(path, opts)
	case "sqlite":
		ds, err = LoadSQLite(ctx, path, opts)
	default:
		return nil, &ResourceError{Path: path, Err: fmt.Errorf("unsupported dataset format %q", format)}
	}
	if err != nil {
		return nil, err
	}

	if min, max, ok := ds.Bounds(); ok {
		log.Infof("loaded %d records from %s (%s to %s)", ds.Len(), path,
			min.Format(types.DateLayout), max.Format(types.DateLayout))
	} else {
		log.Warnf("dataset %s contains no records", path)
	}
	return ds, nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	default:
		return "csv"
	}
}

// openResource opens a file for reading, mapping failures to ResourceError.
func openResource(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}
	return f, nil
}

// builder accumulates records in source order and enforces the per-record
// invariants shared by every source format.
type builder struct {
	source  string
	opts    Options
	seen    map[time.Time]int
	records []types.Record
}

func newBuilder(source string, opts Options, sizeHint int) *builder {
	return &builder{
		source:  source,
		opts:    opts,
		seen:    make(map[time.Time]int, sizeHint),
		records: make([]types.Record, 0, sizeHint),
	}
}

// addStrings parses one row of raw text fields.
func (b *builder) addStrings(row int, date, season, weather, weekday, count string) error {
	d, err := time.ParseInLocation(b.opts.DateLayout, strings.TrimSpace(date), time.UTC)
	if err != nil {
		return b.fail(row, b.opts.Columns.Date, date, err)
	}

	ints := [4]int{}
	raw := [4]string{season, weather, weekday, count}
	names := [4]string{b.opts.Columns.Season, b.opts.Columns.Weather, b.opts.Columns.Weekday, b.opts.Columns.Count}
	for i := range raw {
		v, err := strconv.Atoi(strings.TrimSpace(raw[i]))
		if err != nil {
			return b.fail(row, names[i], raw[i], err)
		}
		ints[i] = v
	}

	return b.add(row, d, ints[0], ints[1], ints[2], ints[3])
}

// add validates decoded fields and appends the record.
func (b *builder) add(row int, date time.Time, seasonCode, weatherCode, weekday, count int) error {
	date = types.DateOf(date)

	season, err := types.SeasonFromCode(seasonCode)
	if err != nil {
		return b.fail(row, b.opts.Columns.Season, strconv.Itoa(seasonCode), err)
	}
	weather, err := types.WeatherFromCode(weatherCode)
	if err != nil {
		return b.fail(row, b.opts.Columns.Weather, strconv.Itoa(weatherCode), err)
	}
	if weekday < 0 || weekday > 6 {
		return b.fail(row, b.opts.Columns.Weekday, strconv.Itoa(weekday), fmt.Errorf("weekday out of range 0-6"))
	}
	if count < 0 {
		return b.fail(row, b.opts.Columns.Count, strconv.Itoa(count), fmt.Errorf("count must not be negative"))
	}
	if prev, dup := b.seen[date]; dup {
		return b.fail(row, b.opts.Columns.Date, date.Format(types.DateLayout),
			fmt.Errorf("duplicate date, first seen at row %d", prev))
	}
	b.seen[date] = row

	b.records = append(b.records, types.Record{
		Date:    date,
		Month:   date.Month(),
		Season:  season,
		Weather: weather,
		Weekday: weekday,
		Count:   count,
	})
	return nil
}

func (b *builder) fail(row int, column, value string, err error) error {
	return &ParseError{Source: b.source, Row: row, Column: column, Value: value, Err: err}
}

func (b *builder) dataset() *Dataset {
	return &Dataset{records: b.records}
}
