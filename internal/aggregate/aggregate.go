// Package aggregate computes the summary statistics behind each dashboard
// chart. Every function is pure and recomputes its result from the dataset
// it is given.
package aggregate

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/chrissnell/bikeshare/internal/dataset"
	"github.com/chrissnell/bikeshare/internal/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrMissingData is returned (wrapped) when an aggregate has no records to
// average. It is recoverable: callers render a placeholder for the affected
// chart only.
var ErrMissingData = errors.New("missing data")

// GroupMean is the mean count of one category.
type GroupMean struct {
	Code  int     `json:"code"`
	Label string  `json:"label"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// Point is one day of a trend line.
type Point struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// MeanBySeason averages the count per season, highest mean first. Seasons
// with equal means keep enumeration order. Seasons absent from ds are
// omitted; an empty ds yields ErrMissingData.
func MeanBySeason(ds *dataset.Dataset) ([]GroupMean, error) {
	return meanByCode(ds, "season", func(r types.Record) (int, string) {
		return r.Season.Code(), r.Season.String()
	})
}

// MeanByWeather averages the count per weather condition, highest mean
// first, ties in enumeration order.
func MeanByWeather(ds *dataset.Dataset) ([]GroupMean, error) {
	return meanByCode(ds, "weather", func(r types.Record) (int, string) {
		return r.Weather.Code(), r.Weather.String()
	})
}

// MeanByMonth averages the count per calendar month (derived from the
// record date), highest mean first, ties in calendar order.
func MeanByMonth(ds *dataset.Dataset) ([]GroupMean, error) {
	return meanByCode(ds, "month", func(r types.Record) (int, string) {
		return int(r.Month), r.Month.String()
	})
}

func meanByCode(ds *dataset.Dataset, what string, key func(types.Record) (int, string)) ([]GroupMean, error) {
	if ds.Len() == 0 {
		return nil, fmt.Errorf("mean by %s: %w", what, ErrMissingData)
	}

	values := make(map[int][]float64)
	labels := make(map[int]string)
	for _, r := range ds.Records() {
		code, label := key(r)
		values[code] = append(values[code], float64(r.Count))
		labels[code] = label
	}

	out := make([]GroupMean, 0, len(values))
	for code, v := range values {
		out = append(out, GroupMean{
			Code:  code,
			Label: labels[code],
			Mean:  stat.Mean(v, nil),
			Count: len(v),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

// DailyTrend returns one point per record in source order.
func DailyTrend(ds *dataset.Dataset) []Point {
	out := make([]Point, 0, ds.Len())
	for _, r := range ds.Records() {
		out = append(out, Point{Date: r.Date, Count: r.Count})
	}
	return out
}

// Summary describes the selected days as a whole.
type Summary struct {
	Days      int       `json:"days"`
	Total     int       `json:"total"`
	Mean      float64   `json:"mean"`
	First     time.Time `json:"first"`
	Last      time.Time `json:"last"`
	PeakDate  time.Time `json:"peak_date"`
	PeakCount int       `json:"peak_count"`
}

// Summarize totals the selected days. An empty ds yields ErrMissingData.
func Summarize(ds *dataset.Dataset) (Summary, error) {
	if ds.Len() == 0 {
		return Summary{}, fmt.Errorf("summary: %w", ErrMissingData)
	}

	counts := ds.Counts()
	first, last, _ := ds.Bounds()
	peak := floats.MaxIdx(counts)

	return Summary{
		Days:      ds.Len(),
		Total:     int(floats.Sum(counts)),
		Mean:      stat.Mean(counts, nil),
		First:     first,
		Last:      last,
		PeakDate:  ds.At(peak).Date,
		PeakCount: ds.At(peak).Count,
	}, nil
}
