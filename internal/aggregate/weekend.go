package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/chrissnell/bikeshare/internal/dataset"
	"github.com/chrissnell/bikeshare/internal/types"
	"gonum.org/v1/gonum/stat"
)

// WindowMonths is the length of the recent-usage window.
const WindowMonths = 6

// Partition is the mean count of either the weekend or the weekday days in
// the recent window. Missing is set when the partition has no records, in
// which case Mean is zero and must not be displayed as a value.
type Partition struct {
	Label   string  `json:"label"`
	Mean    float64 `json:"mean"`
	Count   int     `json:"count"`
	Missing bool    `json:"missing"`
}

// WeekSplit compares weekend and weekday usage over [Since, Until].
type WeekSplit struct {
	Since   time.Time `json:"since"`
	Until   time.Time `json:"until"`
	Weekend Partition `json:"weekend"`
	Weekday Partition `json:"weekday"`
}

// MonthsBefore steps t back n calendar months. When the target month is
// shorter, the day is clamped to its last day (Aug 31 minus six months is
// Feb 28 or 29).
func MonthsBefore(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m-time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// RecentWindow returns the records dated on or after WindowMonths calendar
// months before the latest date in ds, along with the window bounds. ok is
// false when ds is empty.
func RecentWindow(ds *dataset.Dataset) (window *dataset.Dataset, since, until time.Time, ok bool) {
	_, until, ok = ds.Bounds()
	if !ok {
		return dataset.Empty(), time.Time{}, time.Time{}, false
	}
	since = MonthsBefore(until, WindowMonths)
	window = ds.Where(func(r types.Record) bool { return !r.Date.Before(since) })
	return window, since, until, true
}

// WeekendVsWeekdayMeans compares mean weekend and weekday counts over the
// recent window. When either partition is empty the split is still
// returned, with that partition marked Missing, alongside an error wrapping
// ErrMissingData.
func WeekendVsWeekdayMeans(ds *dataset.Dataset) (WeekSplit, error) {
	split := WeekSplit{
		Weekend: Partition{Label: "Weekend", Missing: true},
		Weekday: Partition{Label: "Weekday", Missing: true},
	}

	window, since, until, ok := RecentWindow(ds)
	if !ok {
		return split, fmt.Errorf("weekend vs weekday: %w", ErrMissingData)
	}
	split.Since, split.Until = since, until

	var weekend, weekday []float64
	for _, r := range window.Records() {
		if r.IsWeekend() {
			weekend = append(weekend, float64(r.Count))
		} else {
			weekday = append(weekday, float64(r.Count))
		}
	}
	fill(&split.Weekend, weekend)
	fill(&split.Weekday, weekday)

	switch {
	case split.Weekend.Missing && split.Weekday.Missing:
		return split, fmt.Errorf("weekend vs weekday: %w", ErrMissingData)
	case split.Weekend.Missing:
		return split, fmt.Errorf("weekend partition: %w", ErrMissingData)
	case split.Weekday.Missing:
		return split, fmt.Errorf("weekday partition: %w", ErrMissingData)
	}
	return split, nil
}

func fill(p *Partition, values []float64) {
	if len(values) == 0 {
		return
	}
	p.Mean = stat.Mean(values, nil)
	p.Count = len(values)
	p.Missing = false
}

// WeekendTrend returns the weekend days of the recent window in
// chronological order. An empty result is reported as ErrMissingData.
func WeekendTrend(ds *dataset.Dataset) ([]Point, error) {
	window, _, _, ok := RecentWindow(ds)
	if !ok {
		return nil, fmt.Errorf("weekend trend: %w", ErrMissingData)
	}

	points := DailyTrend(window.Where(types.Record.IsWeekend))
	sortChronological(points)
	if len(points) == 0 {
		return points, fmt.Errorf("weekend trend: %w", ErrMissingData)
	}
	return points, nil
}

func sortChronological(points []Point) {
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
}
