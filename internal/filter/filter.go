// Package filter narrows a dataset by date range, season and weather.
//
// Every filter is a pure function of its input: the input dataset is never
// modified and the result preserves source order. Filters are independent
// predicates combined by logical AND, so they compose in any order.
package filter

import (
	"time"

	"github.com/chrissnell/bikeshare/internal/dataset"
	"github.com/chrissnell/bikeshare/internal/types"
)

// ByDateRange returns the records with start <= date <= end, compared as
// calendar dates. An inverted range (start after end) yields an empty
// dataset.
func ByDateRange(ds *dataset.Dataset, start, end time.Time) *dataset.Dataset {
	start, end = types.DateOf(start), types.DateOf(end)
	if start.After(end) {
		return dataset.Empty()
	}
	return ds.Where(func(r types.Record) bool {
		return !r.Date.Before(start) && !r.Date.After(end)
	})
}

// BySeason returns the records of one season. types.SeasonAll returns the
// input unchanged.
func BySeason(ds *dataset.Dataset, season types.Season) *dataset.Dataset {
	if season == types.SeasonAll {
		return ds
	}
	return ds.Where(func(r types.Record) bool { return r.Season == season })
}

// ByWeather returns the records of one weather condition. types.WeatherAll
// returns the input unchanged.
func ByWeather(ds *dataset.Dataset, weather types.Weather) *dataset.Dataset {
	if weather == types.WeatherAll {
		return ds
	}
	return ds.Where(func(r types.Record) bool { return r.Weather == weather })
}
