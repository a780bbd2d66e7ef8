package filter

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chrissnell/bikeshare/internal/dataset"
	"github.com/chrissnell/bikeshare/internal/types"
)

// DateRange is an inclusive pair of calendar dates.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Inverted reports whether the range can match nothing because Start is
// after End. A zero bound is open and never inverts the range.
func (r DateRange) Inverted() bool {
	if r.Start.IsZero() || r.End.IsZero() {
		return false
	}
	return types.DateOf(r.Start).After(types.DateOf(r.End))
}

// latest stands in for an open end bound.
var latest = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// Selection is the user's filter state for one display cycle. A nil Range
// means no date restriction; SeasonAll and WeatherAll mean no restriction.
type Selection struct {
	Range   *DateRange    `json:"range,omitempty"`
	Season  types.Season  `json:"season"`
	Weather types.Weather `json:"weather"`
}

// Apply narrows ds by every constraint in the selection.
func (s Selection) Apply(ds *dataset.Dataset) *dataset.Dataset {
	out := ByWeather(BySeason(ds, s.Season), s.Weather)
	if s.Range != nil {
		end := s.Range.End
		if end.IsZero() {
			end = latest
		}
		out = ByDateRange(out, s.Range.Start, end)
	}
	return out
}

// InvertedRange reports whether the selection's date range is inverted.
// Callers show this as "no data in range" rather than an error.
func (s Selection) InvertedRange() bool {
	return s.Range != nil && s.Range.Inverted()
}

// WithDefaultRange fills a missing or half-open date range from the
// dataset's bounds, mirroring the date picker's initial state.
func (s Selection) WithDefaultRange(ds *dataset.Dataset) Selection {
	min, max, ok := ds.Bounds()
	if !ok {
		return s
	}
	if s.Range == nil {
		s.Range = &DateRange{Start: min, End: max}
		return s
	}
	r := *s.Range
	if r.Start.IsZero() {
		r.Start = min
	}
	if r.End.IsZero() {
		r.End = max
	}
	s.Range = &r
	return s
}

// ParseQuery builds a Selection from query parameters: start and end
// (YYYY-MM-DD), season and weather (name, code or "all"). Missing
// parameters leave the corresponding field unrestricted; a single missing
// date bound is left as the zero time.
func ParseQuery(q url.Values) (Selection, error) {
	var sel Selection

	start, err := parseDate(q.Get("start"))
	if err != nil {
		return sel, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := parseDate(q.Get("end"))
	if err != nil {
		return sel, fmt.Errorf("invalid end date: %w", err)
	}
	if !start.IsZero() || !end.IsZero() {
		sel.Range = &DateRange{Start: start, End: end}
	}

	if sel.Season, err = types.ParseSeason(q.Get("season")); err != nil {
		return sel, err
	}
	if sel.Weather, err = types.ParseWeather(q.Get("weather")); err != nil {
		return sel, err
	}
	return sel, nil
}

// Query encodes the selection back into query parameters.
func (s Selection) Query() url.Values {
	q := url.Values{}
	if s.Range != nil {
		if !s.Range.Start.IsZero() {
			q.Set("start", s.Range.Start.Format(types.DateLayout))
		}
		if !s.Range.End.IsZero() {
			q.Set("end", s.Range.End.Format(types.DateLayout))
		}
	}
	if s.Season != types.SeasonAll {
		q.Set("season", s.Season.Name())
	}
	if s.Weather != types.WeatherAll {
		q.Set("weather", s.Weather.Name())
	}
	return q
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(types.DateLayout, s, time.UTC)
}
