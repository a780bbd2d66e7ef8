package filter

import (
	"math/rand"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/chrissnell/bikeshare/internal/dataset"
	"github.com/chrissnell/bikeshare/internal/types"
)

var day0 = time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time { return day0.AddDate(0, 0, n) }

// sampleDataset builds n consecutive days with pseudo-random attributes.
func sampleDataset(n int, seed int64) *dataset.Dataset {
	rng := rand.New(rand.NewSource(seed))
	records := make([]types.Record, n)
	for i := range records {
		d := day(i)
		records[i] = types.Record{
			Date:    d,
			Month:   d.Month(),
			Season:  types.Seasons[rng.Intn(len(types.Seasons))],
			Weather: types.WeatherConditions[rng.Intn(len(types.WeatherConditions))],
			Weekday: int(d.Weekday()),
			Count:   rng.Intn(9000),
		}
	}
	return dataset.New(records)
}

func TestByDateRange(t *testing.T) {
	ds := sampleDataset(60, 1)

	tests := []struct {
		name       string
		start, end time.Time
		expected   int
	}{
		{name: "whole range", start: day(0), end: day(59), expected: 60},
		{name: "inclusive bounds", start: day(10), end: day(19), expected: 10},
		{name: "single day", start: day(7), end: day(7), expected: 1},
		{name: "wider than data", start: day(-30), end: day(90), expected: 60},
		{name: "outside data", start: day(100), end: day(120), expected: 0},
		{name: "inverted", start: day(20), end: day(10), expected: 0},
		{name: "time of day ignored", start: day(5).Add(23 * time.Hour), end: day(6).Add(time.Hour), expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ByDateRange(ds, tt.start, tt.end)
			if got.Len() != tt.expected {
				t.Fatalf("ByDateRange() len = %d, expected %d", got.Len(), tt.expected)
			}
			start, end := types.DateOf(tt.start), types.DateOf(tt.end)
			for i := 0; i < got.Len(); i++ {
				r := got.At(i)
				if r.Date.Before(start) || r.Date.After(end) {
					t.Errorf("record %v outside [%v, %v]", r.Date, start, end)
				}
				if i > 0 && !got.At(i - 1).Date.Before(r.Date) {
					t.Errorf("order not preserved at %d", i)
				}
			}
		})
	}
}

func TestByDateRangeExactness(t *testing.T) {
	ds := sampleDataset(120, 2)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 200; i++ {
		s, e := day(rng.Intn(140)-10), day(rng.Intn(140)-10)
		got := ByDateRange(ds, s, e)

		var expected []types.Record
		if !s.After(e) {
			for _, r := range ds.Records() {
				if !r.Date.Before(s) && !r.Date.After(e) {
					expected = append(expected, r)
				}
			}
		}
		if !reflect.DeepEqual(got.Records(), nonNil(expected)) {
			t.Fatalf("ByDateRange(%v, %v) mismatch: got %d records, expected %d", s, e, got.Len(), len(expected))
		}
	}
}

func nonNil(r []types.Record) []types.Record {
	if r == nil {
		return []types.Record{}
	}
	return r
}

func TestSingleDayRangeReturnsOneRecord(t *testing.T) {
	ds := sampleDataset(30, 4)
	target := ds.At(12)

	got := ByDateRange(ds, target.Date, target.Date)
	if got.Len() != 1 {
		t.Fatalf("len = %d, expected 1", got.Len())
	}
	if got.At(0) != target {
		t.Errorf("got %+v, expected %+v", got.At(0), target)
	}
}

func TestBySeasonAndWeather(t *testing.T) {
	ds := sampleDataset(200, 5)

	if got := BySeason(ds, types.SeasonAll); got != ds {
		t.Errorf("BySeason(all) must return the input unchanged")
	}
	if got := ByWeather(ds, types.WeatherAll); got != ds {
		t.Errorf("ByWeather(all) must return the input unchanged")
	}

	for _, s := range types.Seasons {
		got := BySeason(ds, s)
		for _, r := range got.Records() {
			if r.Season != s {
				t.Errorf("BySeason(%v) returned %v", s, r.Season)
			}
		}
	}

	total := 0
	for _, w := range types.WeatherConditions {
		got := ByWeather(ds, w)
		total += got.Len()
		for _, r := range got.Records() {
			if r.Weather != w {
				t.Errorf("ByWeather(%v) returned %v", w, r.Weather)
			}
		}
	}
	if total != ds.Len() {
		t.Errorf("weather partitions cover %d records, expected %d", total, ds.Len())
	}
}

func TestFilterCompositionIsCommutative(t *testing.T) {
	ds := sampleDataset(150, 6)
	seasons := append([]types.Season{types.SeasonAll}, types.Seasons...)
	weathers := append([]types.Weather{types.WeatherAll}, types.WeatherConditions...)

	for _, s := range seasons {
		for _, w := range weathers {
			a := BySeason(ByWeather(ds, w), s).Records()
			b := ByWeather(BySeason(ds, s), w).Records()
			if !reflect.DeepEqual(a, b) {
				t.Errorf("season %v / weather %v: composition differs", s, w)
			}

			r1 := ByDateRange(BySeason(ds, s), day(20), day(80)).Records()
			r2 := BySeason(ByDateRange(ds, day(20), day(80)), s).Records()
			if !reflect.DeepEqual(r1, r2) {
				t.Errorf("season %v: date range composition differs", s)
			}
		}
	}
}

func TestFiltersAreIdempotent(t *testing.T) {
	ds := sampleDataset(90, 7)

	once := BySeason(ds, types.SeasonSummer)
	if !reflect.DeepEqual(once.Records(), BySeason(once, types.SeasonSummer).Records()) {
		t.Errorf("BySeason not idempotent")
	}

	onceW := ByWeather(ds, types.WeatherCloudy)
	if !reflect.DeepEqual(onceW.Records(), ByWeather(onceW, types.WeatherCloudy).Records()) {
		t.Errorf("ByWeather not idempotent")
	}

	onceD := ByDateRange(ds, day(3), day(40))
	if !reflect.DeepEqual(onceD.Records(), ByDateRange(onceD, day(3), day(40)).Records()) {
		t.Errorf("ByDateRange not idempotent")
	}
}

func TestFiltersDoNotMutateInput(t *testing.T) {
	ds := sampleDataset(40, 8)
	before := ds.Records()

	_ = ByDateRange(ds, day(5), day(10))
	_ = BySeason(ds, types.SeasonFall)
	_ = ByWeather(ds, types.WeatherClear)

	if !reflect.DeepEqual(before, ds.Records()) {
		t.Errorf("filters mutated their input")
	}
}

func TestFiltersOnEmptyDataset(t *testing.T) {
	empty := dataset.Empty()
	if ByDateRange(empty, day(0), day(10)).Len() != 0 {
		t.Errorf("ByDateRange on empty dataset should be empty")
	}
	if BySeason(empty, types.SeasonWinter).Len() != 0 {
		t.Errorf("BySeason on empty dataset should be empty")
	}
	if ByWeather(empty, types.WeatherClear).Len() != 0 {
		t.Errorf("ByWeather on empty dataset should be empty")
	}
	if (Selection{Season: types.SeasonSpring}).Apply(nil).Len() != 0 {
		t.Errorf("Apply on nil dataset should be empty")
	}
}

func TestSelectionApply(t *testing.T) {
	ds := sampleDataset(100, 9)
	sel := Selection{
		Range:   &DateRange{Start: day(10), End: day(70)},
		Season:  types.SeasonSpring,
		Weather: types.WeatherClear,
	}

	expected := ByWeather(BySeason(ByDateRange(ds, day(10), day(70)), types.SeasonSpring), types.WeatherClear)
	if !reflect.DeepEqual(sel.Apply(ds).Records(), expected.Records()) {
		t.Errorf("Apply() differs from composing the filters")
	}

	open := Selection{Range: &DateRange{Start: day(90)}}
	if got := open.Apply(ds).Len(); got != 10 {
		t.Errorf("open-ended range len = %d, expected 10", got)
	}
}

func TestSelectionInvertedRange(t *testing.T) {
	if (Selection{}).InvertedRange() {
		t.Errorf("no range is never inverted")
	}
	inv := Selection{Range: &DateRange{Start: day(5), End: day(1)}}
	if !inv.InvertedRange() {
		t.Errorf("expected inverted range")
	}
	if inv.Apply(sampleDataset(10, 1)).Len() != 0 {
		t.Errorf("inverted range should select nothing")
	}
}

func TestWithDefaultRange(t *testing.T) {
	ds := sampleDataset(10, 1)

	sel := Selection{}.WithDefaultRange(ds)
	if sel.Range == nil || !sel.Range.Start.Equal(day(0)) || !sel.Range.End.Equal(day(9)) {
		t.Fatalf("WithDefaultRange() = %+v", sel.Range)
	}

	half := Selection{Range: &DateRange{Start: day(3)}}.WithDefaultRange(ds)
	if !half.Range.Start.Equal(day(3)) || !half.Range.End.Equal(day(9)) {
		t.Errorf("half-open range = %+v", half.Range)
	}

	if got := (Selection{}).WithDefaultRange(dataset.Empty()); got.Range != nil {
		t.Errorf("empty dataset should leave range unset")
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		check   func(t *testing.T, s Selection)
		wantErr bool
	}{
		{
			name:  "empty",
			query: "",
			check: func(t *testing.T, s Selection) {
				if s.Range != nil || s.Season != types.SeasonAll || s.Weather != types.WeatherAll {
					t.Errorf("expected unrestricted selection, got %+v", s)
				}
			},
		},
		{
			name:  "full",
			query: "start=2011-02-01&end=2011-03-01&season=spring&weather=2",
			check: func(t *testing.T, s Selection) {
				if s.Range == nil || !s.Range.Start.Equal(day(31)) || !s.Range.End.Equal(day(59)) {
					t.Errorf("range = %+v", s.Range)
				}
				if s.Season != types.SeasonSpring || s.Weather != types.WeatherCloudy {
					t.Errorf("season/weather = %v/%v", s.Season, s.Weather)
				}
			},
		},
		{
			name:  "inverted range is not an error",
			query: "start=2011-03-01&end=2011-02-01",
			check: func(t *testing.T, s Selection) {
				if !s.InvertedRange() {
					t.Errorf("expected inverted range")
				}
			},
		},
		{name: "bad date", query: "start=01/02/2011", wantErr: true},
		{name: "bad season", query: "season=monsoon", wantErr: true},
		{name: "bad weather", query: "weather=9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			sel, err := ParseQuery(q)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQuery() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, sel)
			}
		})
	}
}

func TestSelectionQueryRoundTrip(t *testing.T) {
	sel := Selection{
		Range:   &DateRange{Start: day(1), End: day(40)},
		Season:  types.SeasonFall,
		Weather: types.WeatherLightPrecip,
	}
	got, err := ParseQuery(sel.Query())
	if err != nil {
		t.Fatalf("ParseQuery() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, sel) {
		t.Errorf("round trip = %+v, expected %+v", got, sel)
	}
}
