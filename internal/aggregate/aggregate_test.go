package aggregate

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/chrissnell/bikeshare/internal/dataset"
	"github.com/chrissnell/bikeshare/internal/filter"
	"github.com/chrissnell/bikeshare/internal/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rec(d time.Time, season types.Season, weather types.Weather, weekday, count int) types.Record {
	return types.Record{Date: d, Month: d.Month(), Season: season, Weather: weather, Weekday: weekday, Count: count}
}

func randomDataset(n int, seed int64) *dataset.Dataset {
	rng := rand.New(rand.NewSource(seed))
	start := date(2011, 1, 1)
	records := make([]types.Record, n)
	for i := range records {
		d := start.AddDate(0, 0, i)
		records[i] = rec(d,
			types.Seasons[rng.Intn(4)],
			types.WeatherConditions[rng.Intn(3)],
			i%7, rng.Intn(8000))
	}
	return dataset.New(records)
}

func TestMeanBySeasonScenario(t *testing.T) {
	ds := dataset.New([]types.Record{
		rec(date(2011, 1, 1), types.SeasonWinter, types.WeatherClear, 1, 10),
		rec(date(2011, 4, 1), types.SeasonSpring, types.WeatherClear, 2, 20),
	})

	got, err := MeanBySeason(ds)
	if err != nil {
		t.Fatalf("MeanBySeason() unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, expected 2", len(got))
	}
	if got[0].Label != "Spring" || got[0].Mean != 20 {
		t.Errorf("got[0] = %+v, expected Spring 20", got[0])
	}
	if got[1].Label != "Winter" || got[1].Mean != 10 {
		t.Errorf("got[1] = %+v, expected Winter 10", got[1])
	}
}

func TestMeanTieBreakUsesEnumerationOrder(t *testing.T) {
	ds := dataset.New([]types.Record{
		rec(date(2011, 9, 1), types.SeasonFall, types.WeatherLightPrecip, 1, 50),
		rec(date(2011, 6, 1), types.SeasonSummer, types.WeatherCloudy, 1, 50),
		rec(date(2011, 1, 1), types.SeasonWinter, types.WeatherClear, 1, 50),
		rec(date(2011, 4, 1), types.SeasonSpring, types.WeatherClear, 1, 70),
	})

	seasons, err := MeanBySeason(ds)
	if err != nil {
		t.Fatalf("MeanBySeason() unexpected error: %v", err)
	}
	expected := []types.Season{types.SeasonSpring, types.SeasonWinter, types.SeasonSummer, types.SeasonFall}
	for i, s := range expected {
		if seasons[i].Code != s.Code() {
			t.Errorf("seasons[%d] = %s, expected %s", i, seasons[i].Label, s)
		}
	}

	weather, err := MeanByWeather(ds)
	if err != nil {
		t.Fatalf("MeanByWeather() unexpected error: %v", err)
	}
	expectedW := []types.Weather{types.WeatherClear, types.WeatherCloudy, types.WeatherLightPrecip}
	for i, w := range expectedW {
		if weather[i].Code != w.Code() {
			t.Errorf("weather[%d] = %s, expected %s", i, weather[i].Label, w)
		}
	}
	if weather[0].Mean != 60 || weather[0].Count != 2 {
		t.Errorf("clear = %+v, expected mean 60 over 2 days", weather[0])
	}
}

func TestMeansPreserveTotal(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		ds := randomDataset(100+int(seed)*13, seed)
		sel := filter.Selection{Weather: types.WeatherConditions[int(seed)%3]}
		filtered := sel.Apply(ds)

		total := 0
		for _, r := range filtered.Records() {
			total += r.Count
		}

		for name, fn := range map[string]func(*dataset.Dataset) ([]GroupMean, error){
			"season":  MeanBySeason,
			"weather": MeanByWeather,
			"month":   MeanByMonth,
		} {
			groups, err := fn(filtered)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", name, err)
			}
			var sum float64
			n := 0
			for i, g := range groups {
				sum += g.Mean * float64(g.Count)
				n += g.Count
				if i > 0 && groups[i-1].Mean < g.Mean {
					t.Errorf("%s: groups not sorted by descending mean", name)
				}
			}
			if n != filtered.Len() {
				t.Errorf("%s: group sizes sum to %d, expected %d", name, n, filtered.Len())
			}
			if math.Abs(sum-float64(total)) > 1e-6*float64(total+1) {
				t.Errorf("%s: sum(mean*n) = %f, expected %d", name, sum, total)
			}
		}
	}
}

func TestMonthsBefore(t *testing.T) {
	tests := []struct {
		in, expected time.Time
	}{
		{in: date(2012, 12, 31), expected: date(2012, 6, 30)},
		{in: date(2012, 8, 31), expected: date(2012, 2, 29)},
		{in: date(2011, 8, 31), expected: date(2011, 2, 28)},
		{in: date(2012, 3, 15), expected: date(2011, 9, 15)},
		{in: date(2012, 6, 1), expected: date(2011, 12, 1)},
	}

	for _, tt := range tests {
		got := MonthsBefore(tt.in, 6)
		if !got.Equal(tt.expected) {
			t.Errorf("MonthsBefore(%s) = %s, expected %s", tt.in.Format(types.DateLayout),
				got.Format(types.DateLayout), tt.expected.Format(types.DateLayout))
		}
	}
}

func TestWeekendVsWeekdayMeans(t *testing.T) {
	ds := dataset.New([]types.Record{
		// outside the window: more than six months before 2012-12-31
		rec(date(2012, 1, 6), types.SeasonWinter, types.WeatherClear, 5, 99999),
		rec(date(2012, 6, 29), types.SeasonSummer, types.WeatherClear, 5, 9999),
		// inside the window
		rec(date(2012, 6, 30), types.SeasonSummer, types.WeatherClear, 6, 300),
		rec(date(2012, 7, 2), types.SeasonSummer, types.WeatherClear, 1, 100),
		rec(date(2012, 7, 6), types.SeasonSummer, types.WeatherClear, 5, 500),
		rec(date(2012, 12, 31), types.SeasonWinter, types.WeatherClear, 0, 200),
	})

	split, err := WeekendVsWeekdayMeans(ds)
	if err != nil {
		t.Fatalf("WeekendVsWeekdayMeans() unexpected error: %v", err)
	}
	if !split.Since.Equal(date(2012, 6, 30)) || !split.Until.Equal(date(2012, 12, 31)) {
		t.Errorf("window = %v..%v", split.Since, split.Until)
	}
	if split.Weekend.Missing || split.Weekend.Count != 2 || split.Weekend.Mean != 400 {
		t.Errorf("weekend = %+v, expected mean 400 over 2 days", split.Weekend)
	}
	if split.Weekday.Missing || split.Weekday.Count != 2 || split.Weekday.Mean != 150 {
		t.Errorf("weekday = %+v, expected mean 150 over 2 days", split.Weekday)
	}
}

func TestWeekdayFiveIsWeekend(t *testing.T) {
	ds := dataset.New([]types.Record{
		rec(date(2012, 5, 4), types.SeasonSpring, types.WeatherClear, 5, 42),
		rec(date(2012, 5, 7), types.SeasonSpring, types.WeatherClear, 0, 7),
	})

	split, err := WeekendVsWeekdayMeans(ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if split.Weekend.Count != 1 || split.Weekend.Mean != 42 {
		t.Errorf("weekday 5 must land in the weekend partition, got %+v", split.Weekend)
	}
	if split.Weekday.Count != 1 || split.Weekday.Mean != 7 {
		t.Errorf("weekday 0 must land in the weekday partition, got %+v", split.Weekday)
	}
}

func TestWeekendVsWeekdayMissingPartition(t *testing.T) {
	ds := dataset.New([]types.Record{
		rec(date(2012, 5, 7), types.SeasonSpring, types.WeatherClear, 0, 7),
		rec(date(2012, 5, 8), types.SeasonSpring, types.WeatherClear, 1, 9),
	})

	split, err := WeekendVsWeekdayMeans(ds)
	if !errors.Is(err, ErrMissingData) {
		t.Fatalf("expected ErrMissingData, got %v", err)
	}
	if !split.Weekend.Missing {
		t.Errorf("weekend partition should be marked missing")
	}
	if split.Weekday.Missing || split.Weekday.Mean != 8 {
		t.Errorf("weekday partition should still be computed, got %+v", split.Weekday)
	}
	if math.IsNaN(split.Weekend.Mean) {
		t.Errorf("missing partition mean must not be NaN")
	}
}

func TestWeekendTrend(t *testing.T) {
	ds := dataset.New([]types.Record{
		rec(date(2012, 1, 7), types.SeasonWinter, types.WeatherClear, 6, 1),
		rec(date(2012, 12, 29), types.SeasonWinter, types.WeatherClear, 6, 30),
		rec(date(2012, 8, 3), types.SeasonSummer, types.WeatherClear, 5, 20),
		rec(date(2012, 8, 4), types.SeasonSummer, types.WeatherClear, 6, 21),
		rec(date(2012, 8, 6), types.SeasonSummer, types.WeatherClear, 1, 99),
		rec(date(2012, 12, 31), types.SeasonWinter, types.WeatherClear, 1, 99),
	})

	points, err := WeekendTrend(ds)
	if err != nil {
		t.Fatalf("WeekendTrend() unexpected error: %v", err)
	}
	expected := []Point{
		{Date: date(2012, 8, 3), Count: 20},
		{Date: date(2012, 8, 4), Count: 21},
		{Date: date(2012, 12, 29), Count: 30},
	}
	if len(points) != len(expected) {
		t.Fatalf("len = %d, expected %d (%v)", len(points), len(expected), points)
	}
	for i := range expected {
		if !points[i].Date.Equal(expected[i].Date) || points[i].Count != expected[i].Count {
			t.Errorf("points[%d] = %+v, expected %+v", i, points[i], expected[i])
		}
	}
}

func TestEmptyDatasetReportsMissingData(t *testing.T) {
	empty := filter.Selection{Range: &filter.DateRange{Start: date(2013, 1, 1), End: date(2012, 1, 1)}}.
		Apply(randomDataset(50, 1))
	if empty.Len() != 0 {
		t.Fatalf("expected empty selection")
	}

	if _, err := MeanBySeason(empty); !errors.Is(err, ErrMissingData) {
		t.Errorf("MeanBySeason: expected ErrMissingData, got %v", err)
	}
	if _, err := MeanByWeather(empty); !errors.Is(err, ErrMissingData) {
		t.Errorf("MeanByWeather: expected ErrMissingData, got %v", err)
	}
	if _, err := MeanByMonth(empty); !errors.Is(err, ErrMissingData) {
		t.Errorf("MeanByMonth: expected ErrMissingData, got %v", err)
	}
	split, err := WeekendVsWeekdayMeans(empty)
	if !errors.Is(err, ErrMissingData) {
		t.Errorf("WeekendVsWeekdayMeans: expected ErrMissingData, got %v", err)
	}
	if !split.Weekend.Missing || !split.Weekday.Missing {
		t.Errorf("both partitions should be missing: %+v", split)
	}
	if points, err := WeekendTrend(empty); !errors.Is(err, ErrMissingData) || len(points) != 0 {
		t.Errorf("WeekendTrend: expected empty + ErrMissingData, got %v, %v", points, err)
	}
	if _, err := Summarize(empty); !errors.Is(err, ErrMissingData) {
		t.Errorf("Summarize: expected ErrMissingData, got %v", err)
	}
	if len(DailyTrend(empty)) != 0 {
		t.Errorf("DailyTrend should be empty")
	}
}

func TestSummarize(t *testing.T) {
	ds := dataset.New([]types.Record{
		rec(date(2011, 3, 1), types.SeasonWinter, types.WeatherClear, 2, 100),
		rec(date(2011, 3, 2), types.SeasonWinter, types.WeatherClear, 3, 400),
		rec(date(2011, 3, 3), types.SeasonSpring, types.WeatherCloudy, 4, 100),
	})

	s, err := Summarize(ds)
	if err != nil {
		t.Fatalf("Summarize() unexpected error: %v", err)
	}
	if s.Days != 3 || s.Total != 600 || s.Mean != 200 {
		t.Errorf("summary = %+v", s)
	}
	if !s.PeakDate.Equal(date(2011, 3, 2)) || s.PeakCount != 400 {
		t.Errorf("peak = %v %d", s.PeakDate, s.PeakCount)
	}
	if !s.First.Equal(date(2011, 3, 1)) || !s.Last.Equal(date(2011, 3, 3)) {
		t.Errorf("bounds = %v..%v", s.First, s.Last)
	}
}

func TestAggregatesAreDeterministic(t *testing.T) {
	ds := randomDataset(365, 11)
	a, _ := MeanBySeason(ds)
	b, _ := MeanBySeason(ds)
	if len(a) != len(b) {
		t.Fatalf("length differs")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("MeanBySeason not deterministic at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}
