// Package dashboard assembles the dashboard view for one filter selection:
// it runs the filter and aggregate stages and turns their results into chart
// requests with headings and narrative text.
package dashboard

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chrissnell/bikeshare/internal/aggregate"
	"github.com/chrissnell/bikeshare/internal/dataset"
	"github.com/chrissnell/bikeshare/internal/filter"
	"github.com/chrissnell/bikeshare/internal/log"
	"github.com/chrissnell/bikeshare/internal/types"
)

// Config holds presentation settings. Empty Title and Footer fall back to
// the locale's defaults.
type Config struct {
	Title  string
	Footer string
	Locale Locale
}

// Dashboard owns the loaded dataset. It is safe for concurrent use because
// the dataset is never modified and every Build works on its own results.
type Dashboard struct {
	ds     *dataset.Dataset
	cfg    Config
	cat    *catalog
	locale Locale
}

// New returns a dashboard over ds.
func New(ds *dataset.Dataset, cfg Config) (*Dashboard, error) {
	locale, err := ParseLocale(string(cfg.Locale))
	if err != nil {
		return nil, err
	}
	if ds == nil {
		ds = dataset.Empty()
	}
	return &Dashboard{ds: ds, cfg: cfg, cat: catalogs[locale], locale: locale}, nil
}

// Dataset returns the dataset the dashboard was built over.
func (d *Dashboard) Dataset() *dataset.Dataset { return d.ds }

// NoDataText is the placeholder text for charts with nothing to plot.
func (d *Dashboard) NoDataText() string { return d.cat.noData }

// SelectionView is the selection as shown to the user.
type SelectionView struct {
	Start        string `json:"start,omitempty"`
	End          string `json:"end,omitempty"`
	Season       string `json:"season"`
	SeasonLabel  string `json:"season_label"`
	Weather      string `json:"weather"`
	WeatherLabel string `json:"weather_label"`
}

// View is everything one display cycle shows.
type View struct {
	Cycle     string             `json:"cycle"`
	Locale    Locale             `json:"locale"`
	Title     string             `json:"title"`
	Intro     string             `json:"intro"`
	Footer    string             `json:"footer"`
	Selection SelectionView      `json:"selection"`
	Query     string             `json:"query"`
	Summary   string             `json:"summary"`
	Stats     *aggregate.Summary `json:"stats,omitempty"`
	Panels    []Panel            `json:"panels"`
}

// Panel returns the panel with the given id.
func (v *View) Panel(id PanelID) (Panel, bool) {
	for _, p := range v.Panels {
		if p.ID == id {
			return p, true
		}
	}
	return Panel{}, false
}

// Build runs the pipeline for sel. A missing date range defaults to the
// dataset's full span. Build never fails: aggregates without data turn into
// "no data" panels.
func (d *Dashboard) Build(sel filter.Selection) *View {
	cycle := uuid.NewString()
	sel = sel.WithDefaultRange(d.ds)
	selected := sel.Apply(d.ds)

	log.Debugw("building dashboard",
		"cycle", cycle,
		"selection", sel.Query().Encode(),
		"rows", d.ds.Len(),
		"selected", selected.Len(),
	)

	noData := d.cat.noData
	if sel.InvertedRange() {
		noData = d.cat.noDataInRange
	}

	v := &View{
		Cycle:     cycle,
		Locale:    d.locale,
		Title:     d.cat.title,
		Intro:     d.cat.intro,
		Footer:    d.cat.footer,
		Selection: d.selectionView(sel),
		Query:     sel.Query().Encode(),
	}
	if d.cfg.Title != "" {
		v.Title = d.cfg.Title
	}
	if d.cfg.Footer != "" {
		v.Footer = d.cfg.Footer
	}

	v.Summary, v.Stats = d.summarize(selected, noData)
	v.Panels = []Panel{
		d.dailyTrendPanel(selected, noData),
		d.seasonPanel(selected, noData),
		d.weatherPanel(selected, noData),
		d.weekSplitPanel(selected, noData),
		d.weekendTrendPanel(selected, noData),
	}

	for i, p := range v.Panels {
		v.Panels[i] = d.withFinding(p)
		if p.Status != StatusOK {
			log.Debugw("panel without data", "cycle", cycle, "panel", p.ID, "status", p.Status)
		}
	}
	return v
}

func (d *Dashboard) selectionView(sel filter.Selection) SelectionView {
	sv := SelectionView{
		Season:       sel.Season.Name(),
		SeasonLabel:  d.cat.seasonLabel(sel.Season),
		Weather:      sel.Weather.Name(),
		WeatherLabel: d.cat.weatherLabel(sel.Weather),
	}
	if sel.Range != nil {
		if !sel.Range.Start.IsZero() {
			sv.Start = sel.Range.Start.Format(types.DateLayout)
		}
		if !sel.Range.End.IsZero() {
			sv.End = sel.Range.End.Format(types.DateLayout)
		}
	}
	return sv
}

func (d *Dashboard) summarize(ds *dataset.Dataset, noData string) (string, *aggregate.Summary) {
	stats, err := aggregate.Summarize(ds)
	if err != nil {
		return noData, nil
	}
	line := fmt.Sprintf(d.cat.summary, d.cat.integer(stats.Days), d.cat.integer(stats.Total), d.cat.decimal(stats.Mean))

	if months, err := aggregate.MeanByMonth(ds); err == nil {
		top := months[0]
		line += " " + fmt.Sprintf(d.cat.busiestMonth, d.cat.monthLabel(time.Month(top.Code)), d.cat.decimal(top.Mean))
	}
	return line, &stats
}

// Option is one entry of a selector.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options describes the controls: the season and weather selectors and
// the date bounds the date picker starts from.
type Options struct {
	Seasons []Option `json:"seasons"`
	Weather []Option `json:"weather"`
	MinDate string   `json:"min_date,omitempty"`
	MaxDate string   `json:"max_date,omitempty"`
}

// Options returns the selector values for the dataset.
func (d *Dashboard) Options() Options {
	o := Options{
		Seasons: []Option{{Value: types.SeasonAll.Name(), Label: d.cat.allSeasons}},
		Weather: []Option{{Value: types.WeatherAll.Name(), Label: d.cat.allWeather}},
	}
	for _, s := range types.Seasons {
		o.Seasons = append(o.Seasons, Option{Value: s.Name(), Label: d.cat.seasonLabel(s)})
	}
	for _, w := range types.WeatherConditions {
		o.Weather = append(o.Weather, Option{Value: w.Name(), Label: d.cat.weatherLabel(w)})
	}
	if min, max, ok := d.ds.Bounds(); ok {
		o.MinDate = min.Format(types.DateLayout)
		o.MaxDate = max.Format(types.DateLayout)
	}
	return o
}
