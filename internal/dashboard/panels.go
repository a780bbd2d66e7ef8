package dashboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/chrissnell/bikeshare/internal/aggregate"
	"github.com/chrissnell/bikeshare/internal/chart"
	"github.com/chrissnell/bikeshare/internal/dataset"
	"github.com/chrissnell/bikeshare/internal/log"
	"github.com/chrissnell/bikeshare/internal/types"
)

// PanelID names a chart panel. It doubles as the chart URL path segment.
type PanelID string

const (
	PanelDailyTrend   PanelID = "daily-trend"
	PanelSeason       PanelID = "season"
	PanelWeather      PanelID = "weather"
	PanelWeekSplit    PanelID = "week-split"
	PanelWeekendTrend PanelID = "weekend-trend"
)

// PanelIDs lists the panels in display order.
var PanelIDs = []PanelID{PanelDailyTrend, PanelSeason, PanelWeather, PanelWeekSplit, PanelWeekendTrend}

// ParsePanelID validates a panel name.
func ParsePanelID(s string) (PanelID, bool) {
	for _, id := range PanelIDs {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

// Status tells the page whether a panel has something to plot.
type Status string

const (
	StatusOK      Status = "ok"
	StatusPartial Status = "partial"
	StatusNoData  Status = "no_data"
)

// Panel is one chart with its heading and narrative. Question and
// Conclusion are set on the panels that answer one of the analysis questions.
type Panel struct {
	ID         PanelID       `json:"id"`
	Heading    string        `json:"heading"`
	Chart      chart.Request `json:"chart"`
	Insight    string        `json:"insight"`
	Detail     string        `json:"detail,omitempty"`
	Question   string        `json:"question,omitempty"`
	Conclusion string        `json:"conclusion,omitempty"`
	Status     Status        `json:"status"`
	Message    string        `json:"message,omitempty"`
}

// withFinding attaches the analysis question answered by the panel, if any.
func (d *Dashboard) withFinding(p Panel) Panel {
	if f, ok := d.cat.findings[p.ID]; ok {
		p.Question = f.question
		p.Conclusion = f.conclusion
	}
	return p
}

// noDataPanel keeps the chart kind and title so the placeholder is labelled.
func noDataPanel(p Panel, message string, err error) Panel {
	if err != nil && !errors.Is(err, aggregate.ErrMissingData) {
		log.Warnf("panel %s: %v", p.ID, err)
	}
	p.Chart.XValues = nil
	p.Chart.Labels = nil
	p.Chart.YValues = nil
	p.Status = StatusNoData
	p.Message = message
	p.Detail = ""
	return p
}

func linePoints(points []aggregate.Point) ([]time.Time, []float64) {
	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, pt := range points {
		xs[i] = pt.Date
		ys[i] = float64(pt.Count)
	}
	return xs, ys
}

func (d *Dashboard) dailyTrendPanel(ds *dataset.Dataset, noData string) Panel {
	p := Panel{
		ID:      PanelDailyTrend,
		Heading: d.cat.dailyHeading,
		Insight: d.cat.dailyInsight,
		Status:  StatusOK,
		Chart: chart.Request{
			Kind:   chart.KindLine,
			Title:  d.cat.dailyTitle,
			XLabel: d.cat.date,
			YLabel: d.cat.riders,
		},
	}

	points := aggregate.DailyTrend(ds)
	if len(points) == 0 {
		return noDataPanel(p, noData, nil)
	}
	p.Chart.XValues, p.Chart.YValues = linePoints(points)
	return p
}

func (d *Dashboard) barPanel(id PanelID, heading, title, xLabel, insight string, means []aggregate.GroupMean, label func(code int) string) Panel {
	p := Panel{
		ID:      id,
		Heading: heading,
		Insight: insight,
		Status:  StatusOK,
		Chart: chart.Request{
			Kind:   chart.KindBar,
			Title:  title,
			XLabel: xLabel,
			YLabel: d.cat.meanRiders,
		},
	}
	for _, g := range means {
		p.Chart.Labels = append(p.Chart.Labels, label(g.Code))
		p.Chart.YValues = append(p.Chart.YValues, g.Mean)
	}
	if len(means) > 0 {
		p.Detail = fmt.Sprintf(d.cat.topCategory, label(means[0].Code), d.cat.decimal(means[0].Mean))
	}
	return p
}

func (d *Dashboard) seasonPanel(ds *dataset.Dataset, noData string) Panel {
	means, err := aggregate.MeanBySeason(ds)
	p := d.barPanel(PanelSeason, d.cat.seasonHeading, d.cat.seasonTitle, d.cat.season, d.cat.seasonInsight, means,
		func(code int) string { return d.cat.seasonLabel(types.Season(code)) })
	if err != nil {
		return noDataPanel(p, noData, err)
	}
	return p
}

func (d *Dashboard) weatherPanel(ds *dataset.Dataset, noData string) Panel {
	means, err := aggregate.MeanByWeather(ds)
	p := d.barPanel(PanelWeather, d.cat.weatherHeading, d.cat.weatherTitle, d.cat.condition, d.cat.weatherInsight, means,
		func(code int) string { return d.cat.weatherLabel(types.Weather(code)) })
	if err != nil {
		return noDataPanel(p, noData, err)
	}
	return p
}

func (d *Dashboard) weekSplitPanel(ds *dataset.Dataset, noData string) Panel {
	p := Panel{
		ID:      PanelWeekSplit,
		Heading: d.cat.splitHeading,
		Insight: d.cat.splitInsight,
		Status:  StatusOK,
		Chart: chart.Request{
			Kind:   chart.KindBar,
			Title:  d.cat.splitTitle,
			YLabel: d.cat.meanRiders,
		},
	}

	split, err := aggregate.WeekendVsWeekdayMeans(ds)
	if split.Weekend.Missing && split.Weekday.Missing {
		return noDataPanel(p, noData, err)
	}

	parts := []struct {
		label string
		part  aggregate.Partition
	}{
		{d.cat.weekend, split.Weekend},
		{d.cat.weekday, split.Weekday},
	}
	for _, pt := range parts {
		if pt.part.Missing {
			p.Status = StatusPartial
			p.Message = pt.label + ": " + noData
			continue
		}
		p.Chart.Labels = append(p.Chart.Labels, pt.label)
		p.Chart.YValues = append(p.Chart.YValues, pt.part.Mean)
	}

	window := fmt.Sprintf(d.cat.windowNote, d.cat.day(split.Since), d.cat.day(split.Until))
	if p.Status == StatusOK {
		hi, lo := parts[0], parts[1]
		if lo.part.Mean > hi.part.Mean {
			hi, lo = lo, hi
		}
		p.Detail = fmt.Sprintf(d.cat.splitHigher, hi.label, d.cat.decimal(hi.part.Mean), d.cat.decimal(lo.part.Mean), lo.label) + " " + window
	} else {
		p.Detail = window
	}
	return p
}

func (d *Dashboard) weekendTrendPanel(ds *dataset.Dataset, noData string) Panel {
	p := Panel{
		ID:      PanelWeekendTrend,
		Heading: d.cat.trendHeading,
		Insight: d.cat.trendInsight,
		Status:  StatusOK,
		Chart: chart.Request{
			Kind:   chart.KindLine,
			Title:  d.cat.trendTitle,
			XLabel: d.cat.date,
			YLabel: d.cat.riders,
		},
	}

	points, err := aggregate.WeekendTrend(ds)
	if err != nil {
		return noDataPanel(p, noData, err)
	}
	p.Chart.XValues, p.Chart.YValues = linePoints(points)
	return p
}
