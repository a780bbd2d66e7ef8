package chart

import (
	"fmt"
	"io"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is the output image format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts "png" or "svg".
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	}
	return "", fmt.Errorf("unsupported chart format %q", s)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

var barColors = []drawing.Color{
	drawing.ColorFromHex("3b4cc0"),
	drawing.ColorFromHex("8db0fe"),
	drawing.ColorFromHex("f49a7b"),
	drawing.ColorFromHex("b40426"),
}

// Renderer draws chart requests.
type Renderer struct {
	Width      int
	Height     int
	NoDataText string
}

// NewRenderer returns a renderer with the default canvas size.
func NewRenderer() *Renderer {
	return &Renderer{Width: 1024, Height: 480, NoDataText: "No data for this selection"}
}

// Render writes req to w. An empty request renders a "no data" placeholder;
// a malformed one returns an error wrapping ErrMalformedRequest.
func (r *Renderer) Render(w io.Writer, req Request, format Format) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if req.Empty() {
		return r.placeholder(w, req.Title, format)
	}

	provider := gochart.PNG
	if format == FormatSVG {
		provider = gochart.SVG
	}

	switch req.Kind {
	case KindBar:
		return r.bar(req).Render(provider, w)
	default:
		return r.line(req).Render(provider, w)
	}
}

func (r *Renderer) line(req Request) gochart.Chart {
	xs := append([]time.Time(nil), req.XValues...)
	ys := append([]float64(nil), req.YValues...)

	// go-chart needs a non-zero x range
	if len(xs) == 1 {
		xs = append(xs, xs[0].Add(24*time.Hour))
		ys = append(ys, ys[0])
	}

	return gochart.Chart{
		Title:  req.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 48, Left: 24, Right: 24, Bottom: 24},
		},
		XAxis: gochart.XAxis{
			Name:           req.XLabel,
			ValueFormatter: gochart.TimeDateValueFormatter,
		},
		YAxis: gochart.YAxis{
			Name:  req.YLabel,
			Range: valueRange(ys),
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    req.Title,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: barColors[0],
					StrokeWidth: 1.5,
				},
			},
		},
	}
}

func (r *Renderer) bar(req Request) gochart.BarChart {
	bars := make([]gochart.Value, len(req.YValues))
	for i, v := range req.YValues {
		c := barColors[i%len(barColors)]
		bars[i] = gochart.Value{
			Label: req.Labels[i],
			Value: v,
			Style: gochart.Style{FillColor: c, StrokeColor: c},
		}
	}

	return gochart.BarChart{
		Title:  req.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 48, Left: 24, Right: 24, Bottom: 24},
		},
		BarWidth: 80,
		YAxis: gochart.YAxis{
			Name:  req.YLabel,
			Range: valueRange(req.YValues),
		},
		Bars: bars,
	}
}

// valueRange spans zero to just above the largest value. A fixed range keeps
// go-chart from rejecting series whose values are all equal.
func valueRange(ys []float64) *gochart.ContinuousRange {
	max := 0.0
	for _, y := range ys {
		if y > max {
			max = y
		}
	}
	if max == 0 {
		max = 1
	}
	return &gochart.ContinuousRange{Min: 0, Max: max * 1.1}
}
