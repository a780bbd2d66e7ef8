// Package chart turns chart requests into PNG or SVG images.
package chart

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedRequest is wrapped by Validate for requests that cannot be drawn.
var ErrMalformedRequest = errors.New("malformed chart request")

// Kind selects the chart type.
type Kind string

const (
	KindLine Kind = "line"
	KindBar  Kind = "bar"
)

// Request describes one chart. Line charts plot YValues against XValues
// (dates); bar charts plot YValues against Labels (categories).
type Request struct {
	Kind    Kind        `json:"kind"`
	Title   string      `json:"title"`
	XLabel  string      `json:"x_label,omitempty"`
	YLabel  string      `json:"y_label,omitempty"`
	XValues []time.Time `json:"x_values,omitempty"`
	Labels  []string    `json:"labels,omitempty"`
	YValues []float64   `json:"y_values"`
}

// Empty reports whether the request has nothing to plot.
func (r Request) Empty() bool {
	return len(r.YValues) == 0
}

// Validate checks that the request's series line up with its kind.
func (r Request) Validate() error {
	switch r.Kind {
	case KindLine:
		if len(r.XValues) != len(r.YValues) {
			return fmt.Errorf("%w: line chart %q has %d x values and %d y values",
				ErrMalformedRequest, r.Title, len(r.XValues), len(r.YValues))
		}
	case KindBar:
		if len(r.Labels) != len(r.YValues) {
			return fmt.Errorf("%w: bar chart %q has %d labels and %d values",
				ErrMalformedRequest, r.Title, len(r.Labels), len(r.YValues))
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrMalformedRequest, r.Kind)
	}
	return nil
}
