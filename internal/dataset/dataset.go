// Package dataset loads the bike-sharing day table and holds it as an
// immutable, ordered sequence of records.
package dataset

import (
	"time"

	"github.com/chrissnell/bikeshare/internal/types"
)

// Dataset is an ordered, read-only sequence of records. Source order is
// preserved by every operation that derives a new Dataset. A nil *Dataset
// behaves as an empty one.
type Dataset struct {
	records []types.Record
}

// New returns a Dataset holding a copy of records.
func New(records []types.Record) *Dataset {
	cp := make([]types.Record, len(records))
	copy(cp, records)
	return &Dataset{records: cp}
}

// Empty returns a Dataset with no records.
func Empty() *Dataset {
	return &Dataset{}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// At returns the i'th record.
func (d *Dataset) At(i int) types.Record {
	return d.records[i]
}

// Records returns a copy of the underlying records.
func (d *Dataset) Records() []types.Record {
	if d == nil {
		return nil
	}
	cp := make([]types.Record, len(d.records))
	copy(cp, d.records)
	return cp
}

// Where returns the subsequence of records for which keep returns true.
func (d *Dataset) Where(keep func(types.Record) bool) *Dataset {
	if d.Len() == 0 {
		return Empty()
	}
	out := make([]types.Record, 0, len(d.records))
	for _, r := range d.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return &Dataset{records: out}
}

// Counts returns the count column as float64 values, in order.
func (d *Dataset) Counts() []float64 {
	out := make([]float64, d.Len())
	for i := range out {
		out[i] = float64(d.records[i].Count)
	}
	return out
}

// Bounds returns the earliest and latest dates. ok is false when the
// dataset is empty.
func (d *Dataset) Bounds() (min, max time.Time, ok bool) {
	if d.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max = d.records[0].Date, d.records[0].Date
	for _, r := range d.records[1:] {
		if r.Date.Before(min) {
			min = r.Date
		}
		if r.Date.After(max) {
			max = r.Date
		}
	}
	return min, max, true
}
