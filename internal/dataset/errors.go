package dataset

import (
	"errors"
	"fmt"
)

// ErrMissingColumn is wrapped by a ParseError when a required column is absent.
var ErrMissingColumn = errors.New("missing column")

// ResourceError reports a dataset resource that is missing or unreadable.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("dataset resource %s unavailable: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// ParseError reports a malformed field. Row is the 1-based data row; it is
// zero for errors that concern the table as a whole.
type ParseError struct {
	Source string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Row == 0 && e.Column != "":
		return fmt.Sprintf("%s: column %q: %v", e.Source, e.Column, e.Err)
	case e.Row == 0:
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	case e.Column == "":
		return fmt.Sprintf("%s: row %d: %v", e.Source, e.Row, e.Err)
	}
	return fmt.Sprintf("%s: row %d, column %q: invalid value %q: %v", e.Source, e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
