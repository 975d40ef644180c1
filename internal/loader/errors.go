package loader

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when the input has no header row
var ErrNoData = errors.New("no data: input is empty")

// ParseError reports content that cannot be read as a table
type ParseError struct {
	Path string // Input file
	Line int    // 1-based line number, 0 when not tied to a line
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrMissingColumn is wrapped when the header lacks a column the run depends on
var ErrMissingColumn = errors.New("missing column")

// ErrRaggedRow is wrapped when a row has more fields than the header
var ErrRaggedRow = errors.New("too many fields")

// ErrEncoding is wrapped when no encoding hint can decode the input
var ErrEncoding = errors.New("undecodable input")
