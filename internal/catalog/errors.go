package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// DataSourceError reports a movie file that cannot be opened or lacks a
// required column. It is fatal at startup.
type DataSourceError struct {
	Path string
	Msg  string
	Err  error
}

func (e *DataSourceError) Error() string {
	var sb strings.Builder
	sb.WriteString("data source")
	if e.Path != "" {
		sb.WriteString(" ")
		sb.WriteString(strconv.Quote(e.Path))
	}
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// ParseError reports a value that could not be converted to a number:
// a rating or vote count from the file, or a position or year typed by
// the user.
type ParseError struct {
	Field string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IndexError reports a 1-based position outside a list of Len items.
type IndexError struct {
	Position int
	Len      int
}

func (e *IndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("position %d is out of range: list is empty", e.Position)
	}
	return fmt.Sprintf("position %d is out of range (1-%d)", e.Position, e.Len)
}

// RangeError reports a year outside the accepted inclusive range.
type RangeError struct {
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("year %d is out of range (%d-%d)", e.Value, e.Min, e.Max)
}

// ParsePosition converts raw user input into a 1-based position.
// Bounds are checked by whoever resolves the position.
func ParsePosition(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParseError{Field: "position", Input: s, Err: err}
	}
	return n, nil
}
