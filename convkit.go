package convkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrParse             = errors.New("parse error")
	ErrShape             = errors.New("shape error")
)

// Format represents a text representation convkit can read or write.
type Format string

const (
	JSON     Format = "json"
	XML      Format = "xml"
	CSV      Format = "csv"
	TSV      Format = "tsv"
	YAML     Format = "yaml"
	JSONL    Format = "jsonl"
	Table    Format = "table"
	Markdown Format = "markdown"
	HTML     Format = "html"
)

var formats = []Format{JSON, XML, CSV, TSV, YAML, JSONL, Table, Markdown, HTML}

// aliases maps alternative names accepted by ParseFormat.
var aliases = map[string]Format{
	"markup": XML,
	"ndjson": JSONL,
	"yml":    YAML,
	"md":     Markdown,
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// CanDecode reports whether f can be used as a conversion source. Table,
// Markdown, and HTML are output-only previews.
func (f Format) CanDecode() bool {
	switch f {
	case JSON, XML, CSV, TSV, YAML, JSONL:
		return true
	default:
		return false
	}
}

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name. It recognizes every name returned by
// [Formats] and a few common aliases ("markup", "ndjson", "yml", "md").
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	if f, ok := aliases[s]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ParseError reports input that could not be read in its declared format.
// Its message is the underlying parser's message, unchanged.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string { return e.Err.Error() }

// Unwrap exposes both [ErrParse] and the parser's own error.
func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// ShapeError reports well-formed input whose structure cannot be expressed
// in the target format.
type ShapeError struct {
	Format Format
	Reason string
}

func (e *ShapeError) Error() string { return e.Reason }

func (e *ShapeError) Unwrap() error { return ErrShape }

func parseErr(f Format, err error) error {
	return &ParseError{Format: f, Err: err}
}

func parseErrf(f Format, format string, args ...any) error {
	return &ParseError{Format: f, Err: fmt.Errorf(format, args...)}
}
