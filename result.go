package convkit

import "errors"

// ErrorKind categorizes a failed conversion.
type ErrorKind string

// Error kinds reported by [Result.Kind].
const (
	ErrKindParse       ErrorKind = "parse"       // input is not well-formed
	ErrKindShape       ErrorKind = "shape"       // input parsed but cannot fill the target
	ErrKindUnsupported ErrorKind = "unsupported" // no converter for the format pair
)

// Result is the outcome of a conversion. On success Data holds the complete
// output; on failure Error holds a message and Data is empty.
type Result struct {
	Success bool      `json:"success"`
	Data    string    `json:"data,omitempty"`
	Error   string    `json:"error,omitempty"`
	Kind    ErrorKind `json:"kind,omitempty"`
}

// Err returns nil for a successful result and otherwise an error matching
// [ErrParse], [ErrShape] or [ErrUnsupportedFormat] per Kind.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return &resultError{kind: r.Kind, msg: r.Error}
}

type resultError struct {
	kind ErrorKind
	msg  string
}

func (e *resultError) Error() string { return e.msg }

func (e *resultError) Unwrap() error {
	switch e.kind {
	case ErrKindParse:
		return ErrParse
	case ErrKindShape:
		return ErrShape
	case ErrKindUnsupported:
		return ErrUnsupportedFormat
	default:
		return nil
	}
}

func ok(data string) Result {
	return Result{Success: true, Data: data}
}

func fail(err error) Result {
	r := Result{Error: err.Error()}
	switch {
	case errors.Is(err, ErrShape):
		r.Kind = ErrKindShape
	case errors.Is(err, ErrUnsupportedFormat):
		r.Kind = ErrKindUnsupported
	default:
		r.Kind = ErrKindParse
	}
	if r.Error == "" {
		r.Error = string(r.Kind) + " error"
	}
	return r
}
