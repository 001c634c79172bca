package convkit

import "regexp"

// Kind identifies the concrete type of a [Value].
type Kind int

// Value kinds, one per concrete [Value] type.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindMapping
	KindSequence
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Value is the canonical tree every format is translated through. It is
// implemented by [Null], [Bool], [Number], [String], [*Mapping] and
// [Sequence] only.
type Value interface {
	Kind() Kind
	value()
}

// Null is the absent value.
type Null struct{}

// Bool is a boolean scalar.
type Bool bool

// Number is a numeric scalar stored as its decimal literal, so values read
// from JSON are written back byte for byte.
type Number string

// String is a text scalar.
type String string

// Sequence is an ordered list of values.
type Sequence []Value

func (Null) Kind() Kind     { return KindNull }
func (Bool) Kind() Kind     { return KindBool }
func (Number) Kind() Kind   { return KindNumber }
func (String) Kind() Kind   { return KindString }
func (*Mapping) Kind() Kind { return KindMapping }
func (Sequence) Kind() Kind { return KindSequence }

func (Null) value()     {}
func (Bool) value()     {}
func (Number) value()   {}
func (String) value()   {}
func (*Mapping) value() {}
func (Sequence) value() {}

// Mapping is a string-keyed map that remembers insertion order.
type Mapping struct {
	keys []string
	vals map[string]Value
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{vals: map[string]Value{}}
}

// Set stores v under key. Setting an existing key replaces its value and
// keeps its original position.
func (m *Mapping) Set(key string, v Value) {
	if v == nil {
		v = Null{}
	}
	if m.vals == nil {
		m.vals = map[string]Value{}
	}
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *Mapping) Len() int { return len(m.keys) }

// Each calls fn for every entry in insertion order until fn returns false.
func (m *Mapping) Each(fn func(key string, v Value) bool) {
	for _, k := range m.keys {
		if !fn(k, m.vals[k]) {
			return
		}
	}
}

var numberLiteral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// inferScalar re-types text read from markup or tabular input. Numeric
// literals become numbers and exact "true"/"false" become booleans.
// Anything else, including numbers with leading zeros, stays a string.
func inferScalar(s string) Value {
	switch s {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if numberLiteral.MatchString(s) {
		return Number(s)
	}
	return String(s)
}

// scalarText returns the literal text of a scalar and reports whether v was
// a scalar. Null renders as the empty string.
func scalarText(v Value) (string, bool) {
	switch t := v.(type) {
	case Null:
		return "", true
	case Bool:
		if t {
			return "true", true
		}
		return "false", true
	case Number:
		return string(t), true
	case String:
		return string(t), true
	case *Mapping, Sequence:
		return "", false
	default:
		return "", false
	}
}
