package convkit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// decodeJSON parses s into a canonical value, keeping object key order.
func decodeJSON(s string) (Value, error) {
	data := []byte(s)
	// Unmarshal first so syntax errors carry the standard messages and
	// offsets; the token walk below then never sees malformed input.
	if err := json.Unmarshal(data, new(any)); err != nil {
		var se *json.SyntaxError
		if errors.As(err, &se) {
			return nil, parseErrf(JSON, "%s at position %d", se.Error(), se.Offset)
		}
		return nil, parseErr(JSON, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := readJSONValue(dec)
	if err != nil {
		return nil, parseErr(JSON, err)
	}
	return v, nil
}

func readJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				v, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			seq := Sequence{}
			for dec.More() {
				v, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				seq = append(seq, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return seq, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case nil:
		return Null{}, nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// encodeJSON renders v as JSON. An empty indent produces compact output.
func encodeJSON(v Value, indent string) string {
	var sb strings.Builder
	writeJSONValue(&sb, v, indent, 0)
	return sb.String()
}

func writeJSONValue(sb *strings.Builder, v Value, indent string, depth int) {
	switch t := v.(type) {
	case Null:
		sb.WriteString("null")
	case Bool:
		if t {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case Number:
		sb.WriteString(string(t))
	case String:
		sb.WriteString(quoteJSON(string(t)))
	case *Mapping:
		if t.Len() == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteByte('{')
		i := 0
		t.Each(func(key string, val Value) bool {
			if i > 0 {
				sb.WriteByte(',')
			}
			jsonNewline(sb, indent, depth+1)
			sb.WriteString(quoteJSON(key))
			sb.WriteByte(':')
			if indent != "" {
				sb.WriteByte(' ')
			}
			writeJSONValue(sb, val, indent, depth+1)
			i++
			return true
		})
		jsonNewline(sb, indent, depth)
		sb.WriteByte('}')
	case Sequence:
		if len(t) == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				sb.WriteByte(',')
			}
			jsonNewline(sb, indent, depth+1)
			writeJSONValue(sb, item, indent, depth+1)
		}
		jsonNewline(sb, indent, depth)
		sb.WriteByte(']')
	default:
		sb.WriteString("null")
	}
}

func jsonNewline(sb *strings.Builder, indent string, depth int) {
	if indent == "" {
		return
	}
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(indent, depth))
}

func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // strings always encode
	return strings.TrimSuffix(buf.String(), "\n")
}

// JSONToXML converts JSON text to markup using the default configuration.
func JSONToXML(s string) Result { return defaultConverter.Convert(s, JSON, XML) }

// XMLToJSON converts markup to JSON text using the default configuration.
func XMLToJSON(s string) Result { return defaultConverter.Convert(s, XML, JSON) }

// JSONToCSV converts JSON text to CSV using the default configuration.
func JSONToCSV(s string) Result { return defaultConverter.Convert(s, JSON, CSV) }

// CSVToJSON converts CSV to JSON text using the default configuration.
func CSVToJSON(s string) Result { return defaultConverter.Convert(s, CSV, JSON) }

// XMLToCSV converts markup to CSV through JSON.
func XMLToCSV(s string) Result { return defaultConverter.Convert(s, XML, CSV) }

// CSVToXML converts CSV to markup through JSON.
func CSVToXML(s string) Result { return defaultConverter.Convert(s, CSV, XML) }

// IsValidJSON reports whether s is a single well-formed JSON value.
func IsValidJSON(s string) bool {
	return json.Valid([]byte(s))
}

// FormatJSON pretty-prints JSON with the default indent. Input that is not
// valid JSON is returned unchanged.
func FormatJSON(content string) string {
	v, err := decodeJSON(content)
	if err != nil {
		return content
	}
	return encodeJSON(v, defaultConverter.config.Indent)
}

// ParseJSON pretty-prints JSON. A top-level string that itself holds JSON
// (double-encoded JSON) is decoded once more.
func ParseJSON(content string) Result {
	v, err := decodeJSON(content)
	if err != nil {
		return fail(parseErrf(JSON, "Invalid JSON: %s", err))
	}
	if s, isStr := v.(String); isStr {
		inner, err := decodeJSON(string(s))
		if err != nil {
			return fail(parseErrf(JSON, "Invalid JSON: %s", err))
		}
		v = inner
	}
	return ok(encodeJSON(v, defaultConverter.config.Indent))
}

// StringifyJSON returns the compact form of JSON text.
func StringifyJSON(content string) Result {
	v, err := decodeJSON(content)
	if err != nil {
		return fail(parseErrf(JSON, "Invalid JSON: %s", err))
	}
	return ok(encodeJSON(v, ""))
}
