package convkit

import "fmt"

// Convert converts source from one format to another using the default
// configuration. See [Converter.Convert].
func Convert(source string, from, to Format) Result {
	return defaultConverter.Convert(source, from, to)
}

// Convert converts source from one format to another. Converting a format to
// itself returns source unchanged. Conversions that touch JSON on one side
// run a single leg; any other pair goes through JSON, and a failure in the
// first half is returned unchanged.
func (c *Converter) Convert(source string, from, to Format) Result {
	if !from.CanDecode() {
		return fail(fmt.Errorf("%w: cannot read from %q", ErrUnsupportedFormat, from))
	}
	if !isFormat(to) {
		return fail(fmt.Errorf("%w: %q", ErrUnsupportedFormat, to))
	}
	if from == to {
		return ok(source)
	}
	if from != JSON && to != JSON {
		inner := c.Convert(source, from, JSON)
		if !inner.Success {
			return inner
		}
		return c.Convert(inner.Data, JSON, to)
	}

	v, err := c.decode(source, from)
	if err != nil {
		return fail(err)
	}
	out, err := c.encode(v, to)
	if err != nil {
		return fail(err)
	}
	return ok(out)
}

func isFormat(f Format) bool {
	for _, known := range formats {
		if f == known {
			return true
		}
	}
	return false
}

func (c *Converter) decode(s string, f Format) (Value, error) {
	switch f {
	case JSON:
		return decodeJSON(s)
	case XML:
		return decodeXML(s, c.config)
	case CSV:
		return decodeDelimited(s, CSV, c.config.Delimiter)
	case TSV:
		return decodeTSV(s)
	case YAML:
		return decodeYAML(s)
	case JSONL:
		return decodeJSONL(s)
	default:
		return nil, fmt.Errorf("%w: cannot read from %q", ErrUnsupportedFormat, f)
	}
}

func (c *Converter) encode(v Value, f Format) (string, error) {
	switch f {
	case JSON:
		return encodeJSON(v, c.config.Indent), nil
	case XML:
		return encodeXML(v, c.config), nil
	case CSV:
		return encodeDelimited(v, CSV, c.config.Delimiter)
	case TSV:
		return encodeTSV(v)
	case YAML:
		return encodeYAML(v, c.config.Indent)
	case JSONL:
		return encodeJSONL(v), nil
	case Table:
		return encodeTable(v, c.config.Border)
	case Markdown:
		return encodeMarkdown(v)
	case HTML:
		return encodeHTML(v, c.config.Indent)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Decode parses source into its canonical value.
func (c *Converter) Decode(source string, f Format) (Value, error) {
	return c.decode(source, f)
}

// Encode renders a canonical value in format f.
func (c *Converter) Encode(v Value, f Format) (string, error) {
	if v == nil {
		v = Null{}
	}
	return c.encode(v, f)
}
