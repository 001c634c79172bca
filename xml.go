package convkit

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html/charset"
)

// decodeXML parses markup into a mapping keyed by top-level element name.
func decodeXML(s string, cfg Config) (Value, error) {
	dec := xml.NewDecoder(strings.NewReader(s))
	dec.CharsetReader = charset.NewReaderLabel
	doc := newCollector()
	found := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseErr(XML, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			v, err := readElement(dec, t, cfg)
			if err != nil {
				return nil, parseErr(XML, err)
			}
			doc.add(t.Name.Local, v)
			found = true
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				line, _ := dec.InputPos()
				return nil, parseErrf(XML, "XML syntax error on line %d: text outside of root element", line)
			}
		}
	}
	if !found {
		return nil, parseErrf(XML, "XML syntax error: no root element found")
	}
	return doc.m, nil
}

func readElement(dec *xml.Decoder, start xml.StartElement, cfg Config) (Value, error) {
	el := newCollector()
	for _, a := range start.Attr {
		el.add(a.Name.Local, inferScalar(strings.TrimSpace(a.Value)))
	}
	var text strings.Builder
	hasChildren := false
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := readElement(dec, t, cfg)
			if err != nil {
				return nil, err
			}
			el.add(t.Name.Local, child)
			hasChildren = true
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			txt := strings.TrimSpace(text.String())
			if len(start.Attr) == 0 && !hasChildren {
				if txt == "" {
					return String(""), nil
				}
				return inferScalar(txt), nil
			}
			if txt != "" {
				el.add(cfg.TextKey, inferScalar(txt))
			}
			return el.m, nil
		}
	}
}

// collector builds a mapping where a repeated key turns into a sequence of
// every value seen for it, in document order.
type collector struct {
	m        *Mapping
	repeated map[string]bool
}

func newCollector() *collector {
	return &collector{m: NewMapping(), repeated: map[string]bool{}}
}

func (c *collector) add(key string, v Value) {
	prev, exists := c.m.Get(key)
	switch {
	case !exists:
		c.m.Set(key, v)
	case c.repeated[key]:
		c.m.Set(key, append(prev.(Sequence), v))
	default:
		c.m.Set(key, Sequence{prev, v})
		c.repeated[key] = true
	}
}

// encodeXML renders v as an indented markup document. A mapping with a
// single key names the root element itself; anything else is wrapped in
// cfg.RootName. Empty containers are left out; an empty or null scalar is a
// self-closing element.
func encodeXML(v Value, cfg Config) string {
	doc, isMap := v.(*Mapping)
	if !isMap || doc.Len() != 1 {
		doc = NewMapping()
		doc.Set(cfg.RootName, v)
	}
	var sb strings.Builder
	w := markupWriter{cfg: cfg, sb: &sb}
	doc.Each(func(key string, val Value) bool {
		w.element(key, val, 0)
		return true
	})
	out := strings.TrimRight(sb.String(), "\n")
	if out == "" {
		return "<" + xmlName(doc.Keys()[0]) + "/>"
	}
	return out
}

type markupWriter struct {
	cfg Config
	sb  *strings.Builder
}

func (w markupWriter) element(name string, v Value, depth int) {
	switch t := v.(type) {
	case Sequence:
		for _, item := range t {
			w.element(name, item, depth)
		}
	case *Mapping:
		w.mapping(name, t, depth)
	default:
		text, _ := scalarText(v)
		n := xmlName(name)
		w.indent(depth)
		if text == "" {
			w.sb.WriteString("<" + n + "/>\n")
			return
		}
		w.sb.WriteString("<" + n + ">")
		w.sb.WriteString(escapeXML(text))
		w.sb.WriteString("</" + n + ">\n")
	}
}

func (w markupWriter) mapping(name string, m *Mapping, depth int) {
	var attrs strings.Builder
	var text string
	var inner strings.Builder
	child := markupWriter{cfg: w.cfg, sb: &inner}
	prefix := w.cfg.AttrPrefix
	m.Each(func(key string, v Value) bool {
		if prefix != "" && len(key) > len(prefix) && strings.HasPrefix(key, prefix) {
			if s, isScalar := scalarText(v); isScalar {
				if _, isNull := v.(Null); !isNull {
					attrs.WriteString(" " + xmlName(key[len(prefix):]) + `="` + escapeXML(s) + `"`)
				}
				return true
			}
		}
		if key == w.cfg.TextKey {
			if s, isScalar := scalarText(v); isScalar {
				text = s
				return true
			}
		}
		child.element(key, v, depth+1)
		return true
	})

	if inner.Len() == 0 && text == "" && attrs.Len() == 0 {
		return
	}
	n := xmlName(name)
	open := "<" + n + attrs.String()
	w.indent(depth)
	switch {
	case inner.Len() == 0 && text == "":
		w.sb.WriteString(open + "/>\n")
	case inner.Len() == 0:
		w.sb.WriteString(open + ">" + escapeXML(text) + "</" + n + ">\n")
	default:
		w.sb.WriteString(open + ">\n")
		if text != "" {
			w.indent(depth + 1)
			w.sb.WriteString(escapeXML(text) + "\n")
		}
		w.sb.WriteString(inner.String())
		w.indent(depth)
		w.sb.WriteString("</" + n + ">\n")
	}
}

func (w markupWriter) indent(depth int) {
	w.sb.WriteString(strings.Repeat(w.cfg.Indent, depth))
}

func escapeXML(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s)) // strings.Builder never fails
	return sb.String()
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameRune(r rune) bool {
	return isNameStart(r) || unicode.IsDigit(r) || r == '-' || r == '.'
}

func isXMLName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !isNameStart(r) {
			return false
		}
		if !isNameRune(r) {
			return false
		}
	}
	return true
}

// xmlName turns an arbitrary key into a usable element or attribute name.
func xmlName(s string) string {
	if isXMLName(s) {
		return s
	}
	var sb strings.Builder
	for i, r := range s {
		if i == 0 && !isNameStart(r) {
			sb.WriteByte('_')
			if !isNameRune(r) {
				continue
			}
		}
		if isNameRune(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "_"
	}
	return sb.String()
}

// IsValidXML reports whether s is well-formed markup with at least one
// element.
func IsValidXML(s string) bool {
	_, err := decodeXML(s, defaultConverter.config)
	return err == nil
}
