package convkit

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func decodeYAML(s string) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(s), &doc); err != nil {
		return nil, parseErr(YAML, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, parseErrf(YAML, "yaml: no document found")
	}
	v, err := fromYAMLNode(doc.Content[0], 0)
	if err != nil {
		return nil, parseErr(YAML, err)
	}
	return v, nil
}

// maxAliasDepth bounds alias expansion so self-referencing anchors fail
// instead of recursing forever.
const maxAliasDepth = 64

func fromYAMLNode(n *yaml.Node, aliasDepth int) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return fromYAMLNode(n.Content[0], aliasDepth)
	case yaml.AliasNode:
		if aliasDepth >= maxAliasDepth {
			return nil, errors.New("yaml: alias nesting too deep")
		}
		return fromYAMLNode(n.Alias, aliasDepth+1)
	case yaml.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
				merged, err := fromYAMLNode(v, aliasDepth)
				if err != nil {
					return nil, err
				}
				mergeInto(m, merged)
				continue
			}
			val, err := fromYAMLNode(v, aliasDepth)
			if err != nil {
				return nil, err
			}
			m.Set(k.Value, val)
		}
		return m, nil
	case yaml.SequenceNode:
		seq := make(Sequence, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := fromYAMLNode(item, aliasDepth)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	default:
		return nil, fmt.Errorf("yaml: unsupported node kind %d", n.Kind)
	}
}

func mergeInto(m *Mapping, merged Value) {
	switch t := merged.(type) {
	case *Mapping:
		t.Each(func(key string, v Value) bool {
			if _, exists := m.Get(key); !exists {
				m.Set(key, v)
			}
			return true
		})
	case Sequence:
		for _, item := range t {
			mergeInto(m, item)
		}
	}
}

func fromYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			// Out of int64 range; keep the digits if they are a plain literal.
			if numberLiteral.MatchString(n.Value) {
				return Number(n.Value), nil
			}
			return String(n.Value), nil
		}
		return Number(strconv.FormatInt(i, 10)), nil
	case "!!float":
		if numberLiteral.MatchString(n.Value) {
			return Number(n.Value), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return String(n.Value), nil
		}
		return Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
	default:
		return String(n.Value), nil
	}
}

func encodeYAML(v Value, indent string) (string, error) {
	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(max(2, len(indent)))
	if err := enc.Encode(toYAMLNode(v)); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

func toYAMLNode(v Value) *yaml.Node {
	switch t := v.(type) {
	case Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case Bool:
		s, _ := scalarText(t)
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: s}
	case Number:
		tag := "!!float"
		if _, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(t)}
	case String:
		n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(t)}
		if strings.Contains(string(t), "\n") {
			n.Style = yaml.LiteralStyle
		}
		return n
	case *Mapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		t.Each(func(key string, val Value) bool {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				toYAMLNode(val))
			return true
		})
		return n
	case Sequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range t {
			n.Content = append(n.Content, toYAMLNode(item))
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// IsValidYAML reports whether s holds at least one YAML document.
func IsValidYAML(s string) bool {
	_, err := decodeYAML(s)
	return err == nil
}
