package convkit

import (
	"bufio"
	"errors"
	"strings"
)

// decodeJSONL reads one JSON value per non-blank line.
func decodeJSONL(s string) (Value, error) {
	seq := Sequence{}
	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Buffer(make([]byte, 0, 64*1024), len(s)+1)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		v, err := decodeJSON(text)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				return nil, parseErrf(JSONL, "line %d: %s", line, pe.Err)
			}
			return nil, parseErrf(JSONL, "line %d: %s", line, err)
		}
		seq = append(seq, v)
	}
	if err := sc.Err(); err != nil {
		return nil, parseErr(JSONL, err)
	}
	if len(seq) == 0 {
		return nil, parseErrf(JSONL, "unexpected end of JSON input")
	}
	return seq, nil
}

// encodeJSONL writes each element of a sequence as one compact JSON line.
// Any other value is written as a single line.
func encodeJSONL(v Value) string {
	seq, isSeq := v.(Sequence)
	if !isSeq {
		return encodeJSON(v, "")
	}
	lines := make([]string, len(seq))
	for i, item := range seq {
		lines[i] = encodeJSON(item, "")
	}
	return strings.Join(lines, "\n")
}
