package convkit

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

const (
	reasonEmptyCollection = "empty collection cannot be converted to tabular form"
	reasonNotTabular      = "value must be an object or an array of objects"
)

// tabular is the row/column projection of a canonical value.
type tabular struct {
	header []string
	rows   [][]Value
}

// tabulate projects v onto rows. A sequence of mappings takes its columns
// from the first element; a lone mapping is a single row.
func tabulate(v Value, f Format) (tabular, error) {
	var records []*Mapping
	switch t := v.(type) {
	case *Mapping:
		records = []*Mapping{t}
	case Sequence:
		if len(t) == 0 {
			return tabular{}, &ShapeError{Format: f, Reason: reasonEmptyCollection}
		}
		for _, item := range t {
			m, isMap := item.(*Mapping)
			if !isMap {
				return tabular{}, &ShapeError{Format: f, Reason: reasonNotTabular}
			}
			records = append(records, m)
		}
	case Null, Bool, Number, String:
		return tabular{}, &ShapeError{Format: f, Reason: reasonNotTabular}
	default:
		return tabular{}, &ShapeError{Format: f, Reason: reasonNotTabular}
	}

	tab := tabular{header: records[0].Keys()}
	if len(tab.header) == 0 {
		return tab, nil
	}
	for _, rec := range records {
		row := make([]Value, len(tab.header))
		for i, col := range tab.header {
			if cell, found := rec.Get(col); found {
				row[i] = cell
			} else {
				row[i] = Null{}
			}
		}
		tab.rows = append(tab.rows, row)
	}
	return tab, nil
}

// cellText renders a table cell. Nested containers are written as compact
// JSON.
func cellText(v Value) string {
	if s, isScalar := scalarText(v); isScalar {
		return s
	}
	return encodeJSON(v, "")
}

func (t tabular) textRows() [][]string {
	out := make([][]string, len(t.rows))
	for i, row := range t.rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = cellText(cell)
		}
		out[i] = cells
	}
	return out
}

// numericColumns reports, per column, whether every non-null cell is a
// number.
func (t tabular) numericColumns() []bool {
	numeric := make([]bool, len(t.header))
	for col := range t.header {
		seen := false
		all := true
		for _, row := range t.rows {
			switch row[col].(type) {
			case Number:
				seen = true
			case Null:
			default:
				all = false
			}
		}
		numeric[col] = seen && all
	}
	return numeric
}

func (t tabular) alignments() []Alignment {
	aligns := make([]Alignment, len(t.header))
	for i, numeric := range t.numericColumns() {
		if numeric {
			aligns[i] = AlignRight
		}
	}
	return aligns
}

func encodeDelimited(v Value, f Format, comma rune) (string, error) {
	tab, err := tabulate(v, f)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	cw := csv.NewWriter(&sb)
	cw.Comma = comma
	if err := cw.Write(tab.header); err != nil {
		return "", err
	}
	for _, row := range tab.textRows() {
		if err := cw.Write(row); err != nil {
			return "", err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// decodeDelimited reads a header row and maps each later record onto it,
// re-typing numeric and boolean fields.
func decodeDelimited(s string, f Format, comma rune) (Value, error) {
	cr := csv.NewReader(strings.NewReader(s))
	cr.Comma = comma
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, parseErrf(f, "missing header row")
	}
	if err != nil {
		return nil, parseErr(f, err)
	}
	rows := Sequence{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseErr(f, err)
		}
		row := NewMapping()
		for i, col := range header {
			row.Set(col, inferScalar(record[i]))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// IsValidCSV reports whether s parses as CSV with a header and at least one
// data row.
func IsValidCSV(s string) bool {
	v, err := decodeDelimited(s, CSV, ',')
	if err != nil {
		return false
	}
	return len(v.(Sequence)) > 0
}
