package convkit

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// encodeHTML renders the tabular projection of v as an HTML table.
func encodeHTML(v Value, indent string) (string, error) {
	tab, err := tabulate(v, HTML)
	if err != nil {
		return "", err
	}
	aligns := tab.alignments()
	in := func(n int) string { return strings.Repeat(indent, n) }

	var sb strings.Builder
	if _, err := fmt.Fprintln(&sb, "<table>"); err != nil {
		return "", err
	}
	if len(tab.header) > 0 {
		if _, err := fmt.Fprintf(&sb, "%s<thead>\n", in(1)); err != nil {
			return "", err
		}
		if err := writeHTMLRow(&sb, "th", tab.header, aligns, in(2), in(3)); err != nil {
			return "", err
		}
		if _, err := fmt.Fprintf(&sb, "%s</thead>\n", in(1)); err != nil {
			return "", err
		}
	}
	if _, err := fmt.Fprintf(&sb, "%s<tbody>\n", in(1)); err != nil {
		return "", err
	}
	for _, row := range tab.textRows() {
		if err := writeHTMLRow(&sb, "td", row, aligns, in(2), in(3)); err != nil {
			return "", err
		}
	}
	if _, err := fmt.Fprintf(&sb, "%s</tbody>\n", in(1)); err != nil {
		return "", err
	}
	_, err = fmt.Fprint(&sb, "</table>")
	return sb.String(), err
}

func writeHTMLRow(w io.Writer, cellTag string, cells []string, aligns []Alignment, rowIndent, cellIndent string) error {
	if _, err := fmt.Fprintf(w, "%s<tr>\n", rowIndent); err != nil {
		return err
	}
	for i, cell := range cells {
		style := alignStyle(aligns, i)
		if _, err := fmt.Fprintf(w, "%s<%s%s>%s</%s>\n", cellIndent, cellTag, style, html.EscapeString(cell), cellTag); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s</tr>\n", rowIndent)
	return err
}

func alignStyle(aligns []Alignment, col int) string {
	if col >= len(aligns) {
		return ""
	}
	switch aligns[col] {
	case AlignRight:
		return ` style="text-align: right"`
	case AlignCenter:
		return ` style="text-align: center"`
	default:
		return ""
	}
}
