package convkit

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

var markdownEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>", "\r", "<br>")

// encodeMarkdown renders the tabular projection of v as a GitHub-flavored
// Markdown table. Numeric columns get right-alignment markers.
func encodeMarkdown(v Value) (string, error) {
	tab, err := tabulate(v, Markdown)
	if err != nil {
		return "", err
	}
	if len(tab.header) == 0 {
		return "", nil
	}

	header := make([]string, len(tab.header))
	for i, h := range tab.header {
		header[i] = markdownEscaper.Replace(h)
	}
	rows := tab.textRows()
	for _, row := range rows {
		for i, cell := range row {
			row[i] = markdownEscaper.Replace(cell)
		}
	}

	// Minimum width 3 leaves room for alignment markers.
	widths := make([]int, len(header))
	for i, col := range header {
		widths[i] = max(3, runewidth.StringWidth(col))
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	aligns := tab.alignments()

	var sb strings.Builder
	if err := writeMarkdownRow(&sb, header, widths, aligns); err != nil {
		return "", err
	}
	sep := make([]string, len(widths))
	for i, width := range widths {
		switch aligns[i] {
		case AlignRight:
			sep[i] = strings.Repeat("-", width-1) + ":"
		case AlignCenter:
			sep[i] = ":" + strings.Repeat("-", width-2) + ":"
		default:
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(&sb, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return "", err
	}
	for _, row := range rows {
		if err := writeMarkdownRow(&sb, row, widths, aligns); err != nil {
			return "", err
		}
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = alignCell(cell, width, aligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}
