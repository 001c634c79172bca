package convkit

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// borderChars holds the runes of one border style, read from an 11-rune string
// in this order: corners (top left, top right, bottom left, bottom right),
// horizontal, vertical, tees (top, bottom, left, right) and cross.
type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

func newBorderChars(runes string) borderChars {
	r := strings.Split(runes, "")
	return borderChars{
		topLeft: r[0], topRight: r[1], bottomLeft: r[2], bottomRight: r[3],
		horizontal: r[4], vertical: r[5],
		topTee: r[6], bottomTee: r[7], leftTee: r[8], rightTee: r[9],
		cross: r[10],
	}
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: newBorderChars("╭╮╰╯─│┬┴├┤┼"),
	BorderASCII:   newBorderChars("++++-|+++++"),
	BorderHeavy:   newBorderChars("┏┓┗┛━┃┳┻┣┫╋"),
	BorderDouble:  newBorderChars("╔╗╚╝═║╦╩╠╣╬"),
}

// encodeTable renders the tabular projection of v as a text table sized by
// display width, so wide runes line up.
func encodeTable(v Value, border BorderStyle) (string, error) {
	tab, err := tabulate(v, Table)
	if err != nil {
		return "", err
	}
	if len(tab.header) == 0 {
		return "", nil
	}
	rows := tab.textRows()
	widths := computeWidths(tab.header, rows)
	aligns := tab.alignments()

	var sb strings.Builder
	if border == BorderNone {
		err = renderPlainTable(&sb, tab.header, rows, widths, aligns)
	} else {
		err = renderBorderedTable(&sb, tab.header, rows, widths, aligns, border)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

func computeWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(flattenCell(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(flattenCell(cell)); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

var cellFlattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// flattenCell keeps multi-line values on one table line.
func flattenCell(s string) string {
	return cellFlattener.Replace(s)
}

func renderPlainTable(w io.Writer, header []string, rows [][]string, widths []int, aligns []Alignment) error {
	if err := writePlainRow(w, header, widths, aligns); err != nil {
		return err
	}
	if err := writePlainSep(w, widths); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writePlainRow(w, row, widths, aligns); err != nil {
			return err
		}
	}
	return nil
}

func writePlainSep(w io.Writer, widths []int) error {
	dashes := make([]string, len(widths))
	for i := range widths {
		dashes[i] = strings.Repeat("-", widths[i])
	}
	_, err := fmt.Fprintln(w, strings.Join(dashes, "  "))
	return err
}

func writePlainRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		var cell string
		if i < len(cells) {
			cell = flattenCell(cells[i])
		}
		padded[i] = alignCell(cell, width, aligns[i])
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(padded, "  "), " "))
	return err
}

func renderBorderedTable(w io.Writer, header []string, rows [][]string, widths []int, aligns []Alignment, style BorderStyle) error {
	bc := borderSets[style]
	if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
		return err
	}
	if err := drawBorderedRow(w, header, widths, aligns, bc.vertical); err != nil {
		return err
	}
	if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
		return err
	}
	for _, row := range rows {
		if err := drawBorderedRow(w, row, widths, aligns, bc.vertical); err != nil {
			return err
		}
	}
	return drawHLine(w, widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

// drawHLine writes a horizontal rule spanning every column plus its
// one-space padding on each side.
func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	segs := make([]string, len(widths))
	for i, width := range widths {
		segs[i] = strings.Repeat(fill, width+2)
	}
	_, err := fmt.Fprintln(w, left+strings.Join(segs, mid)+right)
	return err
}

func drawBorderedRow(w io.Writer, cells []string, widths []int, aligns []Alignment, vert string) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		var cell string
		if i < len(cells) {
			cell = flattenCell(cells[i])
		}
		padded[i] = " " + alignCell(cell, width, aligns[i]) + " "
	}
	_, err := fmt.Fprintln(w, vert+strings.Join(padded, vert)+vert)
	return err
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
