package convkit

import (
	"regexp"
	"strings"
)

const manualIndent = "  "

var interTagSpace = regexp.MustCompile(`>\s+<`)

// FormatMarkupManual re-indents markup one tag or text run per line without
// building a tree or checking well-formedness. Closing tags dedent before
// they are written, opening tags indent after, and self-closing tags and
// declarations leave the depth alone. Text is written one level above the
// current depth. A '<' with no matching '>' ends the scan; what was built
// up to that point is returned.
func FormatMarkupManual(content string) string {
	content = interTagSpace.ReplaceAllString(content, "><")

	var sb strings.Builder
	depth := 0
	i := 0
	for i < len(content) {
		if content[i] == '<' {
			end := strings.IndexByte(content[i:], '>')
			if end == -1 {
				break
			}
			tag := content[i : i+end+1]
			switch {
			case strings.HasPrefix(tag, "</"):
				depth = max(0, depth-1)
				writeIndented(&sb, depth, tag)
			case strings.HasSuffix(tag, "/>") || strings.HasPrefix(tag, "<?"):
				writeIndented(&sb, depth, tag)
			default:
				writeIndented(&sb, depth, tag)
				depth++
			}
			i += end + 1
			continue
		}

		next := strings.IndexByte(content[i:], '<')
		if next == -1 {
			next = len(content) - i
		}
		if text := strings.TrimSpace(content[i : i+next]); text != "" {
			writeIndented(&sb, max(0, depth-1), text)
		}
		i += next
	}
	return strings.TrimSpace(sb.String())
}

func writeIndented(sb *strings.Builder, depth int, s string) {
	sb.WriteString(strings.Repeat(manualIndent, depth))
	sb.WriteString(s)
	sb.WriteByte('\n')
}
