package convkit

import (
	"strings"

	"github.com/go-xmlfmt/xmlfmt"
	"github.com/yosssi/gohtml"
)

// FormatMarkup pretty-prints markup. Well-formed input goes through the
// xmlfmt formatter; anything it cannot be trusted with is handed to
// [FormatMarkupManual] instead.
func FormatMarkup(content string) string {
	if !IsValidXML(content) {
		return FormatMarkupManual(content)
	}
	out := normalizeNewlines(xmlfmt.FormatXML(content, "", defaultConverter.config.Indent))
	if out == "" {
		return FormatMarkupManual(content)
	}
	return out
}

// FormatHTML pretty-prints an HTML document or fragment.
func FormatHTML(content string) string {
	return normalizeNewlines(gohtml.Format(content))
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(s)
}
