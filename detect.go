package convkit

import (
	"encoding/json"
	"strings"
)

// DetectInputType classifies content as [JSON] or [XML] markup. It never
// fails: anything that is neither obviously markup nor parseable JSON,
// including empty input, is reported as XML.
func DetectInputType(content string) Format {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "<?xml") || strings.HasPrefix(trimmed, "<") {
		return XML
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return JSON
	}
	if json.Valid([]byte(trimmed)) {
		return JSON
	}
	return XML
}
