// Package convkit converts structured text between JSON, XML markup, CSV, and
// a few related formats, and pretty-prints markup.
//
// Every conversion goes through one canonical tree, [Value], so each format
// only needs a decoder into it and an encoder out of it:
//
//   - [Null], [Bool], [Number], [String]: scalars
//   - [*Mapping]: string keys in insertion order
//   - [Sequence]: ordered values
//
// # Converting
//
// [Convert] takes source text, a source [Format] and a target [Format] and
// returns a [Result]. Conversions never return a Go error and never panic:
//
//	res := convkit.Convert(input, convkit.JSON, convkit.XML)
//	if !res.Success {
//		fmt.Println("error:", res.Error)
//	}
//
// The six classic legs have shorthands: [JSONToXML], [XMLToJSON],
// [JSONToCSV], [CSVToJSON], [XMLToCSV] and [CSVToXML]. Pairs that do not
// involve JSON run through JSON; if the first half fails its [Result] is
// returned unchanged, so the message points at the real problem.
//
// # Formats
//
//   - [JSON]: two-space indented output, object key order kept
//   - [XML]: markup; a JSON object with a single key names the root element,
//     anything else is wrapped in "root". Keys prefixed with "@" become
//     attributes and "_text" holds element text.
//   - [CSV], [TSV]: header row from the first object's keys
//   - [YAML]: block style output
//   - [JSONL]: one JSON value per line
//   - [Table], [Markdown], [HTML]: output-only table previews
//
// Markup and tabular conversions are lossy in documented ways: text that
// looks like a number or a boolean is read back typed, nested values in CSV
// cells are written as compact JSON, empty containers are dropped from markup
// output, and a null or empty string is written as a self-closing element.
//
// # Configuration
//
// Use [New] with a [Config] to change indentation, the CSV delimiter, the
// wrapper element name, the markup text key, the attribute prefix, or the
// text table border:
//
//	conv, err := convkit.New(convkit.Config{Delimiter: ';'})
//	res := conv.Convert(input, convkit.CSV, convkit.JSON)
//
// # Formatting
//
// [FormatMarkupManual] re-indents markup in a single pass without parsing
// it, so it accepts malformed input. [FormatMarkup] prefers a real formatter
// and falls back to it. [FormatJSON], [ParseJSON], [StringifyJSON] and
// [FormatHTML] cover the remaining pretty-printing needs.
//
// # Detection and validation
//
// [DetectInputType] tells JSON from markup. [IsValidJSON], [IsValidXML],
// [IsValidCSV] and [IsValidYAML] report whether input parses.
//
// # Errors
//
// [Result.Kind] and [Result.Err] classify failures against the sentinel
// errors:
//
//   - [ErrParse]: malformed input
//   - [ErrShape]: valid input that cannot be mapped to the target
//   - [ErrUnsupportedFormat]: unknown format, or an output-only source
package convkit
