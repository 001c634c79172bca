package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errb bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errb)
	return result{code: code, stdout: out.String(), stderr: errb.String()}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConvert(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		stdin string
		args  []string
		want  string
	}{
		"json to csv": {
			stdin: `[{"a":1,"b":"x"}]`,
			args:  []string{"convert", "--to", "csv"},
			want:  "a,b\n1,x\n",
		},
		"detects xml": {
			stdin: "<root><name>John</name></root>",
			args:  []string{"convert", "--to", "json"},
			want:  "{\n  \"root\": {\n    \"name\": \"John\"\n  }\n}\n",
		},
		"explicit source": {
			stdin: "id\n1",
			args:  []string{"convert", "--from", "csv", "--to", "json"},
			want:  "[\n  {\n    \"id\": 1\n  }\n]\n",
		},
		"composite leg": {
			stdin: "id\n1",
			args:  []string{"convert", "-f", "csv", "-t", "xml"},
			want:  "<root>\n  <id>1</id>\n</root>\n",
		},
		"markdown alias": {
			stdin: `[{"n":1}]`,
			args:  []string{"convert", "--to", "md"},
			want:  "|   n |\n| --: |\n|   1 |\n",
		},
		"stdin dash": {
			stdin: `{"k":true}`,
			args:  []string{"convert", "--to", "yaml", "-"},
			want:  "k: true\n",
		},
		"custom root": {
			stdin: `[1]`,
			args:  []string{"--root", "doc", "convert", "--to", "xml"},
			want:  "<doc>1</doc>\n",
		},
		"tab delimiter": {
			stdin: `[{"a":1,"b":2}]`,
			args:  []string{"--delimiter", "tab", "convert", "--to", "csv"},
			want:  "a\tb\n1\t2\n",
		},
		"plain table": {
			stdin: `[{"a":1}]`,
			args:  []string{"--border", "none", "convert", "--to", "table"},
			want:  "a\n-\n1\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			res := runCLI(t, tt.stdin, append([]string{"--color", "never"}, tt.args...)...)
			require.Equal(t, 0, res.code, res.stderr)
			assert.Equal(t, tt.want, res.stdout)
			assert.Empty(t, res.stderr)
		})
	}
}

func TestConvertFile(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "users.csv", "id,name\n1,Ann\n")
	res := runCLI(t, "", "--color", "never", "convert", "--from", "csv", "--to", "jsonl", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "{\"id\":1,\"name\":\"Ann\"}\n", res.stdout)
}

func TestConvertFailure(t *testing.T) {
	t.Parallel()
	res := runCLI(t, "[]", "--color", "never", "convert", "--to", "csv")
	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Equal(t, "error: json to csv: empty collection cannot be converted to tabular form\n", res.stderr)
}

func TestErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		stdin    string
		args     []string
		contains string
	}{
		"unknown target":    {args: []string{"convert", "--to", "toml"}, contains: "unsupported format"},
		"output only":       {args: []string{"convert", "--from", "table", "--to", "json"}, contains: "cannot read from"},
		"missing to":        {args: []string{"convert"}, contains: "required flag"},
		"bad color":         {args: []string{"--color", "rainbow", "formats"}, contains: "invalid --color"},
		"bad delimiter":     {args: []string{"--delimiter", ";;", "formats"}, contains: "invalid delimiter"},
		"bad border":        {args: []string{"--border", "fancy", "formats"}, contains: "invalid configuration"},
		"missing file":      {args: []string{"detect", "/nonexistent/input.json"}, contains: "no such file"},
		"missing config":    {args: []string{"--config", "/nonexistent/c.yaml", "formats"}, contains: "reading config"},
		"unknown command":   {args: []string{"frobnicate"}, contains: "unknown command"},
		"malformed markup":  {stdin: "<<>>invalid<<xml", args: []string{"convert", "--to", "json"}, contains: "xml to json"},
		"cannot format csv": {stdin: "a,b", args: []string{"format", "--as", "csv"}, contains: "cannot format"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			res := runCLI(t, tt.stdin, append([]string{"--color", "never"}, tt.args...)...)
			assert.Equal(t, 1, res.code)
			assert.Contains(t, res.stderr, tt.contains)
		})
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		stdin string
		want  string
	}{
		"json":  {stdin: `{"a":1}`, want: "json\n"},
		"xml":   {stdin: "<a/>", want: "xml\n"},
		"empty": {stdin: "", want: "xml\n"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			res := runCLI(t, tt.stdin, "--color", "never", "detect")
			require.Equal(t, 0, res.code, res.stderr)
			assert.Equal(t, tt.want, res.stdout)
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		stdin string
		args  []string
		want  string
	}{
		"json custom indent": {
			stdin: `{"a":[1]}`,
			args:  []string{"--indent", "    ", "format"},
			want:  "{\n    \"a\": [\n        1\n    ]\n}\n",
		},
		"manual markup": {
			stdin: "<a><b>x</b></a>",
			args:  []string{"format", "--as", "xml", "--manual"},
			want:  "<a>\n  <b>\n  x\n  </b>\n</a>\n",
		},
		"broken markup falls back": {
			stdin: "<a><b>",
			args:  []string{"format"},
			want:  "<a>\n  <b>\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			res := runCLI(t, tt.stdin, append([]string{"--color", "never"}, tt.args...)...)
			require.Equal(t, 0, res.code, res.stderr)
			assert.Equal(t, tt.want, res.stdout)
		})
	}
}

func TestFormatWellFormedMarkup(t *testing.T) {
	t.Parallel()
	res := runCLI(t, "<root><child>text</child></root>", "--color", "never", "format", "--as", "xml")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "<child>")
	assert.Contains(t, res.stdout, "\n  ")
}

func TestFormatHTML(t *testing.T) {
	t.Parallel()
	res := runCLI(t, "<div><p>hi</p></div>", "--color", "never", "format", "--as", "html")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "<p>")
}

func TestFormatInvalidJSON(t *testing.T) {
	t.Parallel()
	res := runCLI(t, "{oops", "--color", "never", "format")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid character")
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		stdin    string
		as       string
		code     int
		stdout   string
		contains string
	}{
		"valid json":    {stdin: `{"valid":true}`, as: "json", code: 0, stdout: "valid json\n"},
		"invalid json":  {stdin: "invalid", as: "json", code: 1, contains: "invalid json"},
		"valid xml":     {stdin: "<root>valid</root>", as: "xml", code: 0, stdout: "valid xml\n"},
		"invalid xml":   {stdin: "<invalid", as: "xml", code: 1, contains: "invalid xml"},
		"valid csv":     {stdin: "name,age\nJohn,30", as: "csv", code: 0, stdout: "valid csv\n"},
		"header only":   {stdin: "name,age", as: "csv", code: 1, contains: "no data rows"},
		"valid yaml":    {stdin: "a: 1", as: "yml", code: 0, stdout: "valid yaml\n"},
		"invalid yaml":  {stdin: "a: [", as: "yaml", code: 1, contains: "invalid yaml"},
		"output format": {stdin: "x", as: "table", code: 1, contains: "cannot validate"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			res := runCLI(t, tt.stdin, "--color", "never", "validate", "--as", tt.as)
			assert.Equal(t, tt.code, res.code, res.stderr)
			assert.Equal(t, tt.stdout, res.stdout)
			assert.Contains(t, res.stderr, tt.contains)
		})
	}
}

func TestFormats(t *testing.T) {
	t.Parallel()
	res := runCLI(t, "", "--color", "never", "--border", "ascii", "formats")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "| format   | read  | write |")
	assert.Contains(t, res.stdout, "| markdown | false | true  |")
	assert.Contains(t, res.stdout, "| json     | true  | true  |")
}

func TestConfigFile(t *testing.T) {
	t.Parallel()
	cfg := writeFile(t, "convkit.yaml", "delimiter: \";\"\nroot: doc\n")
	res := runCLI(t, `[{"a":1,"b":2}]`, "--color", "never", "--config", cfg, "convert", "--to", "csv")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "a;b\n1;2\n", res.stdout)
	assert.Contains(t, res.stderr, "loaded config")
}

func TestConfigFileFlagWins(t *testing.T) {
	t.Parallel()
	cfg := writeFile(t, "convkit.yaml", "delimiter: \";\"\n")
	res := runCLI(t, `[{"a":1,"b":2}]`, "--color", "never", "--config", cfg, "--delimiter", "|", "convert", "--to", "csv")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "a|b\n1|2\n", res.stdout)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("CONVKIT_ROOT", "env")
	t.Setenv("CONVKIT_TEXT_KEY", "#text")
	res := runCLI(t, `[1]`, "--color", "never", "convert", "--to", "xml")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "<env>1</env>\n", res.stdout)

	res = runCLI(t, `<t k="v">hi</t>`, "--color", "never", "convert", "--to", "json")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, `"#text": "hi"`)
}

func TestVerbose(t *testing.T) {
	t.Parallel()
	res := runCLI(t, `{"a":1}`, "--color", "never", "-v", "convert", "--to", "yaml")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "a: 1\n", res.stdout)
	assert.Contains(t, res.stderr, "level=DEBUG")
	assert.Contains(t, res.stderr, "detected format")
	assert.Contains(t, res.stderr, "bytes=")
}

func TestColorAlways(t *testing.T) {
	t.Parallel()
	res := runCLI(t, "[]", "--color", "always", "convert", "--to", "csv")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "\x1b[")
	assert.Contains(t, res.stderr, "error:")
}

func TestHighlight(t *testing.T) {
	t.Parallel()
	res := runCLI(t, `{"a":1}`, "--color", "always", "--highlight", "convert", "--to", "json")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "\x1b[")
	assert.Contains(t, res.stdout, "a")

	plain := runCLI(t, `{"a":1}`, "--color", "never", "--highlight", "convert", "--to", "json")
	require.Equal(t, 0, plain.code, plain.stderr)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", plain.stdout)
}

func TestAutoColorOnBuffers(t *testing.T) {
	t.Parallel()
	res := runCLI(t, "[]", "convert", "--to", "csv")
	assert.Equal(t, 1, res.code)
	assert.NotContains(t, res.stderr, "\x1b[")
}

func TestParseDelimiter(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    rune
		wantErr require.ErrorAssertionFunc
	}{
		"empty":     {input: "", want: 0, wantErr: require.NoError},
		"semicolon": {input: ";", want: ';', wantErr: require.NoError},
		"tab word":  {input: "tab", want: '\t', wantErr: require.NoError},
		"escaped":   {input: `\t`, want: '\t', wantErr: require.NoError},
		"unicode":   {input: "¦", want: '¦', wantErr: require.NoError},
		"too long":  {input: ";;", want: 0, wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := parseDelimiter(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
