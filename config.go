package convkit

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// BorderStyle controls text table border characters.
type BorderStyle string

const (
	BorderRounded BorderStyle = "rounded" // ╭─╮╰╯│┬┴├┤┼
	BorderNone    BorderStyle = "none"    // No borders, space-separated columns
	BorderASCII   BorderStyle = "ascii"   // +-+|
	BorderHeavy   BorderStyle = "heavy"   // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble  BorderStyle = "double"  // ╔═╗╚╝║╦╩╠╣╬
)

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Config holds converter options. The zero value is usable; empty fields
// take the defaults documented on each field.
type Config struct {
	// Indent is the unit of indentation for JSON, YAML and markup output.
	// Default: two spaces.
	Indent string `json:"indent,omitempty" yaml:"indent,omitempty"`
	// Delimiter separates CSV fields. Default: comma.
	Delimiter rune `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
	// RootName names the wrapper element synthesized when JSON has no single
	// top-level key. Default: "root".
	RootName string `json:"rootName,omitempty" yaml:"rootName,omitempty"`
	// TextKey holds element text next to attributes or children.
	// Default: "_text".
	TextKey string `json:"textKey,omitempty" yaml:"textKey,omitempty"`
	// AttrPrefix marks mapping keys that markup output renders as
	// attributes. Default: "@".
	AttrPrefix string `json:"attrPrefix,omitempty" yaml:"attrPrefix,omitempty"`
	// Border selects the text table border. Default: BorderRounded.
	Border BorderStyle `json:"border,omitempty" yaml:"border,omitempty"`
}

func (c Config) applyDefaults() Config {
	if c.Indent == "" {
		c.Indent = "  "
	}
	if c.Delimiter == 0 {
		c.Delimiter = ','
	}
	if c.RootName == "" {
		c.RootName = "root"
	}
	if c.TextKey == "" {
		c.TextKey = "_text"
	}
	if c.AttrPrefix == "" {
		c.AttrPrefix = "@"
	}
	if c.Border == "" {
		c.Border = BorderRounded
	}
	return c
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if strings.Trim(c.Indent, " \t") != "" {
		return fmt.Errorf("invalid indent %q: only spaces and tabs are allowed", c.Indent)
	}
	if c.Delimiter == '"' || c.Delimiter == '\r' || c.Delimiter == '\n' || c.Delimiter == utf8.RuneError || !utf8.ValidRune(c.Delimiter) {
		return fmt.Errorf("invalid delimiter %q", c.Delimiter)
	}
	if !isXMLName(c.RootName) {
		return fmt.Errorf("invalid rootName %q: must be a valid element name", c.RootName)
	}
	if strings.TrimSpace(c.TextKey) == "" {
		return fmt.Errorf("textKey must be non-empty")
	}
	if c.AttrPrefix != "" && strings.HasPrefix(c.TextKey, c.AttrPrefix) {
		return fmt.Errorf("textKey %q must not start with attrPrefix %q", c.TextKey, c.AttrPrefix)
	}
	if _, ok := borderSets[c.Border]; !ok && c.Border != BorderNone {
		return fmt.Errorf("invalid border %q", c.Border)
	}
	return nil
}

// Converter runs conversions with a fixed [Config]. It holds no mutable
// state and is safe for concurrent use.
type Converter struct {
	config Config
}

// New creates a converter, filling defaults and validating cfg.
func New(cfg Config) (*Converter, error) {
	cfg = cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Converter{config: cfg}, nil
}

// Config returns the effective configuration, defaults included.
func (c *Converter) Config() Config { return c.config }

var defaultConverter = &Converter{config: Config{}.applyDefaults()}
