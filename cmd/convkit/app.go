package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/bjaus/convkit"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	v    *viper.Viper
	log  *slog.Logger
	conv *convkit.Converter

	colorOut bool
	colorErr bool
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		v:      viper.New(),
		log:    slog.New(slog.DiscardHandler),
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "convkit",
		Short: "Convert structured text between JSON, XML, CSV and friends",
		Long: `convkit converts documents between JSON, XML markup, CSV, TSV, YAML and
JSON Lines, renders tables as text, Markdown or HTML, and pretty-prints
markup. Input is read from a file argument or from stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default .convkit.yaml in the working directory)")
	pf.BoolP("verbose", "v", false, "log debug output to stderr")
	pf.String("color", colorAuto, "colorize output: auto, always or never")
	pf.Bool("highlight", false, "syntax-highlight output when colors are enabled")
	pf.String("indent", "", "indent unit for JSON, YAML and markup output (default two spaces)")
	pf.String("delimiter", "", `CSV field delimiter, one character or "tab" (default ",")`)
	pf.String("root", "", `wrapper element name for markup output (default "root")`)
	pf.String("text-key", "", `key holding element text (default "_text")`)
	pf.String("attr-prefix", "", `key prefix marking attributes (default "@")`)
	pf.String("border", "", "text table border: rounded, none, ascii, heavy or double")

	root.AddCommand(
		a.convertCmd(),
		a.detectCmd(),
		a.formatCmd(),
		a.validateCmd(),
		a.formatsCmd(),
	)
	return root
}

// setup resolves configuration from flags, environment and the config file,
// in that order of precedence, and builds the converter.
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	a.v.SetEnvPrefix("CONVKIT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	level := slog.LevelInfo
	if a.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	if err := a.readConfig(); err != nil {
		return err
	}

	mode := a.v.GetString("color")
	switch mode {
	case colorAuto, colorAlways, colorNever:
	default:
		return fmt.Errorf("invalid --color %q: want auto, always or never", mode)
	}
	a.colorOut = useColor(mode, a.stdout)
	a.colorErr = useColor(mode, a.stderr)

	delim, err := parseDelimiter(a.v.GetString("delimiter"))
	if err != nil {
		return err
	}
	conv, err := convkit.New(convkit.Config{
		Indent:     a.v.GetString("indent"),
		Delimiter:  delim,
		RootName:   a.v.GetString("root"),
		TextKey:    a.v.GetString("text-key"),
		AttrPrefix: a.v.GetString("attr-prefix"),
		Border:     convkit.BorderStyle(a.v.GetString("border")),
	})
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.conv = conv
	a.log.Debug("configured", "command", cmd.Name(), "color", mode, "config", conv.Config())
	return nil
}

func (a *app) readConfig() error {
	path := a.v.GetString("config")
	if path != "" {
		a.v.SetConfigFile(path)
	} else {
		a.v.SetConfigName(".convkit")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	a.log.Info("loaded config", "file", a.v.ConfigFileUsed())
	return nil
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return 0, fmt.Errorf("invalid delimiter %q: must be a single character", s)
	}
	return r, nil
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (a *app) readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		a.log.Debug("read input", "source", "stdin", "bytes", len(b))
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	a.log.Debug("read input", "source", args[0], "bytes", len(b))
	return string(b), nil
}

// emit writes out followed by a newline, highlighted as lang when
// highlighting is on and stdout takes colors.
func (a *app) emit(out, lang string) error {
	if a.v.GetBool("highlight") && a.colorOut {
		return quick.Highlight(a.stdout, out+"\n", lang, "terminal256", "monokai")
	}
	_, err := fmt.Fprintln(a.stdout, out)
	return err
}

func (a *app) printErr(err error) {
	c := color.New(color.FgRed, color.Bold)
	if a.colorErr {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	_, _ = c.Fprintf(a.stderr, "error: %v\n", err)
}

// lexerFor names the chroma lexer for output in format f.
func lexerFor(f convkit.Format) string {
	switch f {
	case convkit.JSON, convkit.JSONL:
		return "json"
	case convkit.XML:
		return "xml"
	case convkit.YAML:
		return "yaml"
	case convkit.HTML:
		return "html"
	case convkit.Markdown:
		return "markdown"
	default:
		return "plaintext"
	}
}
