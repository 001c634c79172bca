package main

import (
	"errors"
	"fmt"

	"github.com/bjaus/convkit"
	"github.com/spf13/cobra"
)

func (a *app) convertCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "convert [file|-]",
		Short: "Convert a document to another format",
		Example: `  convkit convert --to csv users.json
  convkit convert --from csv --to xml < users.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			input, err := a.readInput(args)
			if err != nil {
				return err
			}
			src, err := a.sourceFormat(from, input)
			if err != nil {
				return err
			}
			dst, err := convkit.ParseFormat(to)
			if err != nil {
				return err
			}
			a.log.Debug("converting", "from", src, "to", dst)
			res := a.conv.Convert(input, src, dst)
			if !res.Success {
				return fmt.Errorf("%s to %s: %w", src, dst, res.Err())
			}
			a.log.Debug("converted", "bytes", len(res.Data))
			return a.emit(res.Data, lexerFor(dst))
		},
	}
	cmd.Flags().StringVarP(&from, "from", "f", "auto", "source format, or auto to detect JSON or XML")
	cmd.Flags().StringVarP(&to, "to", "t", "", "target format")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func (a *app) sourceFormat(name, input string) (convkit.Format, error) {
	if name != "auto" {
		return convkit.ParseFormat(name)
	}
	f := convkit.DetectInputType(input)
	a.log.Debug("detected format", "format", f)
	return f, nil
}

func (a *app) detectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [file|-]",
		Short: "Report whether input looks like JSON or XML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			input, err := a.readInput(args)
			if err != nil {
				return err
			}
			return a.emit(convkit.DetectInputType(input).String(), "plaintext")
		},
	}
}

func (a *app) formatCmd() *cobra.Command {
	var as string
	var manual bool
	cmd := &cobra.Command{
		Use:   "format [file|-]",
		Short: "Pretty-print JSON, XML or HTML",
		Long: `Pretty-print a document. XML that does not parse is re-indented with
the tolerant single-pass formatter; --manual always uses it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			input, err := a.readInput(args)
			if err != nil {
				return err
			}
			f, err := a.sourceFormat(as, input)
			if err != nil {
				return err
			}
			switch f {
			case convkit.JSON:
				v, err := a.conv.Decode(input, convkit.JSON)
				if err != nil {
					return err
				}
				out, err := a.conv.Encode(v, convkit.JSON)
				if err != nil {
					return err
				}
				return a.emit(out, "json")
			case convkit.XML:
				if manual {
					return a.emit(convkit.FormatMarkupManual(input), "xml")
				}
				return a.emit(convkit.FormatMarkup(input), "xml")
			case convkit.HTML:
				return a.emit(convkit.FormatHTML(input), "html")
			default:
				return fmt.Errorf("%w: cannot format %q", convkit.ErrUnsupportedFormat, as)
			}
		},
	}
	cmd.Flags().StringVar(&as, "as", "auto", "input format: auto, json, xml or html")
	cmd.Flags().BoolVar(&manual, "manual", false, "use the single-pass markup formatter")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	var as string
	cmd := &cobra.Command{
		Use:   "validate [file|-]",
		Short: "Check that input parses in the given format",
		Long:  "Check that input parses in the given format. Exits 1 when it does not.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			input, err := a.readInput(args)
			if err != nil {
				return err
			}
			f, err := convkit.ParseFormat(as)
			if err != nil {
				return err
			}
			if !f.CanDecode() {
				return fmt.Errorf("%w: cannot validate %q", convkit.ErrUnsupportedFormat, f)
			}
			v, err := a.conv.Decode(input, f)
			if err == nil && (f == convkit.CSV || f == convkit.TSV) {
				if rows, _ := v.(convkit.Sequence); len(rows) == 0 {
					err = errors.New("no data rows")
				}
			}
			if err != nil {
				return &exitError{code: 1, err: fmt.Errorf("invalid %s: %w", f, err)}
			}
			return a.emit("valid "+f.String(), "plaintext")
		},
	}
	cmd.Flags().StringVar(&as, "as", "", "format to validate against")
	_ = cmd.MarkFlagRequired("as")
	return cmd
}

func (a *app) formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported formats",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			rows := convkit.Sequence{}
			for _, f := range convkit.Formats() {
				row := convkit.NewMapping()
				row.Set("format", convkit.String(f))
				row.Set("read", convkit.Bool(f.CanDecode()))
				row.Set("write", convkit.Bool(true))
				rows = append(rows, row)
			}
			out, err := a.conv.Encode(rows, convkit.Table)
			if err != nil {
				return err
			}
			return a.emit(out, "plaintext")
		},
	}
}
