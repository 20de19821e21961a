package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/geomigrate/internal/canon"
	"github.com/roach88/geomigrate/internal/compiler"
	"github.com/roach88/geomigrate/internal/config"
	"github.com/roach88/geomigrate/internal/fragment"
	"github.com/roach88/geomigrate/internal/ir"
	"github.com/roach88/geomigrate/internal/textnorm"
)

// TranslateOptions holds flags shared by the translate subcommands.
type TranslateOptions struct {
	*RootOptions
	Config string // optional config file supplying the vocabulary
}

// TranslateResult is the output of one translation.
type TranslateResult struct {
	Input      string      `json:"input"`
	Output     ir.IRObject `json:"output,omitempty"`
	Text       string      `json:"text,omitempty"`
	Production string      `json:"production,omitempty"`
	Patterns   []string    `json:"patterns,omitempty"`
	Dropped    bool        `json:"dropped,omitempty"` // the selector encodes to nothing
}

// NewTranslateCommand creates the translate command and its subcommands.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate a single legacy value",
		Long: `Translate one legacy filter, selector, or text value the way migrate would.

Unlike migrate, which keeps the raw value of an untranslatable query,
translate reports the failure.

Exit codes:
  0 - Translated
  1 - Input could not be translated
  2 - Command error`,
	}
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "config file supplying legacy attribute ids")

	cmd.AddCommand(newTranslateSubcommand(opts, "filter <json>",
		"Translate a legacy JSON filter", translateFilter))
	cmd.AddCommand(newTranslateSubcommand(opts, "selector <selector>",
		"Translate a legacy path selector", translateSelector))
	cmd.AddCommand(newTranslateSubcommand(opts, "text <text>",
		"Rewrite identifiers embedded in text", translateText))

	return cmd
}

type translateFunc func(c *canon.Canonicalizer, comp *compiler.Compiler, input string) (TranslateResult, error)

func newTranslateSubcommand(opts *TranslateOptions, use, short string, fn translateFunc) *cobra.Command {
	return &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, opts, args[0], fn)
		},
	}
}

func runTranslate(cmd *cobra.Command, opts *TranslateOptions, input string, fn translateFunc) error {
	out := newFormatter(opts.RootOptions, cmd)

	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return out.Fail(ExitCommandError, ErrCodeConfig, err)
		}
	}

	c := canon.New()
	result, err := fn(c, compiler.New(c, cfg.CompilerVocabulary()), input)
	if err != nil {
		return out.Fail(ExitFailure, ErrCodeTranslate, err)
	}

	if opts.Format == "json" {
		return out.Success(result)
	}
	return writeTranslateText(cmd, out, result)
}

func writeTranslateText(cmd *cobra.Command, out *OutputFormatter, r TranslateResult) error {
	w := cmd.OutOrStdout()
	if r.Production != "" {
		out.VerboseLog("Production: %s", r.Production)
	}
	if len(r.Patterns) > 0 {
		out.VerboseLog("Patterns: %v", r.Patterns)
	}
	switch {
	case r.Dropped:
		fmt.Fprintln(w, "(dropped: selector has no structured form)")
	case r.Output != nil:
		data, err := ir.MarshalCanonical(r.Output)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	default:
		fmt.Fprintln(w, r.Text)
	}
	return nil
}

func translateFilter(c *canon.Canonicalizer, comp *compiler.Compiler, input string) (TranslateResult, error) {
	f, err := comp.TranslateFilter(input)
	if err != nil {
		return TranslateResult{}, err
	}
	if v := fragment.ValidateFilter(f, c.IsCanonical); !v.Valid {
		return TranslateResult{}, fmt.Errorf("translated filter is not canonical: %v", v.Problems)
	}
	return TranslateResult{Input: input, Output: f.ToIR()}, nil
}

func translateSelector(c *canon.Canonicalizer, comp *compiler.Compiler, input string) (TranslateResult, error) {
	sel, prod, err := comp.MatchSelector(input)
	if err != nil {
		return TranslateResult{}, err
	}
	if v := fragment.ValidateSelector(sel, c.IsCanonical); !v.Valid {
		return TranslateResult{}, fmt.Errorf("translated selector is not canonical: %v", v.Problems)
	}
	result := TranslateResult{Input: input, Production: prod.String()}
	obj, ok := fragment.Encode(sel)
	if !ok {
		result.Dropped = true
		return result, nil
	}
	result.Output = obj
	return result, nil
}

func translateText(c *canon.Canonicalizer, _ *compiler.Compiler, input string) (TranslateResult, error) {
	n := textnorm.New(c)
	var names []string
	for _, p := range n.Matches(input) {
		names = append(names, p.String())
	}
	return TranslateResult{Input: input, Text: n.Normalize(input), Patterns: names}, nil
}
