package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/geomigrate/internal/config"
)

// ValidateResult holds the result of config validation.
type ValidateResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Driver  string `json:"driver,omitempty"`
	Spaces  int    `json:"spaces"`
	Workers int    `json:"workers,omitempty"`
}

// ValidateErrorDetails locates a config error.
type ValidateErrorDetails struct {
	Code   string `json:"code"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config>",
		Short: "Validate a migration config",
		Long: `Load a .yaml or .cue migration config, apply defaults, and check the
result against the config schema.

Exit codes:
  0 - Config is valid
  1 - Config is invalid
  2 - Command error

Examples:
  geomigrate validate migrate.yaml
  geomigrate validate migrate.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootOpts, args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, opts *RootOptions, path string) error {
	out := newFormatter(opts, cmd)

	cfg, err := config.Load(path)
	if err != nil {
		var details *ValidateErrorDetails
		var le *config.LoadError
		if errors.As(err, &le) {
			details = &ValidateErrorDetails{Code: string(le.Code)}
			if le.Pos.IsValid() {
				details.Line = le.Pos.Line()
				details.Column = le.Pos.Column()
			}
		}
		_ = out.Error(ErrCodeConfig, err.Error(), details)
		return WrapExitError(ExitFailure, "config validation failed", err)
	}

	result := ValidateResult{
		Valid:   true,
		Path:    path,
		Driver:  cfg.Source.Driver,
		Spaces:  len(cfg.Spaces),
		Workers: cfg.Workers,
	}
	if opts.Format == "json" {
		return out.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "\u2713 %s is valid\n", path)
	if len(cfg.Spaces) == 0 {
		fmt.Fprintf(w, "  source: %s, all spaces, %d workers\n", cfg.Source.Driver, cfg.Workers)
	} else {
		fmt.Fprintf(w, "  source: %s, %d spaces, %d workers\n", cfg.Source.Driver, len(cfg.Spaces), cfg.Workers)
	}
	return nil
}
