package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/geomigrate/internal/canon"
)

// CanonResult is the canonical form of one input identifier.
type CanonResult struct {
	Input     string `json:"input"`
	Canonical string `json:"canonical"`
	Route     string `json:"route"` // canonical | base58 | derived
}

// NewCanonCommand creates the canon command.
func NewCanonCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "canon <id>...",
		Short: "Canonicalize legacy identifiers",
		Long: `Print the canonical identifier of each argument and how it was obtained:

  canonical  the input already was a canonical identifier
  base58     the input decoded to a version 4 identifier
  derived    the identifier was derived from a hash of the input

Examples:
  geomigrate canon ETLCvYLt8onkSfvPTdcWBt
  geomigrate canon knows worksAt --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCanon(cmd, rootOpts, args)
		},
	}
}

func runCanon(cmd *cobra.Command, opts *RootOptions, ids []string) error {
	c := canon.New()
	results := make([]CanonResult, len(ids))
	for i, id := range ids {
		canonical, route := c.Resolve(id)
		results[i] = CanonResult{Input: id, Canonical: canonical, Route: route.String()}
	}

	if opts.Format == "json" {
		return newFormatter(opts, cmd).Success(results)
	}
	w := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Input, r.Canonical, r.Route)
	}
	return nil
}
