package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/geomigrate/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // scenario filter (glob pattern)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run migration scenarios",
		Long: `Run migration scenarios against an in-memory legacy snapshot.

Each scenario seeds legacy rows, migrates them, and checks its assertions.
When <scenarios-dir>/golden/<file>.golden exists the migration output must
also match it byte for byte.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  geomigrate test ./scenarios
  geomigrate test ./scenarios --filter "query_*"
  geomigrate test ./scenarios --update
  geomigrate test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(cmd *cobra.Command, opts *TestOptions, dir string) error {
	out := newFormatter(opts.RootOptions, cmd)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return out.Fail(ExitCommandError, ErrCodeScenarios, fmt.Errorf("scenarios directory not found: %s", dir))
	}

	files, err := harness.FindScenarios(dir, opts.Filter)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeScenarios, err)
	}

	if len(files) == 0 {
		if opts.Format == "json" {
			return outputTestJSON(cmd, TestResult{Scenarios: []ScenarioResult{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
		return nil
	}

	result := TestResult{
		Scenarios: make([]ScenarioResult, 0, len(files)),
		Total:     len(files),
	}
	for _, file := range files {
		sr := runScenario(cmd, opts, dir, file)
		if opts.Format != "json" {
			writeScenarioText(cmd, sr)
		}
		result.Scenarios = append(result.Scenarios, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		return outputTestJSON(cmd, result)
	}
	return outputTestText(cmd, result)
}

// runScenario loads, runs, and checks a single scenario file.
func runScenario(cmd *cobra.Command, opts *TestOptions, dir, file string) ScenarioResult {
	scenario, err := harness.LoadScenario(file)
	if err != nil {
		return ScenarioResult{
			Name:   filepath.Base(file),
			Errors: []string{fmt.Sprintf("failed to load scenario: %v", err)},
		}
	}

	result, err := harness.Run(cmd.Context(), scenario)
	if err != nil {
		return ScenarioResult{
			Name:   scenario.Name,
			Errors: []string{fmt.Sprintf("execution failed: %v", err)},
		}
	}
	sr := ScenarioResult{Name: scenario.Name, Pass: result.Pass, Errors: result.Errors}

	snapshot, err := harness.Snapshot(scenario.Name, result)
	if err != nil {
		sr.Pass = false
		sr.Errors = append(sr.Errors, fmt.Sprintf("failed to encode snapshot: %v", err))
		return sr
	}

	goldenPath := goldenFilePath(dir, file)
	if opts.Update {
		if err := writeGolden(goldenPath, snapshot); err != nil {
			sr.Pass = false
			sr.Errors = append(sr.Errors, fmt.Sprintf("failed to update golden file: %v", err))
		}
		return sr
	}

	golden, err := os.ReadFile(goldenPath)
	switch {
	case os.IsNotExist(err):
		// Assertions only.
	case err != nil:
		sr.Pass = false
		sr.Errors = append(sr.Errors, fmt.Sprintf("failed to read golden file: %v", err))
	case !bytes.Equal(golden, snapshot):
		sr.Pass = false
		sr.Errors = append(sr.Errors, "output does not match golden file (run with --update to regenerate)")
	}
	return sr
}

// goldenFilePath returns <dir>/golden/<file name without extension>.golden.
func goldenFilePath(dir, file string) string {
	base := filepath.Base(file)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

func writeGolden(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func writeScenarioText(cmd *cobra.Command, sr ScenarioResult) {
	w := cmd.OutOrStdout()
	if sr.Pass {
		fmt.Fprintf(w, "\u2713 %s\n", sr.Name)
		return
	}
	fmt.Fprintf(w, "\u2717 %s\n", sr.Name)
	for _, e := range sr.Errors {
		fmt.Fprintf(w, "  %s\n", strings.TrimRight(e, "\n"))
	}
}

// outputTestJSON outputs the test result as JSON.
func outputTestJSON(cmd *cobra.Command, result TestResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if result.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeTest,
			Message: fmt.Sprintf("%d of %d scenarios failed", result.Failed, result.Total),
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(response); err != nil {
		return err
	}
	if result.Failed > 0 {
		return NewExitError(ExitFailure, "scenarios failed")
	}
	return nil
}

// outputTestText outputs the test summary as human-readable text.
func outputTestText(cmd *cobra.Command, result TestResult) error {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	if result.Failed > 0 {
		return NewExitError(ExitFailure, "scenarios failed")
	}
	return nil
}
