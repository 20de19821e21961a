package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/geomigrate/internal/canon"
	"github.com/roach88/geomigrate/internal/config"
	"github.com/roach88/geomigrate/internal/engine"
	"github.com/roach88/geomigrate/internal/pgstore"
	"github.com/roach88/geomigrate/internal/source"
	"github.com/roach88/geomigrate/internal/store"
)

// MigrateOptions holds flags for the migrate command.
type MigrateOptions struct {
	*RootOptions
	Config   string   // path to a .yaml or .cue config file
	SQLite   string   // legacy SQLite snapshot
	Postgres string   // legacy Postgres DSN
	Spaces   []string // spaces to migrate; empty means all
	OutDir   string   // output directory
	Workers  int      // per-space entity fan-out
	Author   string   // edit author
	Ledger   string   // SQLite ledger path; empty disables the ledger

	// IDs overrides the edge ID generator. Tests set it for stable output.
	IDs canon.Generator
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return newMigrateCommand(&MigrateOptions{RootOptions: rootOpts})
}

func newMigrateCommand(opts *MigrateOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate legacy spaces to canonical edits",
		Long: `Read a legacy knowledge graph and write one edit per space.

For each space two files are written to the output directory:
  <space>_ops.json   the ops array
  <space>_edit.json  the edit envelope

Flags override the values of the config file.

Exit codes:
  0 - All spaces migrated
  1 - Migration failed
  2 - Command error (bad flags, invalid config, unreachable source)

Examples:
  geomigrate migrate --sqlite legacy.db --author 0xabc
  geomigrate migrate --config migrate.yaml --space ETLCvYLt8onkSfvPTdcWBt
  geomigrate migrate --postgres postgres://localhost/legacy --ledger ledger.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "config file (.yaml or .cue)")
	cmd.Flags().StringVar(&opts.SQLite, "sqlite", "", "legacy SQLite snapshot")
	cmd.Flags().StringVar(&opts.Postgres, "postgres", "", "legacy Postgres DSN")
	cmd.Flags().StringSliceVar(&opts.Spaces, "space", nil, "space to migrate (repeatable)")
	cmd.Flags().StringVarP(&opts.OutDir, "out", "o", "", "output directory")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", config.DefaultWorkers, "entities migrated concurrently per space")
	cmd.Flags().StringVar(&opts.Author, "author", "", "edit author")
	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "record edits in this SQLite ledger")

	return cmd
}

func runMigrate(cmd *cobra.Command, opts *MigrateOptions) error {
	out := newFormatter(opts.RootOptions, cmd)

	cfg, err := migrateConfig(cmd, opts)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeConfig, err)
	}
	out.VerboseLog("Source: %s", cfg.Source.Driver)
	out.VerboseLog("Output: %s", cfg.OutputDir)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go cancelOnSignal(ctx, cancel, out.GetErrWriter())

	src, closeSrc, err := openSource(ctx, cfg)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeSource, err)
	}
	defer closeSrc()

	var sink engine.Sink = engine.FileSink{Dir: cfg.OutputDir}
	if opts.Ledger != "" {
		ledger, err := store.Open(opts.Ledger)
		if err != nil {
			return out.Fail(ExitCommandError, ErrCodeConfig, fmt.Errorf("open ledger: %w", err))
		}
		defer ledger.Close()
		sink = engine.MultiSink{sink, engine.LedgerSink{Ledger: ledger}}
	}

	engineOpts := []engine.Option{engine.WithLogger(newLogger(opts.RootOptions, out.GetErrWriter()))}
	if opts.IDs != nil {
		engineOpts = append(engineOpts, engine.WithIDGenerator(opts.IDs))
	}

	report, err := engine.New(cfg, src, sink, engineOpts...).Run(ctx)
	if err != nil {
		_ = out.Error(ErrCodeMigration, err.Error(), report)
		return WrapExitError(ExitFailure, "migration failed", err)
	}

	if opts.Format == "json" {
		return out.Success(report)
	}
	w := cmd.OutOrStdout()
	for _, sr := range report.Spaces {
		fmt.Fprintf(w, "\u2713 %s: %d ops (%s)\n", sr.SpaceID, sr.OpCount, sr.EditChecksum[:12])
	}
	t := report.Totals
	fmt.Fprintf(w, "Migrated %d spaces: %d entities, %d properties, %d values, %d relations, %d degraded\n",
		t.Spaces, t.Entities, t.Properties, t.Values, t.Relations, t.Degraded)
	return nil
}

// migrateConfig reads the config file, or starts from defaults, applies
// the flags that were set, and validates the result.
func migrateConfig(cmd *cobra.Command, opts *MigrateOptions) (config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Read(opts.Config); err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if opts.SQLite != "" && opts.Postgres != "" {
		return config.Config{}, errors.New("--sqlite and --postgres are mutually exclusive")
	}
	if opts.SQLite != "" {
		cfg.Source = config.SourceConfig{Driver: config.DriverSQLite, DSN: opts.SQLite}
	}
	if opts.Postgres != "" {
		cfg.Source = config.SourceConfig{Driver: config.DriverPostgres, DSN: opts.Postgres}
	}
	if flags.Changed("space") {
		cfg.Spaces = opts.Spaces
	}
	if flags.Changed("out") {
		cfg.OutputDir = opts.OutDir
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.Workers
	}
	if flags.Changed("author") {
		cfg.Author = opts.Author
	}

	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openSource connects to the configured legacy store.
func openSource(ctx context.Context, cfg config.Config) (*source.Reader, func(), error) {
	vocab := cfg.SourceVocabulary()
	switch cfg.Source.Driver {
	case config.DriverSQLite:
		// store.Open creates missing files; a typo must not become an empty source.
		if _, err := os.Stat(cfg.Source.DSN); err != nil {
			return nil, nil, fmt.Errorf("sqlite snapshot: %w", err)
		}
		st, err := store.Open(cfg.Source.DSN)
		if err != nil {
			return nil, nil, err
		}
		return source.NewReader(st, vocab), func() { st.Close() }, nil
	case config.DriverPostgres:
		pg, err := pgstore.Open(ctx, pgstore.Config{DSN: cfg.Source.DSN, MaxConns: int32(cfg.Workers)})
		if err != nil {
			return nil, nil, err
		}
		return source.NewReader(pg, vocab), pg.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown source driver %q", cfg.Source.Driver)
	}
}

// cancelOnSignal cancels ctx on SIGINT or SIGTERM. Spaces already written
// stay on disk.
func cancelOnSignal(ctx context.Context, cancel context.CancelFunc, w io.Writer) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		fmt.Fprintf(w, "received %s, stopping\n", sig)
		cancel()
	case <-ctx.Done():
	}
}
