package cli

import (
	"context"
	"fmt"
	"os"

	"go-procurement-fixtures/internal/clock"
	"go-procurement-fixtures/internal/config"
	"go-procurement-fixtures/internal/repository"
	"go-procurement-fixtures/internal/service"

	"github.com/spf13/cobra"
)

// DatagenOptions holds flags for the datagen command.
type DatagenOptions struct {
	RootOptions
	ConfigPath string
	Seed       uint64
	EndDate    string
	Days       int
	Workers    int

	// Clock and Sink override the system clock and the file sink (for testing).
	Clock clock.Clock
	Sink  repository.ArtifactSink
}

// NewDatagenCommand creates the datagen command.
func NewDatagenCommand() *cobra.Command {
	return newDatagenCommand(&DatagenOptions{})
}

func newDatagenCommand(opts *DatagenOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datagen",
		Short: "Write order and stock fixtures",
		Long: `Write one orders file per store and one stock snapshot per warehouse for
every day of the range ending today (or --date).

Example:
  datagen
  datagen --seed 42 --days 3 --date 2024-01-03
  datagen --config fixtures.yaml --workers 4`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatagen(cmd, opts)
		},
	}

	addRootFlags(cmd, &opts.RootOptions)
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for reproducible output (random when unset)")
	cmd.Flags().StringVar(&opts.EndDate, "date", "", "last day of the range, YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&opts.Days, "days", 0, "number of days to generate")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "artifacts generated concurrently")

	return cmd
}

func loadConfig(cmd *cobra.Command, opts *DatagenOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		seed := opts.Seed
		cfg.Seed = &seed
	}
	if flags.Changed("date") {
		cfg.EndDate = opts.EndDate
	}
	if flags.Changed("days") {
		cfg.Days = opts.Days
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.Workers
	}
	return cfg, cfg.Validate()
}

func runDatagen(cmd *cobra.Command, opts *DatagenOptions) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.NewSystem()
	}
	sink := opts.Sink
	if sink == nil {
		sink = repository.NewFileSink()
	}

	gen, err := service.NewGeneratorService(cfg, sink, clk, logger)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	summary, err := gen.Run(ctx, service.RunOptions{})
	if err != nil {
		return WrapExitError(ExitFailure, "generation failed", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d order files (%d orders, %d line items) and %d stock files (%d rows) for %s..%s, seed %d\n",
		summary.OrderArtifacts, summary.Orders, summary.LineItems,
		summary.StockArtifacts, summary.StockRows,
		summary.Dates[0], summary.Dates[len(summary.Dates)-1],
		summary.Seed,
	)
	return nil
}
