package cli

import (
	"context"
	"fmt"
	"strings"

	"go-procurement-fixtures/internal/clock"
	"go-procurement-fixtures/internal/repository"
	"go-procurement-fixtures/internal/service"
	"go-procurement-fixtures/pkg/database"

	"github.com/spf13/cobra"
)

// ProbeOptions holds flags for the probe command.
type ProbeOptions struct {
	RootOptions
	Schema string
}

// NewProbeCommand creates the probe command.
func NewProbeCommand() *cobra.Command {
	opts := &ProbeOptions{}

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Run connectivity and query checks against the catalog store",
		Long: `Connect to the catalog store named by DB_DRIVER and DATABASE_URL (or the
DB_HOST/DB_USER/DB_PASSWORD/DB_NAME/DB_PORT parts) and run ten checks, from
server version through multi-table aggregates.

Exits 0 when every check passes, 1 when any fails and 2 when the store is
unreachable.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(cmd, opts)
		},
	}

	addRootFlags(cmd, &opts.RootOptions)
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "schema holding the catalog tables (default per driver)")

	return cmd
}

func runProbe(cmd *cobra.Command, opts *ProbeOptions) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	settings := database.SettingsFromEnv()
	settings.Debug = opts.Verbose
	schema := opts.Schema
	if schema == "" {
		schema = settings.DefaultSchema()
	}

	logger.Info("connecting to catalog", "driver", settings.Driver, "schema", schema)
	db, err := database.Connect(settings)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to connect to catalog store", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	repo, err := repository.NewCatalogRepo(db, schema)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid schema", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report := service.NewProbeService(repo, cmd.OutOrStdout(), clock.NewSystem(), schema).Run(ctx)
	if !report.AllPassed() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d check(s) failed: %s",
			report.Total()-report.Passed(), strings.Join(report.FailedNames(), ", ")))
	}
	return nil
}
