// Package cli implements receivablesctl, the operator command line for running
// reconciliations and recording payments without the HTTP server.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/receivables_app/internal/core/domain"
	portssvc "github.com/SscSPs/receivables_app/internal/core/ports/services"
	"github.com/SscSPs/receivables_app/internal/core/services"
	"github.com/SscSPs/receivables_app/internal/metrics"
	"github.com/SscSPs/receivables_app/internal/middleware"
	"github.com/SscSPs/receivables_app/internal/platform/config"
	"github.com/SscSPs/receivables_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/receivables_app/pkg/database"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// Opener builds the service container the commands run against. The returned
// cleanup releases whatever the container holds.
type Opener func(ctx context.Context, cfg *config.Config) (*portssvc.ServiceContainer, func(), error)

// PostgresOpener connects to the configured database.
func PostgresOpener(ctx context.Context, cfg *config.Config) (*portssvc.ServiceContainer, func(), error) {
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, nil, err
	}
	container := services.NewServiceContainer(pgsql.NewRepositoryProvider(pool), metrics.New(prometheus.NewRegistry()))
	return container, func() { database.ClosePgxPool(pool) }, nil
}

// options are the flags shared by every command.
type options struct {
	companyID string
	userID    string
	verbose   bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
// loadConfig and open are injected so that tests can run the commands against fakes.
func NewRootCommand(loadConfig func() (*config.Config, error), open Opener) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "receivablesctl",
		Short: "Operator tool for receivables reconciliation and payments",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	env := &environment{opts: opts, loadConfig: loadConfig, open: open}
	rootCmd.AddCommand(
		newAnalyzeCommand(env),
		newCommitCommand(env),
		newPayCommand(env),
		newTokenCommand(env),
		newMigrateCommand(loadConfig),
	)

	return rootCmd
}

// addIdentityFlags registers --company and --user on commands that act on behalf of a user.
func addIdentityFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.companyID, "company", "", "company id (required)")
	cmd.Flags().StringVar(&opts.userID, "user", "", "id of the user the operation runs as (required)")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("user")
}

// environment resolves config, services and caller for one command invocation.
type environment struct {
	opts       *options
	loadConfig func() (*config.Config, error)
	open       Opener
}

// session is a ready-to-use command context.
type session struct {
	ctx       context.Context
	caller    domain.Caller
	services  *portssvc.ServiceContainer
	companyID string
	cleanup   func()
}

func (e *environment) start(cmd *cobra.Command) (*session, error) {
	level := slog.LevelWarn
	if e.opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := e.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	ctx := middleware.WithLogger(cmd.Context(), logger)
	container, cleanup, err := e.open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if cleanup == nil {
		cleanup = func() {}
	}

	caller, err := container.Company.ResolveCaller(ctx, e.opts.userID)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("resolving user %s: %w", e.opts.userID, err)
	}
	ctx = middleware.WithCaller(ctx, caller)

	return &session{ctx: ctx, caller: caller, services: container, companyID: e.opts.companyID, cleanup: cleanup}, nil
}

// Execute runs receivablesctl against the configured database and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand(config.LoadConfig, PostgresOpener).Execute(); err != nil {
		os.Exit(1)
	}
}
