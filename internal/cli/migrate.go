package cli

import (
	"fmt"

	"github.com/SscSPs/receivables_app/internal/platform/config"
	"github.com/SscSPs/receivables_app/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand(loadConfig func() (*config.Config, error)) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if path == "" {
				path = cfg.MigrationsPath
			}
			if err := database.RunMigrations(cfg.DatabaseURL, path); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return err
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "migrations source URL (default from MIGRATIONS_PATH)")

	return cmd
}
