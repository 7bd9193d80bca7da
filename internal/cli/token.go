package cli

import (
	"fmt"
	"time"

	"github.com/SscSPs/receivables_app/internal/middleware"
	"github.com/spf13/cobra"
)

func newTokenCommand(env *environment) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API bearer token for a stored user",
		Long:  "The token carries the user's current company and role as stored in the database.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := env.loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			s, err := env.start(cmd)
			if err != nil {
				return err
			}
			defer s.cleanup()

			if s.caller.CompanyID != s.companyID {
				return fmt.Errorf("user %s does not belong to company %s", s.caller.UserID, s.companyID)
			}
			token, err := middleware.SignCallerToken(s.caller, cfg.JWTSecret, cfg.JWTIssuer, ttl)
			if err != nil {
				return fmt.Errorf("signing token: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	addIdentityFlags(cmd, env.opts)
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")

	return cmd
}
