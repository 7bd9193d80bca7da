package cli

import (
	"errors"
	"fmt"

	"github.com/SscSPs/receivables_app/internal/dto"
	"github.com/spf13/cobra"
)

// ErrAnalysisHasErrors is returned by commit when a fresh analysis still reports invalid rows.
var ErrAnalysisHasErrors = errors.New("analysis reports invalid rows; fix them or pass --force")

func newAnalyzeCommand(env *environment) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Preview a full-sync reconciliation without writing anything",
		Long: "Classifies each row as create, update, skip or error against the company's open debts.\n" +
			"Open debts missing from the file are listed as deletions.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readRows(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			s, err := env.start(cmd)
			if err != nil {
				return err
			}
			defer s.cleanup()

			plan, err := s.services.Reconciliation.Analyze(s.ctx, s.caller, s.companyID, dto.ToDomainRows(f.Rows))
			if err != nil {
				return fmt.Errorf("analyze: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), dto.ToAnalyzeResponse(plan))
		},
	}

	addIdentityFlags(cmd, env.opts)
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON rows file, - for stdin (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newCommitCommand(env *environment) *cobra.Command {
	var file, fingerprint string
	var force bool

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Apply a full-sync reconciliation",
		Long: "Re-analyzes the rows and applies creates, updates and deletions. The commit is not atomic:\n" +
			"rows that fail are listed in errors while the others stay applied.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readRows(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if fingerprint == "" {
				fingerprint = f.Fingerprint
			}

			s, err := env.start(cmd)
			if err != nil {
				return err
			}
			defer s.cleanup()

			rows := dto.ToDomainRows(f.Rows)
			if !force {
				plan, err := s.services.Reconciliation.Analyze(s.ctx, s.caller, s.companyID, rows)
				if err != nil {
					return fmt.Errorf("analyze: %w", err)
				}
				if plan.Summary.Errors > 0 {
					_ = writeJSON(cmd.OutOrStdout(), dto.ToAnalyzeResponse(plan))
					return ErrAnalysisHasErrors
				}
				if fingerprint == "" {
					fingerprint = plan.Fingerprint
				}
			}

			res, err := s.services.Reconciliation.Commit(s.ctx, s.caller, s.companyID, rows, fingerprint)
			if err != nil {
				return fmt.Errorf("commit: %w", err)
			}
			if err := writeJSON(cmd.OutOrStdout(), dto.ToCommitResponse(res)); err != nil {
				return err
			}
			if !res.Success {
				return fmt.Errorf("commit failed with %d errors", len(res.Errors))
			}
			return nil
		},
	}

	addIdentityFlags(cmd, env.opts)
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON rows file, - for stdin (required)")
	cmd.Flags().StringVar(&fingerprint, "fingerprint", "", "plan fingerprint from analyze; refuses to commit if the data changed")
	cmd.Flags().BoolVar(&force, "force", false, "commit even if the analysis reports invalid rows")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
