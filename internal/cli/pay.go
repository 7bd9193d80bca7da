package cli

import (
	"fmt"
	"time"

	"github.com/SscSPs/receivables_app/internal/core/domain"
	"github.com/SscSPs/receivables_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newPayCommand(env *environment) *cobra.Command {
	var customerID, amount, currency, date, method, reference string

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Record a payment and allocate it to the oldest open debts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			if date == "" {
				date = time.Now().UTC().Format(domain.DueDateLayout)
			}
			req := dto.RecordPaymentRequest{
				CustomerID:  customerID,
				Amount:      amt,
				Currency:    currency,
				PaymentDate: date,
				Method:      domain.PaymentMethod(method),
				Reference:   reference,
			}

			v, err := dto.NewValidator()
			if err != nil {
				return err
			}
			if err := v.Struct(req); err != nil {
				return fmt.Errorf("invalid payment: %w", err)
			}

			s, err := env.start(cmd)
			if err != nil {
				return err
			}
			defer s.cleanup()

			res, err := s.services.Payment.RecordPayment(s.ctx, s.caller, s.companyID, req)
			if err != nil {
				return fmt.Errorf("record payment: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), dto.ToPaymentAllocationResponse(res))
		},
	}

	addIdentityFlags(cmd, env.opts)
	cmd.Flags().StringVar(&customerID, "customer", "", "customer id (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "payment amount, e.g. 1500.50 (required)")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO currency code (required)")
	cmd.Flags().StringVar(&date, "date", "", "payment date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&method, "method", string(domain.PaymentBankTransfer), "cash, bank_transfer, cheque, credit_card or other")
	cmd.Flags().StringVar(&reference, "reference", "", "bank or receipt reference")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("currency")

	return cmd
}
