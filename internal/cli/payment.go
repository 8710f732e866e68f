package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPaymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Payment method commands",
	}

	cmd.AddCommand(newPaymentAddCmd())
	cmd.AddCommand(newPaymentListCmd())
	cmd.AddCommand(newPaymentDefaultCmd())
	cmd.AddCommand(newPaymentSetDefaultCmd())
	cmd.AddCommand(newPaymentDeactivateCmd())
	cmd.AddCommand(newPaymentReactivateCmd())
	cmd.AddCommand(newPaymentDeleteCmd())

	return cmd
}

func newPaymentAddCmd() *cobra.Command {
	var kind, label string
	var asDefault bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a payment method",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"kind":       kind,
				"label":      label,
				"as_default": asDefault,
			}
			var result PaymentMethod

			if err := client.Post("/api/v1/payment-methods", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Payment kind, e.g. card or paypal (required)")
	cmd.Flags().StringVar(&label, "label", "", "Display label (required)")
	cmd.Flags().BoolVar(&asDefault, "default", false, "Make this the default method")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("label")

	return cmd
}

func newPaymentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your payment methods in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []PaymentMethod

			if err := client.Get("/api/v1/payment-methods", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPaymentDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default",
		Short: "Show your default payment method",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PaymentMethod

			if err := client.Get("/api/v1/payment-methods/default", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPaymentSetDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-default <id>",
		Short: "Make a payment method the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PaymentMethod

			if err := client.Put(fmt.Sprintf("/api/v1/payment-methods/%s/default", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPaymentDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Deactivate a payment method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PaymentMethod

			if err := client.Post(fmt.Sprintf("/api/v1/payment-methods/%s/deactivate", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPaymentReactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reactivate <id>",
		Short: "Reactivate a payment method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PaymentMethod

			if err := client.Post(fmt.Sprintf("/api/v1/payment-methods/%s/reactivate", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPaymentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a payment method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/payment-methods/%s", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Deleted payment method %s", args[0]))
			return nil
		},
	}
}
