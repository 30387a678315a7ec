package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gastos-bcn-go/internal/importer"
	"gastos-bcn-go/internal/importer/receipt"
)

func newReceiptCommand(ctx *cliContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "receipt <file.pdf>",
		Short: "Import product lines from a supermarket ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctx.categoryID == 0 {
				return fmt.Errorf("--category is required")
			}

			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read receipt: %w", err)
			}

			text, err := receipt.ExtractPDFText(content)
			if err != nil {
				return fmt.Errorf("extract receipt text: %w", err)
			}

			ticket := receipt.Parse(text)
			if len(ticket.Products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no products recognized in receipt")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "found %d products\n", len(ticket.Products))
			for _, product := range ticket.Products {
				fmt.Fprintf(cmd.OutOrStdout(), "  %dx %-40s %8.2f\n", product.Quantity, product.Description, product.Amount)
			}
			if ticket.Total != 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "ticket total: %.2f\n", ticket.Total)
			}
			if ticket.Timestamp != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "ticket date: %s\n", ticket.Timestamp.Format("2006-01-02 15:04"))
			}

			if dryRun {
				return nil
			}

			payloads := importer.ExpandTicket(ticket, ctx.categoryID, ctx.person)
			created, err := ctx.client().CreateExpenses(cmd.Context(), payloads)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "created %d of %d expenses before failure\n", created.CreatedCount, len(payloads))
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %d expenses\n", created.CreatedCount)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and preview without creating expenses")
	return cmd
}
