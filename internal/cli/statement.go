package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gastos-bcn-go/internal/importer"
	"gastos-bcn-go/internal/importer/statement"
)

func newStatementCommand(ctx *cliContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "statement <file.xls>",
		Short: "Import debit movements from a bank statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctx.categoryID == 0 {
				return fmt.Errorf("--category is required")
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open statement: %w", err)
			}
			defer file.Close()

			grid, err := statement.ReadXLS(file)
			if err != nil {
				return fmt.Errorf("read statement: %w", err)
			}

			result := statement.Import(grid)
			if result.Diagnostic != "" {
				ctx.log.Warn("statement: diagnostic", "detail", result.Diagnostic)
			}
			if len(result.Movements) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no debit movements found")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "found %d debit movements\n", len(result.Movements))
			for _, movement := range result.Movements {
				date := "          "
				if movement.Date != nil {
					date = movement.Date.Format("2006-01-02")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s  %8.2f  %s\n", date, movement.Amount, movement.Concept)
			}
			if result.EndingBalance != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "ending balance: %.2f\n", *result.EndingBalance)
			}

			if dryRun {
				return nil
			}

			payloads := importer.ExpandMovements(result.Movements, ctx.categoryID, ctx.person)
			created, err := ctx.client().CreateExpenses(cmd.Context(), payloads)
			if err != nil {
				// Partial imports are reported, not rolled back.
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
