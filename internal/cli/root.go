// Package cli implements the gastos-import command line tool: it parses
// bank statements and supermarket tickets locally and posts the
// resulting expenses to a running API.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"gastos-bcn-go/internal/apiclient"
	"gastos-bcn-go/pkg/logger"
)

type cliContext struct {
	apiURL     string
	categoryID uint
	person     string

	log logger.Logger
}

func (c *cliContext) client() *apiclient.Client {
	return apiclient.New(c.apiURL)
}

func NewRootCommand() *cobra.Command {
	ctx := &cliContext{log: logger.NewFromEnv()}

	root := &cobra.Command{
		Use:   "gastos-import",
		Short: "Import bank statements and supermarket tickets as expenses",
		Long: `gastos-import parses a bank statement (.xls) or a supermarket
ticket (.pdf) locally and bulk-creates the resulting expenses against a
running expense API.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if ctx.apiURL == "" {
				ctx.apiURL = os.Getenv("GASTOS_API_URL")
			}
			if ctx.apiURL == "" {
				ctx.apiURL = "http://localhost:8080"
			}
		},
	}

	root.PersistentFlags().StringVar(&ctx.apiURL, "api-url", "", "base URL of the expense API (defaults to $GASTOS_API_URL)")
	root.PersistentFlags().UintVar(&ctx.categoryID, "category", 0, "category id to assign to imported expenses")
	root.PersistentFlags().StringVar(&ctx.person, "person", "Valen", "person the expenses belong to (Ana or Valen)")

	root.AddCommand(newStatementCommand(ctx))
	root.AddCommand(newReceiptCommand(ctx))
	root.AddCommand(newCategoriesCommand(ctx))

	return root
}
