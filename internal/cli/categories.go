package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoriesCommand(ctx *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories available on the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := ctx.client().ListCategories(cmd.Context())
			if err != nil {
				return err
			}

			if len(categories) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no categories defined")
				return nil
			}
			for _, category := range categories {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-30s %s\n", category.ID, category.Name, category.Color)
			}
			return nil
		},
	}
}
