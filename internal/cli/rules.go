package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xab-mack/aztlint/internal/rules"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "rules", Short: "List available rules"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the rule catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, spec := range rules.Catalog() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n",
					spec.ID, spec.Pack, spec.DefaultLevel, spec.Lifecycle, spec.Docs)
			}
			return nil
		},
	})
	return cmd
}
