package app

import (
	"github.com/spf13/cobra"

	"github.com/xab-mack/aztlint/internal/cli"
)

func BuildRoot() *cobra.Command {
	root := &cobra.Command{Use: "aztlint", Short: "Static-analysis linter for Aztec/Noir contracts"}
	cli.AddCommands(root)
	return root
}
