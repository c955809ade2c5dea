package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const starterConfig = `[files]
include = ["**/*.nr"]
exclude = ["target/**"]

[aztec]
contract_attribute = "aztec"
storage_attribute = "storage"
external_attribute = "external"
imports_prefixes = ["aztec"]
enqueue_fn = "enqueue"

[profile.default]
ruleset = ["noir_core"]

[profile.aztec]
extends = "default"
ruleset = ["aztec_pack"]
`

func newInitCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an aztec-lint.toml in the target directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = "."
			}
			return os.WriteFile(filepath.Join(dir, "aztec-lint.toml"), []byte(starterConfig), 0o644)
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write config file to")
	return cmd
}
