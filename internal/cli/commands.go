package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xab-mack/aztlint/internal/engine"
	"github.com/xab-mack/aztlint/internal/model"
	"github.com/xab-mack/aztlint/internal/report"
	"github.com/xab-mack/aztlint/internal/tui"
)

func AddCommands(root *cobra.Command) {
	root.AddCommand(newScanCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newRulesCmd())
}

func newScanCmd() *cobra.Command {
	var (
		profileName   string
		format        string
		outputFile    string
		allow         []string
		warn          []string
		deny          []string
		baseline      string
		writeBaseline string
		semanticModel string
		useTUI        bool
	)
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Analyze a Noir project and report diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			eng := engine.New()
			result, err := eng.Run(cmd.Context(), engine.Request{
				Path:              path,
				Profile:           profileName,
				Allow:             allow,
				Warn:              warn,
				Deny:              deny,
				BaselinePath:      baseline,
				SemanticModelPath: semanticModel,
			})
			if err != nil {
				return err
			}

			if writeBaseline != "" {
				if err := engine.WriteBaseline(writeBaseline, result.Diagnostics); err != nil {
					return err
				}
			}
			if useTUI {
				return tui.Run(result.Diagnostics)
			}

			var data []byte
			switch format {
			case "json":
				data, err = report.RenderJSON(result.Diagnostics)
			case "sarif":
				data, err = report.ToSARIF(result.Diagnostics)
			default:
				report.WriteText(cmd.OutOrStdout(), result.Diagnostics, readContents(result.Diagnostics))
				return exitStatus(result.Diagnostics)
			}
			if err != nil {
				return err
			}
			if outputFile != "" {
				if err := os.WriteFile(outputFile, data, 0o644); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			}
			return exitStatus(result.Diagnostics)
		},
	}
	cmd.Flags().StringVar(&profileName, "profile", "", "Profile to resolve rule levels from (default: aztec when Aztec sources are detected)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text|json|sarif")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write report to file instead of stdout")
	cmd.Flags().StringSliceVar(&allow, "allow", nil, "Rule ids to allow (repeatable)")
	cmd.Flags().StringSliceVar(&warn, "warn", nil, "Rule ids to warn on (repeatable)")
	cmd.Flags().StringSliceVar(&deny, "deny", nil, "Rule ids to deny (repeatable)")
	cmd.Flags().StringVar(&baseline, "baseline", "", "Filter diagnostics already present in this baseline file")
	cmd.Flags().StringVar(&writeBaseline, "write-baseline", "", "Write a baseline file with diagnostic fingerprints")
	cmd.Flags().StringVar(&semanticModel, "semantic-model", "", "Inject a compiler-produced semantic model (JSON)")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Render interactive TUI output")
	return cmd
}

// readContents loads the files diagnostics point at, for snippet rendering.
func readContents(diags []model.Diagnostic) map[string]string {
	out := map[string]string{}
	for _, d := range diags {
		file := d.PrimarySpan.File
		if _, ok := out[file]; ok {
			continue
		}
		if b, err := os.ReadFile(filepath.FromSlash(file)); err == nil {
			out[file] = strings.ReplaceAll(string(b), "\r\n", "\n")
		}
	}
	return out
}

func exitStatus(diags []model.Diagnostic) error {
	for _, d := range diags {
		if !d.Suppressed && d.Severity == model.SeverityError {
			return fmt.Errorf("denied diagnostics present")
		}
	}
	return nil
}
