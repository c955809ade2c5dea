package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/xab-mack/aztlint/internal/model"
	"github.com/xab-mack/aztlint/internal/util"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	dimColor  = color.New(color.Faint)
)

// WriteText renders a human-readable report. contents maps normalized file
// paths to their text for snippet context; it may be nil.
func WriteText(w io.Writer, diags []model.Diagnostic, contents map[string]string) {
	counts := map[model.Severity]int{}
	for _, d := range diags {
		if d.Suppressed {
			reason := ""
			if d.SuppressionReason != nil {
				reason = *d.SuppressionReason
			}
			dimColor.Fprintf(w, "%s:%d:%d: suppressed[%s] %s (%s)\n",
				d.PrimarySpan.File, d.PrimarySpan.Line, d.PrimarySpan.Col, d.RuleID, d.Message, reason)
			continue
		}
		counts[d.Severity]++
		c := warnColor
		if d.Severity == model.SeverityError {
			c = errColor
		}
		fmt.Fprintf(w, "%s:%d:%d: ", d.PrimarySpan.File, d.PrimarySpan.Line, d.PrimarySpan.Col)
		c.Fprintf(w, "%s[%s]", d.Severity, d.RuleID)
		fmt.Fprintf(w, " %s\n", d.Message)
		if text, ok := contents[d.PrimarySpan.File]; ok {
			snippet := util.ExtractSnippet(text, d.PrimarySpan.Line, d.PrimarySpan.Line, 2)
			if snippet != "" {
				dimColor.Fprintf(w, "    %s\n", snippet)
			}
		}
		for _, s := range d.Suggestions {
			fmt.Fprintf(w, "    suggestion: %s\n", s)
		}
	}
	fmt.Fprintf(w, "%d errors, %d warnings\n", counts[model.SeverityError], counts[model.SeverityWarning])
}
