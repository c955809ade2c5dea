package rules

import (
	"strings"

	"github.com/xab-mack/aztlint/internal/analysis"
	"github.com/xab-mack/aztlint/internal/model"
	"github.com/xab-mack/aztlint/internal/noir"
)

// printlnLeftover (NOIR002) flags println calls left in source; they are
// dev-time output with no place in deployed circuits.
type printlnLeftover struct{}

func (r *printlnLeftover) ID() string { return "NOIR002" }

func (r *printlnLeftover) Run(ctx *analysis.RuleContext, out *[]model.Diagnostic) {
	for _, unit := range ctx.Sources {
		noir.EachLine(unit, func(content string, span model.Span) {
			if strings.Contains(content, "println(") {
				*out = append(*out, ctx.NewDiagnostic(r.ID(), "println left in code", span))
			}
		})
	}
}
