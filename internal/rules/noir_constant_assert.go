package rules

import (
	"strings"

	"github.com/xab-mack/aztlint/internal/analysis"
	"github.com/xab-mack/aztlint/internal/model"
	"github.com/xab-mack/aztlint/internal/noir"
)

// constantAssert (NOIR001) flags asserts over constant conditions: they
// either constrain nothing or make the circuit unsatisfiable.
type constantAssert struct{}

func (r *constantAssert) ID() string { return "NOIR001" }

func (r *constantAssert) Run(ctx *analysis.RuleContext, out *[]model.Diagnostic) {
	for _, unit := range ctx.Sources {
		noir.EachLine(unit, func(content string, span model.Span) {
			if strings.Contains(content, "assert(true)") || strings.Contains(content, "assert(false)") {
				*out = append(*out, ctx.NewDiagnostic(r.ID(), "assert with a constant condition", span))
			}
		})
	}
}
