package rules

import (
	"fmt"
	"strings"

	"github.com/xab-mack/aztlint/internal/analysis"
	"github.com/xab-mack/aztlint/internal/model"
)

// initializerNotOnlySelf (AZTEC040) requires every initializer entrypoint to
// also carry only_self, so deployment is the only caller. Conventional
// constructors are exempt.
type initializerNotOnlySelf struct{}

func (r *initializerNotOnlySelf) ID() string { return "AZTEC040" }

func (r *initializerNotOnlySelf) Run(ctx *analysis.RuleContext, out *[]model.Diagnostic) {
	m := ctx.Aztec
	if m == nil {
		return
	}
	for _, e := range m.Entrypoints {
		if e.Kind != model.EntrypointInitializer {
			continue
		}
		if isConstructorName(functionName(e.FunctionSymbolID)) {
			continue
		}
		if m.HasEntrypointKind(e.FunctionSymbolID, model.EntrypointOnlySelf) {
			continue
		}
		msg := fmt.Sprintf("initializer %s is not #[only_self]", e.FunctionSymbolID)
		*out = append(*out, ctx.NewDiagnostic(r.ID(), msg, e.Span))
	}
}

func functionName(fnID string) string {
	if i := strings.LastIndex(fnID, "::"); i >= 0 {
		return fnID[i+2:]
	}
	return fnID
}

func isConstructorName(name string) bool {
	return name == "constructor" || strings.HasPrefix(name, "constructor_")
}
