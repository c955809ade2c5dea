package rules

import (
	"fmt"

	"github.com/xab-mack/aztlint/internal/analysis"
	"github.com/xab-mack/aztlint/internal/model"
)

// secretBranching (AZTEC002) flags branch conditions fed by secret values in
// functions that also have an observable effect, through which the branch
// outcome leaks.
type secretBranching struct{}

func (r *secretBranching) ID() string { return "AZTEC002" }

func isSecretSource(k analysis.SourceKind) bool {
	switch k {
	case analysis.SourceNoteRead, analysis.SourceSecretState, analysis.SourcePrivateEntrypointParam:
		return true
	}
	return false
}

func (r *secretBranching) Run(ctx *analysis.RuleContext, out *[]model.Diagnostic) {
	for _, flow := range ctx.Flows {
		if flow.SinkKind != analysis.SinkBranchCondition || !isSecretSource(flow.SourceKind) {
			continue
		}
		g := ctx.Graph(flow.FunctionSymbolID)
		if g == nil || !hasEffectfulSink(g) {
			continue
		}
		msg := fmt.Sprintf("branch condition depends on secret value %q (%s)", flow.Variable, flow.SourceKind)
		d := ctx.NewDiagnostic(r.ID(), msg, flow.SinkSpan)
		d.SecondarySpans = append(d.SecondarySpans, flow.SourceSpan.Normalized())
		*out = append(*out, d)
	}
}

func hasEffectfulSink(g *analysis.FunctionGraph) bool {
	for _, s := range g.Sinks {
		if s.Kind.IsEffectful() {
			return true
		}
	}
	return false
}
