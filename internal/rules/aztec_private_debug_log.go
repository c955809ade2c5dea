package rules

import (
	"fmt"

	"github.com/xab-mack/aztlint/internal/analysis"
	"github.com/xab-mack/aztlint/internal/model"
)

// privateDebugLog (AZTEC003) flags every debug_log call inside a private
// entrypoint. Debug output escapes the private execution environment.
type privateDebugLog struct{}

func (r *privateDebugLog) ID() string { return "AZTEC003" }

func (r *privateDebugLog) Run(ctx *analysis.RuleContext, out *[]model.Diagnostic) {
	for _, g := range ctx.Graphs {
		if !g.IsPrivateEntrypoint {
			continue
		}
		for _, sink := range g.Sinks {
			if sink.Kind != analysis.SinkDebugLog {
				continue
			}
			msg := fmt.Sprintf("debug_log in private entrypoint %s", g.FunctionSymbolID)
			*out = append(*out, ctx.NewDiagnostic(r.ID(), msg, sink.Span))
		}
	}
}
