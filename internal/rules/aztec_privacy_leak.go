package rules

import (
	"fmt"

	"github.com/xab-mack/aztlint/internal/analysis"
	"github.com/xab-mack/aztlint/internal/model"
)

// privacyLeak (AZTEC001) flags every public sink in a function that also
// reads private notes. Deliberately coarse: co-occurrence in the same
// function, no flow analysis. The taint-backed rules refine this.
type privacyLeak struct{}

func (r *privacyLeak) ID() string { return "AZTEC001" }

func (r *privacyLeak) Run(ctx *analysis.RuleContext, out *[]model.Diagnostic) {
	if ctx.Aztec == nil {
		return
	}
	readers := map[string]bool{}
	for _, site := range ctx.Aztec.NoteReadSites {
		readers[site.FunctionSymbolID] = true
	}
	for _, sink := range ctx.Aztec.PublicSinks {
		if !readers[sink.FunctionSymbolID] {
			continue
		}
		msg := fmt.Sprintf("function %s reads private notes and writes to a public sink", sink.FunctionSymbolID)
		*out = append(*out, ctx.NewDiagnostic(r.ID(), msg, sink.Span))
	}
}
