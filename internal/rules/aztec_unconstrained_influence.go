package rules

import (
	"fmt"
	"strings"

	"github.com/xab-mack/aztlint/internal/analysis"
	"github.com/xab-mack/aztlint/internal/model"
	"github.com/xab-mack/aztlint/internal/noir"
)

// unconstrainedInfluence (AZTEC020) runs its own text scan: locals assigned
// from unconstrained calls must not reach nullifier emission or commitment
// inserts. Unconstrained results are prover-chosen and unsound to commit to
// without a constraint.
type unconstrainedInfluence struct{}

func (r *unconstrainedInfluence) ID() string { return "AZTEC020" }

func (r *unconstrainedInfluence) Run(ctx *analysis.RuleContext, out *[]model.Diagnostic) {
	if ctx.Aztec == nil {
		return
	}
	effectful := map[string]bool{}
	for _, site := range ctx.Aztec.NullifierEmits {
		effectful[site.FunctionSymbolID] = true
	}
	for _, site := range ctx.Aztec.NoteWriteSites {
		effectful[site.FunctionSymbolID] = true
	}

	byFile := map[string]map[string]bool{}
	for _, g := range ctx.Graphs {
		if !effectful[g.FunctionSymbolID] {
			continue
		}
		file := fileOf(g)
		unconstrained, ok := byFile[file]
		if !ok {
			unconstrained = analysis.UnconstrainedFunctions(ctx.Contents[file])
			byFile[file] = unconstrained
		}
		r.scan(ctx, g, unconstrained, out)
	}
}

func fileOf(g *analysis.FunctionGraph) string {
	if len(g.Lines) > 0 {
		return g.Lines[0].Span.File
	}
	return ""
}

func (r *unconstrainedInfluence) scan(ctx *analysis.RuleContext, g *analysis.FunctionGraph, unconstrained map[string]bool, out *[]model.Diagnostic) {
	tainted := map[string]bool{}
	for _, line := range g.Lines {
		if v, rhs, ok := analysis.SplitLet(line.Content); ok {
			if referencesUnconstrained(rhs, unconstrained) || anyIdentIn(rhs, tainted) {
				tainted[v] = true
			}
		}
		if !strings.Contains(line.Content, "emit_nullifier(") &&
			!strings.Contains(line.Content, "nullify(") &&
			!strings.Contains(line.Content, ".insert(") {
			continue
		}
		for _, id := range noir.Identifiers(line.Content) {
			if !tainted[id] {
				continue
			}
			msg := fmt.Sprintf("unconstrained value %q influences a nullifier or commitment in %s", id, g.FunctionSymbolID)
			*out = append(*out, ctx.NewDiagnostic(r.ID(), msg, line.Span))
			break
		}
	}
}

func referencesUnconstrained(rhs string, unconstrained map[string]bool) bool {
	if strings.Contains(rhs, "unconstrained") {
		return true
	}
	for _, id := range noir.Identifiers(rhs) {
		if unconstrained[id] && strings.Contains(rhs, id+"(") {
			return true
		}
	}
	return false
}

func anyIdentIn(line string, set map[string]bool) bool {
	for _, id := range noir.Identifiers(line) {
		if set[id] {
			return true
		}
	}
	return false
}
