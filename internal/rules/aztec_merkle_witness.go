package rules

import (
	"fmt"
	"strings"

	"github.com/xab-mack/aztlint/internal/analysis"
	"github.com/xab-mack/aztlint/internal/model"
	"github.com/xab-mack/aztlint/internal/noir"
)

// merkleWitnessUnverified (AZTEC022) flags merkle witness material used
// without membership verification. Verification is recognized through the
// semantic model (assert/constrain reachable from the witness over the DFG),
// a call to a known verifier, or a textual assert naming the witness parts.
type merkleWitnessUnverified struct{}

func (r *merkleWitnessUnverified) ID() string { return "AZTEC022" }

var witnessIdents = []string{"path", "witness", "siblings", "root"}

func (r *merkleWitnessUnverified) Run(ctx *analysis.RuleContext, out *[]model.Diagnostic) {
	for _, g := range ctx.Graphs {
		var witnessSinks []analysis.Sink
		for _, s := range g.Sinks {
			if s.Kind == analysis.SinkMerkleWitness {
				witnessSinks = append(witnessSinks, s)
			}
		}
		if len(witnessSinks) == 0 {
			continue
		}
		if !g.IsPrivateEntrypoint && !witnessTainted(ctx, g) {
			continue
		}
		if functionVerifies(g) {
			continue
		}
		for _, sink := range witnessSinks {
			msg := fmt.Sprintf("merkle witness used without verification in %s", g.FunctionSymbolID)
			*out = append(*out, ctx.NewDiagnostic(r.ID(), msg, sink.Span))
		}
	}
}

func witnessTainted(ctx *analysis.RuleContext, g *analysis.FunctionGraph) bool {
	for _, flow := range ctx.FunctionFlows(g.FunctionSymbolID) {
		if flow.SinkKind == analysis.SinkMerkleWitness {
			return true
		}
	}
	return false
}

func functionVerifies(g *analysis.FunctionGraph) bool {
	if g.Semantic != nil {
		for _, id := range witnessIdents {
			if g.Semantic.VerificationReaches(id) {
				return true
			}
		}
	}
	for _, line := range g.Lines {
		if strings.Contains(line.Content, "verify_merkle") || strings.Contains(line.Content, "check_membership") {
			return true
		}
		if strings.Contains(line.Content, "assert") && mentionsWitness(line.Content) {
			return true
		}
	}
	return false
}

func mentionsWitness(line string) bool {
	for _, id := range noir.Identifiers(line) {
		for _, w := range witnessIdents {
			if id == w {
				return true
			}
		}
	}
	return false
}
