package rules

import (
	"fmt"

	"github.com/xab-mack/aztlint/internal/analysis"
	"github.com/xab-mack/aztlint/internal/model"
)

// onlySelfEnqueue (AZTEC010) checks that a public function enqueued by
// private code of the same contract carries the only_self guard; without it
// anyone can call the public half directly.
type onlySelfEnqueue struct{}

func (r *onlySelfEnqueue) ID() string { return "AZTEC010" }

func (r *onlySelfEnqueue) Run(ctx *analysis.RuleContext, out *[]model.Diagnostic) {
	m := ctx.Aztec
	if m == nil {
		return
	}
	for _, site := range m.EnqueueSites {
		if site.TargetContractID == "" || site.TargetContractID != site.SourceContractID {
			continue
		}
		if !m.HasEntrypointKind(site.SourceFunctionSymbolID, model.EntrypointPrivate) {
			continue
		}
		if site.TargetFunctionName == "" {
			continue
		}
		targetID := model.FunctionSymbolID(site.TargetContractID, site.TargetFunctionName)
		if !m.HasEntrypointKind(targetID, model.EntrypointPublic) {
			continue
		}
		if m.HasEntrypointKind(targetID, model.EntrypointOnlySelf) {
			continue
		}
		msg := fmt.Sprintf("public function %s is enqueued from private code but is not #[only_self]", targetID)
		*out = append(*out, ctx.NewDiagnostic(r.ID(), msg, site.Span))
	}
}
