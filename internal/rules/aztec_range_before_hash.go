package rules

import (
	"fmt"
	"strings"

	"github.com/xab-mack/aztlint/internal/analysis"
	"github.com/xab-mack/aztlint/internal/model"
	"github.com/xab-mack/aztlint/internal/noir"
)

// rangeCheckBits is the width suggested for the missing range assertion.
const rangeCheckBits = 128

var rangeCheckCalls = []string{"assert_max_bits(", "assert_max_bit_size(", "range_check("}

// rangeBeforeHash (AZTEC021) flags tainted values reaching a hash or
// serialization without an intervening range check. Field elements wrap; an
// unchecked preimage component can alias another value.
type rangeBeforeHash struct{}

func (r *rangeBeforeHash) ID() string { return "AZTEC021" }

func (r *rangeBeforeHash) Run(ctx *analysis.RuleContext, out *[]model.Diagnostic) {
	for _, flow := range ctx.Flows {
		if flow.SinkKind != analysis.SinkHashOrSerialize {
			continue
		}
		if rangeCheckedBefore(ctx.Graph(flow.FunctionSymbolID), flow.Variable, flow.SinkSpan.Line) {
			continue
		}
		msg := fmt.Sprintf("value %q (%s) reaches a hash or serialization without a range check", flow.Variable, flow.SourceKind)
		d := ctx.NewDiagnostic(r.ID(), msg, flow.SinkSpan)
		suggestion := fmt.Sprintf("assert_max_bits(%s, %d);", flow.Variable, rangeCheckBits)
		d.Suggestions = append(d.Suggestions, suggestion)
		d.Fixes = append(d.Fixes, model.Fix{
			Description: fmt.Sprintf("range-check %s before hashing", flow.Variable),
			Span:        flow.SinkSpan.Normalized(),
			Replacement: suggestion,
			Safety:      model.FixNeedsReview,
		})
		*out = append(*out, d)
	}
}

// rangeCheckedBefore reports whether a known range-check call names variable
// on a line preceding sinkLine.
func rangeCheckedBefore(g *analysis.FunctionGraph, variable string, sinkLine int) bool {
	if g == nil {
		return false
	}
	for _, line := range g.Lines {
		if line.Span.Line >= sinkLine {
			break
		}
		if !noir.ContainsIdentifier(line.Content, variable) {
			continue
		}
		for _, call := range rangeCheckCalls {
			if strings.Contains(line.Content, call) {
				return true
			}
		}
	}
	return false
}
