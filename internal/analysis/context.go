package analysis

import (
	"github.com/xab-mack/aztlint/internal/config"
	"github.com/xab-mack/aztlint/internal/model"
)

// RuleContext carries everything a rule may consult. Aztec and Semantic are
// nil when absent; rules missing their preconditions return without output.
type RuleContext struct {
	Sources  []model.SourceUnit
	Contents map[string]string // path -> text, for text-fallback rules
	Aztec    *model.AztecModel
	Semantic *SemanticModel
	Graphs   []*FunctionGraph
	Flows    []TaintFlow
	Config   *config.AztecConfig

	// Specs indexes the catalog by rule id; Levels is the resolved effective
	// level per rule in scope.
	Specs  map[string]model.LintSpec
	Levels map[string]model.Level
}

// Graph returns the function graph for a symbol id, or nil.
func (c *RuleContext) Graph(fnID string) *FunctionGraph {
	for _, g := range c.Graphs {
		if g.FunctionSymbolID == fnID {
			return g
		}
	}
	return nil
}

// FunctionFlows returns the flows captured inside one function.
func (c *RuleContext) FunctionFlows(fnID string) []TaintFlow {
	var out []TaintFlow
	for _, f := range c.Flows {
		if f.FunctionSymbolID == fnID {
			out = append(out, f)
		}
	}
	return out
}

// NewDiagnostic builds a diagnostic for ruleID at span with severity derived
// from the effective level and confidence/policy auto-filled from the
// catalog entry.
func (c *RuleContext) NewDiagnostic(ruleID, message string, span model.Span) model.Diagnostic {
	spec := c.Specs[ruleID]
	level := spec.DefaultLevel
	if l, ok := c.Levels[ruleID]; ok {
		level = l
	}
	d := model.Diagnostic{
		RuleID:      ruleID,
		Severity:    model.SeverityForLevel(level),
		Confidence:  spec.Confidence,
		Policy:      spec.Policy,
		Message:     message,
		PrimarySpan: span.Normalized(),
	}
	d.Canonicalize()
	return d
}
