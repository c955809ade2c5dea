package rules

import (
	"github.com/xab-mack/aztlint/internal/analysis"
	"github.com/xab-mack/aztlint/internal/model"
)

// Rule is the minimal capability every lint implements. Run never fails:
// missing inputs (no Aztec model, no semantic model) produce zero
// diagnostics.
type Rule interface {
	ID() string
	Run(ctx *analysis.RuleContext, out *[]model.Diagnostic)
}

type Registry struct {
	rules []Rule
}

func NewRegistry() *Registry { return &Registry{} }

func (r *Registry) Register(rule Rule) { r.rules = append(r.rules, rule) }

// RegisterBuiltin installs the built-in rules in catalog order.
func (r *Registry) RegisterBuiltin() {
	r.Register(&constantAssert{})
	r.Register(&printlnLeftover{})
	r.Register(&privacyLeak{})
	r.Register(&secretBranching{})
	r.Register(&privateDebugLog{})
	r.Register(&onlySelfEnqueue{})
	r.Register(&unconstrainedInfluence{})
	r.Register(&rangeBeforeHash{})
	r.Register(&merkleWitnessUnverified{})
	r.Register(&initializerNotOnlySelf{})
}

// Rules returns the registered rules in registration (catalog) order.
func (r *Registry) Rules() []Rule { return r.rules }

// Run evaluates every registered rule whose effective level is not allow and
// returns the raw diagnostics in catalog order. Post-processing (suppression,
// fingerprints, sorting) belongs to the engine.
func (r *Registry) Run(ctx *analysis.RuleContext) []model.Diagnostic {
	var out []model.Diagnostic
	for _, rule := range r.rules {
		if lvl, ok := ctx.Levels[rule.ID()]; !ok || lvl == model.LevelAllow {
			continue
		}
		rule.Run(ctx, &out)
	}
	return out
}
