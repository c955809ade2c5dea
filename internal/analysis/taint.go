package analysis

import (
	"sort"

	"github.com/xab-mack/aztlint/internal/model"
	"github.com/xab-mack/aztlint/internal/noir"
)

// TaintFlow is one propagated source→sink pair inside a single function.
type TaintFlow struct {
	FunctionSymbolID string
	Variable         string
	SourceKind       SourceKind
	SourceSpan       model.Span
	SinkKind         SinkKind
	SinkSpan         model.Span
}

type taintInfo struct {
	kind   SourceKind
	origin model.Span
}

// prefer picks the dominating taint of two contributors: the higher source
// kind wins, equal kinds fall back to the earliest origin span.
func prefer(a, b taintInfo) taintInfo {
	if a.kind != b.kind {
		if a.kind > b.kind {
			return a
		}
		return b
	}
	if b.origin.Compare(a.origin) < 0 {
		return b
	}
	return a
}

// Propagate runs the forward intra-procedural dataflow of one function:
// activate sources at their definition, transfer taint through let-bindings,
// capture flows at sinks. Branch-condition sinks are discovered here because
// they depend on the taint state. The graph is not mutated; calling Propagate
// again yields the same flows.
func Propagate(g *FunctionGraph) []TaintFlow {
	tainted := map[string]taintInfo{}
	activate := func(src Source) {
		info := taintInfo{kind: src.Kind, origin: src.Span}
		if cur, ok := tainted[src.Variable]; ok {
			info = prefer(cur, info)
		}
		tainted[src.Variable] = info
	}

	// A source becomes live at its defining line; parameter sources sit on
	// the header before the first body line and are live from entry. Sinks
	// before a source's definition never see its taint.
	sourcesAt := map[int][]Source{}
	for _, src := range g.Sources {
		if len(g.Lines) == 0 || src.Span.Line < g.Lines[0].Span.Line {
			activate(src)
			continue
		}
		sourcesAt[src.Span.Line] = append(sourcesAt[src.Span.Line], src)
	}

	staticSinks := map[int][]Sink{}
	for _, s := range g.Sinks {
		staticSinks[s.Line] = append(staticSinks[s.Line], s)
	}

	var flows []TaintFlow
	capture := func(sink Sink, line string) {
		for _, id := range uniqueIdents(line) {
			info, ok := tainted[id]
			if !ok {
				continue
			}
			flows = append(flows, TaintFlow{
				FunctionSymbolID: g.FunctionSymbolID,
				Variable:         id,
				SourceKind:       info.kind,
				SourceSpan:       info.origin,
				SinkKind:         sink.Kind,
				SinkSpan:         sink.Span,
			})
		}
	}

	for i, line := range g.Lines {
		// Sinks see the taint state before this line's own binding takes
		// effect, so `let h = hash(n)` reports n, not h.
		if IsBranchStart(line.Content) && anyTainted(line.Content, tainted) {
			sink := Sink{Kind: SinkBranchCondition, Span: line.Span, Line: i, Idents: noir.Identifiers(line.Content)}
			capture(sink, line.Content)
		}
		for _, sink := range staticSinks[i] {
			capture(sink, line.Content)
		}

		if v, rhs, ok := SplitLet(line.Content); ok {
			var best *taintInfo
			for _, id := range uniqueIdents(rhs) {
				if info, ok := tainted[id]; ok {
					if best == nil {
						cp := info
						best = &cp
					} else {
						cp := prefer(*best, info)
						best = &cp
					}
				}
			}
			if best != nil {
				tainted[v] = *best
			} else {
				// A rebinding with no tainted contributor kills prior taint.
				delete(tainted, v)
			}
		}
		for _, src := range sourcesAt[line.Span.Line] {
			activate(src)
		}
	}

	sort.SliceStable(flows, func(a, b int) bool {
		fa, fb := flows[a], flows[b]
		if fa.FunctionSymbolID != fb.FunctionSymbolID {
			return fa.FunctionSymbolID < fb.FunctionSymbolID
		}
		if c := fa.SinkSpan.Compare(fb.SinkSpan); c != 0 {
			return c < 0
		}
		return fa.Variable < fb.Variable
	})
	return flows
}

// PropagateAll runs Propagate over every graph, keeping graph order.
func PropagateAll(graphs []*FunctionGraph) []TaintFlow {
	var flows []TaintFlow
	for _, g := range graphs {
		flows = append(flows, Propagate(g)...)
	}
	return flows
}

func anyTainted(line string, tainted map[string]taintInfo) bool {
	for _, id := range noir.Identifiers(line) {
		if _, ok := tainted[id]; ok {
			return true
		}
	}
	return false
}

// uniqueIdents returns the line's identifiers with duplicates removed, first
// occurrence order preserved.
func uniqueIdents(line string) []string {
	seen := map[string]bool{}
	var out []string
	for _, id := range noir.Identifiers(line) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// TaintReaches reports whether any taint flow of g ends at a sink whose line
// mentions ident. Used by the merkle rule to decide strictness.
func TaintReaches(flows []TaintFlow, fnID, ident string) bool {
	for _, f := range flows {
		if f.FunctionSymbolID == fnID && f.Variable == ident {
			return true
		}
	}
	return false
}
