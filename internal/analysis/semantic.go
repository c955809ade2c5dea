package analysis

import (
	"encoding/json"
	"os"
)

// StatementCategory classifies statements of the injected semantic model.
type StatementCategory string

const (
	StatementAssert     StatementCategory = "assert"
	StatementConstrain  StatementCategory = "constrain"
	StatementCall       StatementCategory = "call"
	StatementAssignment StatementCategory = "assignment"
	StatementOther      StatementCategory = "other"
)

// IsVerification reports whether the category constrains values.
func (c StatementCategory) IsVerification() bool {
	return c == StatementAssert || c == StatementConstrain
}

type CallSite struct {
	Callee string `json:"callee"`
	Line   int    `json:"line"`
}

type Statement struct {
	Category StatementCategory `json:"category"`
	Line     int               `json:"line"`
	Idents   []string          `json:"idents"`
}

type DFGEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type CFGBlock struct {
	ID        int   `json:"id"`
	StartLine int   `json:"start_line"`
	EndLine   int   `json:"end_line"`
	Succs     []int `json:"succs"`
}

// SemanticFunction is the per-function slice of a compiler-produced model.
type SemanticFunction struct {
	CallSites  []CallSite  `json:"call_sites"`
	Statements []Statement `json:"statements"`
	GuardNodes []string    `json:"guard_nodes"`
	DFGEdges   []DFGEdge   `json:"dfg_edges"`
	CFGBlocks  []CFGBlock  `json:"cfg_blocks"`
}

// SemanticModel is an optional, richer CFG/DFG view injected by a compiler
// frontend. A nil *SemanticModel means absent; rules fall back to text
// heuristics.
type SemanticModel struct {
	Functions map[string]*SemanticFunction `json:"functions"`
}

// LoadSemanticModel reads a semantic model from a JSON file.
func LoadSemanticModel(path string) (*SemanticModel, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m SemanticModel
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// VerificationReaches reports whether any assert/constrain statement is
// reachable from ident over the DFG edges (ident itself counts when it is
// named by a verification statement).
func (f *SemanticFunction) VerificationReaches(ident string) bool {
	if f == nil {
		return false
	}
	adj := map[string][]string{}
	for _, e := range f.DFGEdges {
		adj[e.From] = append(adj[e.From], e.To)
	}
	verified := map[string]bool{}
	for _, st := range f.Statements {
		if !st.Category.IsVerification() {
			continue
		}
		for _, id := range st.Idents {
			verified[id] = true
		}
	}
	seen := map[string]bool{}
	stack := []string{ident}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		if verified[cur] {
			return true
		}
		stack = append(stack, adj[cur]...)
	}
	return false
}
