package analysis

import (
	"regexp"
	"strings"

	"github.com/xab-mack/aztlint/internal/config"
	"github.com/xab-mack/aztlint/internal/model"
	"github.com/xab-mack/aztlint/internal/noir"
)

// SourceKind classifies where taint enters a function. The numeric order is
// the severity order used to break ties during propagation.
type SourceKind int

const (
	SourceNoteRead SourceKind = iota
	SourceSecretState
	SourcePrivateEntrypointParam
	SourceUnconstrainedCall
)

func (k SourceKind) String() string {
	switch k {
	case SourceNoteRead:
		return "note_read"
	case SourceSecretState:
		return "secret_state"
	case SourcePrivateEntrypointParam:
		return "private_entrypoint_param"
	case SourceUnconstrainedCall:
		return "unconstrained_call"
	}
	return "unknown"
}

type SinkKind string

const (
	SinkPublicOutput       SinkKind = "public_output"
	SinkPublicStorageWrite SinkKind = "public_storage_write"
	SinkEnqueuePublicCall  SinkKind = "enqueue_public_call"
	SinkOracleArgument     SinkKind = "oracle_argument"
	SinkLogEvent           SinkKind = "log_event"
	SinkDebugLog           SinkKind = "debug_log"
	SinkBranchCondition    SinkKind = "branch_condition"
	SinkHashOrSerialize    SinkKind = "hash_or_serialize"
	SinkMerkleWitness      SinkKind = "merkle_witness"
)

// IsEffectful reports whether the sink kind observably leaves the function
// (output, storage, scheduling, oracle or log).
func (k SinkKind) IsEffectful() bool {
	switch k {
	case SinkPublicOutput, SinkPublicStorageWrite, SinkEnqueuePublicCall, SinkOracleArgument, SinkLogEvent:
		return true
	}
	return false
}

// Line is one stripped body line with its span.
type Line struct {
	Content string
	Span    model.Span
}

// Source is a taint entry point bound to a variable.
type Source struct {
	Kind     SourceKind
	Variable string
	Span     model.Span
}

// Sink is a classified program point inside a function body.
type Sink struct {
	Kind   SinkKind
	Span   model.Span
	Line   int // index into FunctionGraph.Lines
	Idents []string
}

// FunctionGraph is the per-function def-use inventory the taint engine and
// the rules consume. Ids are strings throughout: the model is serializable
// and holds no cyclic owning references.
type FunctionGraph struct {
	ContractID          string
	FunctionSymbolID    string
	FunctionName        string
	IsPrivateEntrypoint bool
	Lines               []Line
	Sources             []Source
	Sinks               []Sink
	Defs                map[string]model.Span
	Semantic            *SemanticFunction
}

// HasSink reports whether the graph contains at least one sink of kind.
func (g *FunctionGraph) HasSink(kind SinkKind) bool {
	for _, s := range g.Sinks {
		if s.Kind == kind {
			return true
		}
	}
	return false
}

var (
	letRe      = regexp.MustCompile(`^\s*let\s+(?:mut\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*(?::[^=]*)?=\s*(.*)$`)
	callNameRe = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	hashNames  = map[string]bool{
		"hash": true, "to_be_bytes": true, "to_le_bytes": true,
		"serialize": true, "sha256": true, "blake2s": true,
	}
	merkleIdents = map[string]bool{
		"path": true, "witness": true, "siblings": true, "root": true,
	}
)

func isHashCall(name string) bool {
	if hashNames[name] {
		return true
	}
	return strings.HasPrefix(name, "poseidon") ||
		strings.HasPrefix(name, "pedersen") ||
		strings.HasPrefix(name, "keccak")
}

// SplitLet decomposes `let v = <rhs>` lines; ok is false otherwise.
func SplitLet(line string) (variable, rhs string, ok bool) {
	m := letRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// IsBranchStart reports whether the line begins an if or match.
func IsBranchStart(line string) bool {
	return strings.HasPrefix(line, "if ") || strings.HasPrefix(line, "if(") ||
		strings.HasPrefix(line, "match ") || strings.HasPrefix(line, "match(")
}

// BuildGraphs re-scans the sources with the extracted model and produces one
// FunctionGraph per function body. A semantic model, when supplied, attaches
// its per-function refinement.
func BuildGraphs(units []model.SourceUnit, m *model.AztecModel, sem *SemanticModel, cfg *config.AztecConfig) []*FunctionGraph {
	var out []*FunctionGraph
	for _, unit := range units {
		out = append(out, buildFileGraphs(unit, m, sem, cfg)...)
	}
	return out
}

// UnconstrainedFunctions returns the set of `unconstrained fn` names declared
// in the text.
func UnconstrainedFunctions(text string) map[string]bool {
	set := map[string]bool{}
	for _, raw := range strings.Split(text, "\n") {
		line, _ := noir.StripLine(raw)
		if name, ok := noir.IsUnconstrainedFunctionStart(line); ok {
			set[name] = true
		}
	}
	return set
}

func buildFileGraphs(unit model.SourceUnit, m *model.AztecModel, sem *SemanticModel, cfg *config.AztecConfig) []*FunctionGraph {
	unconstrained := UnconstrainedFunctions(unit.Text)

	var (
		out             []*FunctionGraph
		g               *FunctionGraph
		currentContract string
		offset          int
	)
	flush := func() {
		if g != nil {
			out = append(out, g)
			g = nil
		}
	}

	for i, raw := range strings.Split(unit.Text, "\n") {
		content, indent := noir.StripLine(raw)
		span := model.Span{
			File:  unit.Path,
			Start: offset + indent,
			End:   offset + indent + len(content),
			Line:  i + 1,
			Col:   indent + 1,
		}
		offset += len(raw) + 1
		if content == "" {
			continue
		}

		if name, ok := noir.IsContractStart(content); ok {
			flush()
			currentContract = model.ContractID(unit.Path, name)
			continue
		}
		if name, ok := noir.IsFunctionStart(content); ok {
			flush()
			scope := currentContract
			if scope == "" {
				scope = model.NormalizePath(unit.Path)
			}
			fnID := model.FunctionSymbolID(scope, name)
			g = &FunctionGraph{
				ContractID:          currentContract,
				FunctionSymbolID:    fnID,
				FunctionName:        name,
				IsPrivateEntrypoint: m.HasEntrypointKind(fnID, model.EntrypointPrivate),
				Defs:                map[string]model.Span{},
			}
			if sem != nil {
				g.Semantic = sem.Functions[fnID]
			}
			if g.IsPrivateEntrypoint {
				for _, p := range headerParams(content) {
					g.Sources = append(g.Sources, Source{Kind: SourcePrivateEntrypointParam, Variable: p, Span: span})
					g.Defs[p] = span
				}
			}
			continue
		}
		if g == nil {
			continue
		}

		lineIdx := len(g.Lines)
		g.Lines = append(g.Lines, Line{Content: content, Span: span})
		idents := noir.Identifiers(content)

		if v, rhs, ok := SplitLet(content); ok {
			g.Defs[v] = span
			for _, src := range classifySources(v, rhs, span, g.IsPrivateEntrypoint, unconstrained, cfg) {
				g.Sources = append(g.Sources, src)
			}
		}
		for _, kind := range classifySinks(content, idents, cfg) {
			g.Sinks = append(g.Sinks, Sink{Kind: kind, Span: span, Line: lineIdx, Idents: idents})
		}
	}
	flush()
	return out
}

// headerParams extracts the parameter names of a single-line function header.
func headerParams(header string) []string {
	open := strings.Index(header, "(")
	if open < 0 {
		return nil
	}
	end := strings.Index(header[open:], ")")
	if end < 0 {
		end = len(header) - open
	}
	var out []string
	for _, part := range strings.Split(header[open+1:open+end], ",") {
		name, _, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		name = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "mut "))
		if name != "" && name != "self" && identOnly(name) {
			out = append(out, name)
		}
	}
	return out
}

func identOnly(s string) bool {
	ids := noir.Identifiers(s)
	return len(ids) == 1 && ids[0] == s
}

func classifySources(v, rhs string, span model.Span, private bool, unconstrained map[string]bool, cfg *config.AztecConfig) []Source {
	var out []Source
	if noir.ContainsNoteRead(rhs, cfg) {
		out = append(out, Source{Kind: SourceNoteRead, Variable: v, Span: span})
	}
	if private && strings.Contains(rhs, "storage.") &&
		(strings.Contains(rhs, ".read(") || strings.Contains(rhs, ".get(")) {
		out = append(out, Source{Kind: SourceSecretState, Variable: v, Span: span})
	}
	if callsUnconstrained(rhs, unconstrained) || strings.Contains(rhs, "unconstrained") {
		out = append(out, Source{Kind: SourceUnconstrainedCall, Variable: v, Span: span})
	}
	return out
}

func callsUnconstrained(rhs string, unconstrained map[string]bool) bool {
	for _, m := range callNameRe.FindAllStringSubmatch(rhs, -1) {
		if unconstrained[m[1]] {
			return true
		}
	}
	return false
}

// classifySinks maps a body line to zero or more static sink kinds. Branch
// conditions are dynamic (they depend on the taint state) and are discovered
// during propagation instead.
func classifySinks(content string, idents []string, cfg *config.AztecConfig) []SinkKind {
	var out []SinkKind
	if strings.Contains(content, "debug_log(") {
		out = append(out, SinkDebugLog)
	}
	if strings.Contains(content, "public_log(") || strings.Contains(content, "emit_event(") {
		out = append(out, SinkLogEvent)
	}
	if strings.Contains(content, "emit(") || strings.Contains(content, "return ") {
		out = append(out, SinkPublicOutput)
	}
	if strings.Contains(content, "storage.") && strings.Contains(content, ".write(") {
		out = append(out, SinkPublicStorageWrite)
	}
	if noir.LooksLikeEnqueue(content, cfg) {
		out = append(out, SinkEnqueuePublicCall)
	}
	if strings.Contains(content, "oracle") && strings.Contains(content, "(") {
		out = append(out, SinkOracleArgument)
	}
	for _, m := range callNameRe.FindAllStringSubmatch(content, -1) {
		if isHashCall(m[1]) {
			out = append(out, SinkHashOrSerialize)
			break
		}
	}
	for _, id := range idents {
		if merkleIdents[id] {
			out = append(out, SinkMerkleWitness)
			break
		}
	}
	return out
}
