package model

import (
	"fmt"
	"sort"
	"strings"
)

// SourceUnit is one decoded source file handed to the model builder. The text
// must already be CRLF-normalized by the reader.
type SourceUnit struct {
	Path string
	Text string
}

type EntrypointKind string

const (
	EntrypointPublic      EntrypointKind = "public"
	EntrypointPrivate     EntrypointKind = "private"
	EntrypointInitializer EntrypointKind = "initializer"
	EntrypointOnlySelf    EntrypointKind = "only_self"
	EntrypointUtility     EntrypointKind = "utility"
	EntrypointUnknown     EntrypointKind = "unknown"
)

type Contract struct {
	ContractID string `json:"contract_id"`
	Name       string `json:"name"`
	Span       Span   `json:"span"`
}

// Entrypoint is one (function, kind) classification. A function annotated with
// several attributes appears once per attribute.
type Entrypoint struct {
	ContractID       string         `json:"contract_id"`
	FunctionSymbolID string         `json:"function_symbol_id"`
	Kind             EntrypointKind `json:"kind"`
	Span             Span           `json:"span"`
}

// Site is a semantically interesting location inside a function body: a
// storage struct declaration, note read/write, nullifier emission or public
// sink.
type Site struct {
	ContractID       string `json:"contract_id"`
	FunctionSymbolID string `json:"function_symbol_id"`
	Span             Span   `json:"span"`
}

// EnqueueSite records a private-to-public scheduling call. TargetContractID is
// empty when the target could not be resolved to the enclosing contract.
type EnqueueSite struct {
	SourceContractID       string `json:"source_contract_id"`
	SourceFunctionSymbolID string `json:"source_function_symbol_id"`
	TargetContractID       string `json:"target_contract_id"`
	TargetFunctionName     string `json:"target_function_name"`
	Span                   Span   `json:"span"`
}

// AztecModel is the structured inventory extracted from a project tree. All
// collections are in canonical sort order and deduplicated after Normalize.
type AztecModel struct {
	Contracts      []Contract    `json:"contracts"`
	Entrypoints    []Entrypoint  `json:"entrypoints"`
	StorageStructs []Site        `json:"storage_structs"`
	NoteReadSites  []Site        `json:"note_read_sites"`
	NoteWriteSites []Site        `json:"note_write_sites"`
	NullifierEmits []Site        `json:"nullifier_emit_sites"`
	PublicSinks    []Site        `json:"public_sinks"`
	EnqueueSites   []EnqueueSite `json:"enqueue_sites"`
}

// ContractID synthesizes the canonical contract key.
func ContractID(file, name string) string {
	return fmt.Sprintf("%s::%s", NormalizePath(file), name)
}

// FunctionSymbolID synthesizes the canonical function key inside a contract.
func FunctionSymbolID(contractID, fnName string) string {
	return fmt.Sprintf("%s::fn::%s", contractID, fnName)
}

func spanKey(s Span) string {
	return fmt.Sprintf("%s|%d|%d|%d|%d", NormalizePath(s.File), s.Start, s.End, s.Line, s.Col)
}

// Normalize sorts every collection by a deterministic key and drops exact
// duplicates. It is idempotent and safe to call repeatedly.
func (m *AztecModel) Normalize() {
	m.Contracts = dedupSort(m.Contracts, func(c Contract) string {
		return c.ContractID + "|" + spanKey(c.Span)
	})
	m.Entrypoints = dedupSort(m.Entrypoints, func(e Entrypoint) string {
		return e.ContractID + "|" + e.FunctionSymbolID + "|" + string(e.Kind) + "|" + spanKey(e.Span)
	})
	siteKey := func(s Site) string {
		return s.ContractID + "|" + s.FunctionSymbolID + "|" + spanKey(s.Span)
	}
	m.StorageStructs = dedupSort(m.StorageStructs, siteKey)
	m.NoteReadSites = dedupSort(m.NoteReadSites, siteKey)
	m.NoteWriteSites = dedupSort(m.NoteWriteSites, siteKey)
	m.NullifierEmits = dedupSort(m.NullifierEmits, siteKey)
	m.PublicSinks = dedupSort(m.PublicSinks, siteKey)
	m.EnqueueSites = dedupSort(m.EnqueueSites, func(e EnqueueSite) string {
		return e.SourceContractID + "|" + e.SourceFunctionSymbolID + "|" + e.TargetContractID + "|" + e.TargetFunctionName + "|" + spanKey(e.Span)
	})
}

// Merge appends all collections of other into m. Callers normalize afterwards.
func (m *AztecModel) Merge(other *AztecModel) {
	m.Contracts = append(m.Contracts, other.Contracts...)
	m.Entrypoints = append(m.Entrypoints, other.Entrypoints...)
	m.StorageStructs = append(m.StorageStructs, other.StorageStructs...)
	m.NoteReadSites = append(m.NoteReadSites, other.NoteReadSites...)
	m.NoteWriteSites = append(m.NoteWriteSites, other.NoteWriteSites...)
	m.NullifierEmits = append(m.NullifierEmits, other.NullifierEmits...)
	m.PublicSinks = append(m.PublicSinks, other.PublicSinks...)
	m.EnqueueSites = append(m.EnqueueSites, other.EnqueueSites...)
}

// EntrypointKinds returns the set of kinds a function symbol is classified as.
func (m *AztecModel) EntrypointKinds(functionSymbolID string) map[EntrypointKind]bool {
	kinds := map[EntrypointKind]bool{}
	for _, e := range m.Entrypoints {
		if e.FunctionSymbolID == functionSymbolID {
			kinds[e.Kind] = true
		}
	}
	return kinds
}

// HasEntrypointKind reports whether the function symbol carries the kind.
func (m *AztecModel) HasEntrypointKind(functionSymbolID string, kind EntrypointKind) bool {
	for _, e := range m.Entrypoints {
		if e.FunctionSymbolID == functionSymbolID && e.Kind == kind {
			return true
		}
	}
	return false
}

func dedupSort[T any](in []T, key func(T) string) []T {
	if len(in) == 0 {
		return in
	}
	sort.SliceStable(in, func(i, j int) bool {
		return strings.Compare(key(in[i]), key(in[j])) < 0
	})
	out := in[:1]
	for _, v := range in[1:] {
		if key(v) != key(out[len(out)-1]) {
			out = append(out, v)
		}
	}
	return out
}
