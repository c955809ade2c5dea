package noir

import (
	"encoding/json"
	"strings"

	"github.com/xab-mack/aztlint/internal/cache"
	"github.com/xab-mack/aztlint/internal/config"
	"github.com/xab-mack/aztlint/internal/model"
)

// BuildModel runs the extractor over every source unit and returns the merged,
// normalized Aztec model.
func BuildModel(units []model.SourceUnit, cfg *config.AztecConfig) *model.AztecModel {
	merged := &model.AztecModel{}
	for _, unit := range units {
		merged.Merge(BuildFileModel(unit, cfg))
	}
	merged.Normalize()
	return merged
}

// BuildFileModel extracts the partial model of a single file. Results are
// cached by file content, so unchanged files skip the scan on repeat runs.
func BuildFileModel(unit model.SourceUnit, cfg *config.AztecConfig) *model.AztecModel {
	key := cache.Key("aztec-model-v1", unit.Path, unit.Text)
	if b, ok := cache.Load(key); ok {
		var m model.AztecModel
		if err := json.Unmarshal(b, &m); err == nil {
			return &m
		}
	}
	m := scanFile(unit, cfg)
	if data, err := json.Marshal(m); err == nil {
		_ = cache.Store(key, data)
	}
	return m
}

// scanFile is the single-pass state machine of the extractor: it tracks the
// enclosing contract, the enclosing function and the attribute lines pending
// for the next item.
func scanFile(unit model.SourceUnit, cfg *config.AztecConfig) *model.AztecModel {
	m := &model.AztecModel{}
	var (
		currentContract string
		currentFn       string
		pending         []string
		offset          int
	)

	for i, raw := range strings.Split(unit.Text, "\n") {
		content, indent := StripLine(raw)
		span := model.Span{
			File:  unit.Path,
			Start: offset + indent,
			End:   offset + indent + len(content),
			Line:  i + 1,
			Col:   indent + 1,
		}
		offset += len(raw) + 1

		if content == "" {
			pending = nil
			continue
		}

		if name, ok := IsContractStart(content); ok {
			currentContract = model.ContractID(unit.Path, name)
			currentFn = ""
			m.Contracts = append(m.Contracts, model.Contract{
				ContractID: currentContract, Name: name, Span: span,
			})
			pending = nil
			continue
		}

		if isStorage(content, pending, cfg) {
			if currentContract != "" {
				m.StorageStructs = append(m.StorageStructs, model.Site{
					ContractID: currentContract, Span: span,
				})
			}
			pending = nil
			continue
		}

		if name, ok := IsFunctionStart(content); ok {
			scope := currentContract
			if scope == "" {
				scope = model.NormalizePath(unit.Path)
			}
			currentFn = model.FunctionSymbolID(scope, name)
			if currentContract != "" {
				m.Entrypoints = append(m.Entrypoints, classify(currentContract, currentFn, span, append(pending, content), cfg)...)
			}
			pending = nil
			continue
		}

		if strings.HasPrefix(content, "#[") {
			pending = append(pending, content)
			continue
		}
		pending = nil

		if currentFn == "" {
			continue
		}
		site := model.Site{ContractID: currentContract, FunctionSymbolID: currentFn, Span: span}
		if ContainsNoteRead(content, cfg) {
			m.NoteReadSites = append(m.NoteReadSites, site)
		}
		if ContainsNoteWrite(content) {
			m.NoteWriteSites = append(m.NoteWriteSites, site)
		}
		if ContainsNullifierEmit(content, cfg) {
			m.NullifierEmits = append(m.NullifierEmits, site)
		}
		if ContainsPublicSink(content) {
			m.PublicSinks = append(m.PublicSinks, site)
		}
		if LooksLikeEnqueue(content, cfg) {
			target := ""
			if IsSameContractEnqueue(content) {
				target = currentContract
			}
			m.EnqueueSites = append(m.EnqueueSites, model.EnqueueSite{
				SourceContractID:       currentContract,
				SourceFunctionSymbolID: currentFn,
				TargetContractID:       target,
				TargetFunctionName:     ExtractEnqueueTarget(content),
				Span:                   span,
			})
		}
	}
	return m
}

func isStorage(content string, pending []string, cfg *config.AztecConfig) bool {
	if _, ok := IsStorageStruct(content, cfg); ok {
		return true
	}
	if _, ok := IsStructStart(content); !ok {
		return false
	}
	for _, attr := range pending {
		if HasAttribute(attr, cfg.StorageAttribute) {
			return true
		}
	}
	return false
}

// classify turns the attribute lines preceding (and on) a function header
// into entrypoint entries. Every classifying attribute yields its own entry;
// an unclassified function inside a contract is a utility.
func classify(contractID, fnID string, span model.Span, attrLines []string, cfg *config.AztecConfig) []model.Entrypoint {
	entry := func(kind model.EntrypointKind) model.Entrypoint {
		return model.Entrypoint{ContractID: contractID, FunctionSymbolID: fnID, Kind: kind, Span: span}
	}
	var out []model.Entrypoint
	has := func(pred func(string) bool) bool {
		for _, l := range attrLines {
			if pred(l) {
				return true
			}
		}
		return false
	}
	if has(func(l string) bool { return HasAttribute(l, "initializer") }) {
		out = append(out, entry(model.EntrypointInitializer))
	}
	if has(func(l string) bool { return HasAttribute(l, "only_self") }) {
		out = append(out, entry(model.EntrypointOnlySelf))
	}
	if has(func(l string) bool { return HasExternalKind(l, "private", cfg) }) {
		out = append(out, entry(model.EntrypointPrivate))
	}
	if has(func(l string) bool { return HasExternalKind(l, "public", cfg) }) {
		out = append(out, entry(model.EntrypointPublic))
	}
	if len(out) == 0 {
		out = append(out, entry(model.EntrypointUtility))
	}
	return out
}
