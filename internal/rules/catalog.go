package rules

import "github.com/xab-mack/aztlint/internal/model"

const (
	PackNoirCore  = "noir_core"
	PackAztecPack = "aztec_pack"
)

// catalog is the process-wide immutable rule catalog, in evaluation order.
var catalog = []model.LintSpec{
	{ID: "NOIR001", Pack: PackNoirCore, Policy: "quality", Category: "correctness",
		DefaultLevel: model.LevelWarn, Confidence: model.ConfidenceHigh,
		Lifecycle: model.LifecycleActive, Docs: "assert with a constant condition constrains nothing"},
	{ID: "NOIR002", Pack: PackNoirCore, Policy: "quality", Category: "hygiene",
		DefaultLevel: model.LevelWarn, Confidence: model.ConfidenceMedium,
		Lifecycle: model.LifecycleActive, Docs: "println left in contract code"},
	{ID: "AZTEC001", Pack: PackAztecPack, Policy: "privacy", Category: "leak",
		DefaultLevel: model.LevelWarn, Confidence: model.ConfidenceMedium,
		Lifecycle: model.LifecycleActive, Docs: "public sink in a function that reads private notes"},
	{ID: "AZTEC002", Pack: PackAztecPack, Policy: "privacy", Category: "leak",
		DefaultLevel: model.LevelWarn, Confidence: model.ConfidenceMedium,
		Lifecycle: model.LifecycleActive, Docs: "branching on secret values observable through public effects"},
	{ID: "AZTEC003", Pack: PackAztecPack, Policy: "privacy", Category: "leak",
		DefaultLevel: model.LevelWarn, Confidence: model.ConfidenceHigh,
		Lifecycle: model.LifecycleActive, Docs: "debug logging inside a private entrypoint"},
	{ID: "AZTEC010", Pack: PackAztecPack, Policy: "protocol", Category: "access",
		DefaultLevel: model.LevelDeny, Confidence: model.ConfidenceHigh,
		Lifecycle: model.LifecycleActive, Docs: "same-contract enqueue target lacks only_self"},
	{ID: "AZTEC020", Pack: PackAztecPack, Policy: "soundness", Category: "constraint",
		DefaultLevel: model.LevelDeny, Confidence: model.ConfidenceMedium,
		Lifecycle: model.LifecycleActive, Docs: "unconstrained value influences nullifier or commitment"},
	{ID: "AZTEC021", Pack: PackAztecPack, Policy: "soundness", Category: "constraint",
		DefaultLevel: model.LevelWarn, Confidence: model.ConfidenceMedium,
		Lifecycle: model.LifecycleActive, Docs: "tainted value hashed or serialized without a range check"},
	{ID: "AZTEC022", Pack: PackAztecPack, Policy: "soundness", Category: "constraint",
		DefaultLevel: model.LevelDeny, Confidence: model.ConfidenceMedium,
		Lifecycle: model.LifecycleActive, Docs: "merkle witness used without membership verification"},
	{ID: "AZTEC040", Pack: PackAztecPack, Policy: "protocol", Category: "access",
		DefaultLevel: model.LevelDeny, Confidence: model.ConfidenceHigh,
		Lifecycle: model.LifecycleActive, Docs: "initializer entrypoint callable by anyone"},
}

// Catalog returns the catalog entries in evaluation order.
func Catalog() []model.LintSpec {
	out := make([]model.LintSpec, len(catalog))
	copy(out, catalog)
	return out
}

// SpecIndex returns the catalog keyed by rule id.
func SpecIndex() map[string]model.LintSpec {
	idx := make(map[string]model.LintSpec, len(catalog))
	for _, spec := range catalog {
		idx[spec.ID] = spec
	}
	return idx
}

// Packs returns the named rule packs, each listing its rule ids in catalog
// order.
func Packs() map[string][]string {
	packs := map[string][]string{}
	for _, spec := range catalog {
		packs[spec.Pack] = append(packs[spec.Pack], spec.ID)
	}
	return packs
}
