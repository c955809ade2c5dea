package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xab-mack/aztlint/internal/config"
	"github.com/xab-mack/aztlint/internal/model"
	"github.com/xab-mack/aztlint/internal/rules"
)

func TestResolveBuiltinProfiles(t *testing.T) {
	cfg := &config.Config{}
	packs := rules.Packs()
	specs := rules.SpecIndex()

	levels, err := Resolve(cfg, "default", packs, specs)
	require.NoError(t, err)
	assert.Equal(t, model.LevelWarn, levels["NOIR001"])
	assert.NotContains(t, levels, "AZTEC010")

	levels, err = Resolve(cfg, "aztec", packs, specs)
	require.NoError(t, err)
	// The aztec profile extends default, so both packs contribute at their
	// catalog default levels.
	assert.Equal(t, model.LevelWarn, levels["NOIR001"])
	assert.Equal(t, model.LevelWarn, levels["AZTEC001"])
	assert.Equal(t, model.LevelDeny, levels["AZTEC010"])
	assert.Equal(t, model.LevelDeny, levels["AZTEC040"])
}

func TestResolveConfigOverridesBuiltin(t *testing.T) {
	cfg := &config.Config{
		Profiles: map[string]config.Profile{
			"aztec": {
				Extends: "default",
				Ruleset: []string{"aztec_pack"},
				Levels:  map[string]string{"AZTEC010": "warn", "NOIR002": "allow"},
			},
		},
	}
	levels, err := Resolve(cfg, "aztec", rules.Packs(), rules.SpecIndex())
	require.NoError(t, err)
	assert.Equal(t, model.LevelWarn, levels["AZTEC010"])
	assert.Equal(t, model.LevelAllow, levels["NOIR002"])
}

func TestResolveChildOverridesParent(t *testing.T) {
	cfg := &config.Config{
		Profiles: map[string]config.Profile{
			"strict": {
				Extends: "aztec",
				Levels:  map[string]string{"AZTEC001": "deny"},
			},
		},
	}
	levels, err := Resolve(cfg, "strict", rules.Packs(), rules.SpecIndex())
	require.NoError(t, err)
	assert.Equal(t, model.LevelDeny, levels["AZTEC001"])
	// Untouched entries keep the parent's values.
	assert.Equal(t, model.LevelWarn, levels["AZTEC002"])
}

func TestResolveProfileNotFound(t *testing.T) {
	_, err := Resolve(&config.Config{}, "nope", rules.Packs(), rules.SpecIndex())
	var nf *ProfileNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "nope", nf.Name)
}

func TestResolveParentNotFound(t *testing.T) {
	cfg := &config.Config{
		Profiles: map[string]config.Profile{
			"child": {Extends: "ghost"},
		},
	}
	_, err := Resolve(cfg, "child", rules.Packs(), rules.SpecIndex())
	var nf *ParentProfileNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "child", nf.Child)
	assert.Equal(t, "ghost", nf.Parent)
}

func TestResolveCycle(t *testing.T) {
	cfg := &config.Config{
		Profiles: map[string]config.Profile{
			"a": {Extends: "b"},
			"b": {Extends: "a"},
		},
	}
	_, err := Resolve(cfg, "a", rules.Packs(), rules.SpecIndex())
	var cyc *ProfileCycleError
	require.ErrorAs(t, err, &cyc)
	assert.Equal(t, "ProfileCycle[a → b → a]", cyc.Error())
}

func TestResolveUnknownRuleset(t *testing.T) {
	cfg := &config.Config{
		Profiles: map[string]config.Profile{
			"p": {Ruleset: []string{"no_such_pack"}},
		},
	}
	_, err := Resolve(cfg, "p", rules.Packs(), rules.SpecIndex())
	var ur *UnknownRulesetError
	require.ErrorAs(t, err, &ur)
	assert.Equal(t, "no_such_pack", ur.Pack)
}

func TestResolveUnknownRuleLevel(t *testing.T) {
	cfg := &config.Config{
		Profiles: map[string]config.Profile{
			"p": {Ruleset: []string{"noir_core"}, Levels: map[string]string{"BOGUS999": "deny"}},
		},
	}
	_, err := Resolve(cfg, "p", rules.Packs(), rules.SpecIndex())
	var ur *UnknownRuleError
	require.ErrorAs(t, err, &ur)
	assert.Equal(t, "BOGUS999", ur.RuleID)
	assert.Equal(t, "p", ur.Scope)
}

func TestApplyCLIOverrides(t *testing.T) {
	specs := rules.SpecIndex()
	levels := map[string]model.Level{"AZTEC001": model.LevelWarn, "AZTEC010": model.LevelDeny}

	err := ApplyCLIOverrides(levels, specs, []string{"AZTEC001"}, nil, []string{"NOIR001"})
	require.NoError(t, err)
	assert.Equal(t, model.LevelAllow, levels["AZTEC001"])
	assert.Equal(t, model.LevelDeny, levels["NOIR001"])
	assert.Equal(t, model.LevelDeny, levels["AZTEC010"])
}

func TestApplyCLIOverridesConflict(t *testing.T) {
	specs := rules.SpecIndex()
	levels := map[string]model.Level{}
	err := ApplyCLIOverrides(levels, specs, []string{"AZTEC001"}, nil, []string{"AZTEC001"})
	var conflict *ConflictingRuleOverrideError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "AZTEC001", conflict.RuleID)
}

func TestApplyCLIOverridesUnknownRule(t *testing.T) {
	err := ApplyCLIOverrides(map[string]model.Level{}, rules.SpecIndex(), nil, []string{"NOPE1"}, nil)
	var ur *UnknownRuleError
	require.ErrorAs(t, err, &ur)
	assert.Equal(t, "cli", ur.Scope)
}
