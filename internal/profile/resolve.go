package profile

import (
	"fmt"

	"github.com/xab-mack/aztlint/internal/config"
	"github.com/xab-mack/aztlint/internal/model"
)

// builtin returns the profiles available when the config defines none of its
// own. A config profile with the same name replaces the builtin.
func builtin() map[string]config.Profile {
	return map[string]config.Profile{
		"default": {Ruleset: []string{"noir_core"}},
		"aztec":   {Extends: "default", Ruleset: []string{"aztec_pack"}},
	}
}

// Resolve computes the effective rule-level map of profile name: the union of
// the extends chain's rulesets at catalog default levels, with explicit level
// overrides applied child-over-parent.
func Resolve(cfg *config.Config, name string, packs map[string][]string, specs map[string]model.LintSpec) (map[string]model.Level, error) {
	profiles := builtin()
	for k, v := range cfg.Profiles {
		profiles[k] = v
	}

	chain, err := extendsChain(profiles, name)
	if err != nil {
		return nil, err
	}

	levels := map[string]model.Level{}
	// Walk root-most first so children override parents.
	for i := len(chain) - 1; i >= 0; i-- {
		p := profiles[chain[i]]
		for _, pack := range p.Ruleset {
			ids, ok := packs[pack]
			if !ok {
				return nil, &UnknownRulesetError{Profile: chain[i], Pack: pack}
			}
			for _, id := range ids {
				levels[id] = specs[id].DefaultLevel
			}
		}
		for id, lvl := range p.Levels {
			if _, ok := specs[id]; !ok {
				return nil, &UnknownRuleError{Scope: chain[i], RuleID: id}
			}
			parsed, err := parseLevel(lvl)
			if err != nil {
				return nil, fmt.Errorf("profile %s: %w", chain[i], err)
			}
			levels[id] = parsed
		}
	}
	return levels, nil
}

// extendsChain returns the profile walk from name to its root, erroring on a
// missing profile, a missing parent or a cycle.
func extendsChain(profiles map[string]config.Profile, name string) ([]string, error) {
	p, ok := profiles[name]
	if !ok {
		return nil, &ProfileNotFoundError{Name: name}
	}
	chain := []string{name}
	seen := map[string]bool{name: true}
	for p.Extends != "" {
		parent := p.Extends
		if seen[parent] {
			return nil, &ProfileCycleError{Chain: append(chain, parent)}
		}
		next, ok := profiles[parent]
		if !ok {
			return nil, &ParentProfileNotFoundError{Child: chain[len(chain)-1], Parent: parent}
		}
		chain = append(chain, parent)
		seen[parent] = true
		p = next
	}
	return chain, nil
}

// ApplyCLIOverrides folds the --allow/--warn/--deny sets into levels, in that
// order. A rule id named by more than one set is a conflict.
func ApplyCLIOverrides(levels map[string]model.Level, specs map[string]model.LintSpec, allow, warn, deny []string) error {
	requested := map[string]model.Level{}
	apply := func(ids []string, lvl model.Level) error {
		for _, id := range ids {
			if _, ok := specs[id]; !ok {
				return &UnknownRuleError{Scope: "cli", RuleID: id}
			}
			if prev, ok := requested[id]; ok && prev != lvl {
				return &ConflictingRuleOverrideError{RuleID: id, Existing: prev, Requested: lvl}
			}
			requested[id] = lvl
			levels[id] = lvl
		}
		return nil
	}
	if err := apply(allow, model.LevelAllow); err != nil {
		return err
	}
	if err := apply(warn, model.LevelWarn); err != nil {
		return err
	}
	return apply(deny, model.LevelDeny)
}

func parseLevel(s string) (model.Level, error) {
	switch model.Level(s) {
	case model.LevelAllow, model.LevelWarn, model.LevelDeny:
		return model.Level(s), nil
	}
	return "", fmt.Errorf("invalid level %q", s)
}
