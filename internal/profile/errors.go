package profile

import (
	"fmt"
	"strings"

	"github.com/xab-mack/aztlint/internal/model"
)

type ProfileNotFoundError struct {
	Name string
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("ProfileNotFound: %s", e.Name)
}

type ParentProfileNotFoundError struct {
	Child  string
	Parent string
}

func (e *ParentProfileNotFoundError) Error() string {
	return fmt.Sprintf("ParentProfileNotFound: %s extends %s", e.Child, e.Parent)
}

// ProfileCycleError reports an extends chain that revisits a profile. Chain
// holds the walk including the repeated entry.
type ProfileCycleError struct {
	Chain []string
}

func (e *ProfileCycleError) Error() string {
	return fmt.Sprintf("ProfileCycle[%s]", strings.Join(e.Chain, " → "))
}

type UnknownRulesetError struct {
	Profile string
	Pack    string
}

func (e *UnknownRulesetError) Error() string {
	return fmt.Sprintf("UnknownRuleset: %s in profile %s", e.Pack, e.Profile)
}

type UnknownRuleError struct {
	Scope  string // profile name or "cli"
	RuleID string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("UnknownRule: %s in %s", e.RuleID, e.Scope)
}

type ConflictingRuleOverrideError struct {
	RuleID    string
	Existing  model.Level
	Requested model.Level
}

func (e *ConflictingRuleOverrideError) Error() string {
	return fmt.Sprintf("ConflictingRuleOverride: %s requested both %s and %s", e.RuleID, e.Existing, e.Requested)
}
