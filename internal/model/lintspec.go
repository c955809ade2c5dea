package model

type Level string

const (
	LevelAllow Level = "allow"
	LevelWarn  Level = "warn"
	LevelDeny  Level = "deny"
)

// SeverityForLevel maps an effective rule level to a diagnostic severity.
// Allow never reaches diagnostic construction (the rule is skipped).
func SeverityForLevel(l Level) Severity {
	if l == LevelDeny {
		return SeverityError
	}
	return SeverityWarning
}

type Lifecycle string

const (
	LifecycleActive     Lifecycle = "active"
	LifecycleDeprecated Lifecycle = "deprecated"
	LifecycleRenamed    Lifecycle = "renamed"
	LifecycleRemoved    Lifecycle = "removed"
)

// LintSpec is one immutable catalog entry. IDs are unique, uppercase ASCII
// letters, digits and underscore.
type LintSpec struct {
	ID           string     `json:"id"`
	Pack         string     `json:"pack"`
	Policy       string     `json:"policy"`
	Category     string     `json:"category"`
	DefaultLevel Level      `json:"default_level"`
	Confidence   Confidence `json:"confidence"`
	Lifecycle    Lifecycle  `json:"lifecycle"`
	Docs         string     `json:"docs"`
}
