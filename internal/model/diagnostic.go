package model

import "strings"

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

type FixSafety string

const (
	FixSafe        FixSafety = "safe"
	FixNeedsReview FixSafety = "needs_review"
)

// Fix is a concrete replacement a client may apply to the span.
type Fix struct {
	Description string    `json:"description"`
	Span        Span      `json:"span"`
	Replacement string    `json:"replacement"`
	Safety      FixSafety `json:"safety"`
}

// Diagnostic is one reported issue. Field order here is the canonical JSON
// key order of the output contract.
type Diagnostic struct {
	RuleID            string     `json:"rule_id"`
	Severity          Severity   `json:"severity"`
	Confidence        Confidence `json:"confidence"`
	Policy            string     `json:"policy"`
	Message           string     `json:"message"`
	PrimarySpan       Span       `json:"primary_span"`
	SecondarySpans    []Span     `json:"secondary_spans"`
	Suggestions       []string   `json:"suggestions"`
	Fixes             []Fix      `json:"fixes"`
	Suppressed        bool       `json:"suppressed"`
	SuppressionReason *string    `json:"suppression_reason"`
	Fingerprint       string     `json:"fingerprint"`
}

// Canonicalize makes the slice fields non-nil so every diagnostic serializes
// arrays as [] rather than null.
func (d *Diagnostic) Canonicalize() {
	if d.SecondarySpans == nil {
		d.SecondarySpans = []Span{}
	}
	if d.Suggestions == nil {
		d.Suggestions = []string{}
	}
	if d.Fixes == nil {
		d.Fixes = []Fix{}
	}
}

// Suppress marks the diagnostic suppressed with the given reason. A suppressed
// diagnostic always carries a non-empty reason.
func (d *Diagnostic) Suppress(reason string) {
	d.Suppressed = true
	d.SuppressionReason = &reason
}

// CompareDiagnostics orders by (normalized file, start, end, rule id,
// message hash). msgHash must be a pure function of the message text; the
// engine passes the blake3 hex used for fingerprints.
func CompareDiagnostics(a, b Diagnostic, msgHash func(string) string) int {
	if c := a.PrimarySpan.Compare(b.PrimarySpan); c != 0 {
		return c
	}
	if c := strings.Compare(a.RuleID, b.RuleID); c != 0 {
		return c
	}
	return strings.Compare(msgHash(a.Message), msgHash(b.Message))
}
