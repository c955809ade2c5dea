package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "a/b", NormalizePath(`.\a\b`))
	assert.Equal(t, "a/b", NormalizePath("./a/b"))
	assert.Equal(t, "a/b", NormalizePath("a/b"))
}

func TestSpanCompare(t *testing.T) {
	a := Span{File: "a.nr", Start: 1, End: 5}
	b := Span{File: "b.nr", Start: 0, End: 1}
	assert.Negative(t, a.Compare(b))
	assert.Positive(t, b.Compare(a))

	// Same file compares by start, then end.
	c := Span{File: "a.nr", Start: 1, End: 9}
	assert.Negative(t, a.Compare(c))
	assert.Zero(t, a.Compare(a))

	// Path spelling does not affect ordering.
	d := Span{File: `.\a.nr`, Start: 1, End: 5}
	assert.Zero(t, a.Compare(d))
}

func TestCompareDiagnostics(t *testing.T) {
	ident := func(s string) string { return s }
	a := Diagnostic{RuleID: "NOIR001", Message: "m", PrimarySpan: Span{File: "a.nr", Start: 1}}
	b := Diagnostic{RuleID: "NOIR002", Message: "m", PrimarySpan: Span{File: "a.nr", Start: 1}}
	assert.Negative(t, CompareDiagnostics(a, b, ident))

	// Same span and rule fall back to the message hash.
	c := a
	c.Message = "z"
	assert.Negative(t, CompareDiagnostics(a, c, ident))

	later := a
	later.PrimarySpan.Start = 50
	assert.Negative(t, CompareDiagnostics(a, later, ident))
}

func TestSuppressSetsReason(t *testing.T) {
	var d Diagnostic
	d.Suppress("allow(NOIR001)")
	assert.True(t, d.Suppressed)
	if assert.NotNil(t, d.SuppressionReason) {
		assert.Equal(t, "allow(NOIR001)", *d.SuppressionReason)
	}
}
