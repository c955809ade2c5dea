package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xab-mack/aztlint/internal/model"
)

func sampleDiag() model.Diagnostic {
	d := model.Diagnostic{
		RuleID:      "AZTEC001",
		Severity:    model.SeverityWarning,
		Confidence:  model.ConfidenceMedium,
		Policy:      "privacy",
		Message:     "public sink after note read",
		PrimarySpan: model.Span{File: "src/main.nr", Start: 10, End: 20, Line: 3, Col: 5},
		Fingerprint: strings.Repeat("ab", 32),
	}
	d.Canonicalize()
	return d
}

func TestRenderParseRoundTrip(t *testing.T) {
	in := []model.Diagnostic{sampleDiag()}
	data, err := RenderJSON(in)
	require.NoError(t, err)
	out, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRenderJSONContract(t *testing.T) {
	data, err := RenderJSON([]model.Diagnostic{sampleDiag()})
	require.NoError(t, err)
	s := string(data)

	// Absent suppression reason is null, never omitted.
	assert.Contains(t, s, `"suppression_reason": null`)
	// Empty collections serialize as arrays.
	assert.Contains(t, s, `"secondary_spans": []`)
	assert.Contains(t, s, `"suggestions": []`)
	assert.Contains(t, s, `"fixes": []`)
	// rule_id precedes severity, the first two keys of the contract.
	assert.Less(t, strings.Index(s, `"rule_id"`), strings.Index(s, `"severity"`))

	// fingerprint is the last key of each diagnostic object.
	assert.Greater(t, strings.Index(s, `"fingerprint"`), strings.Index(s, `"suppression_reason"`))
}

func TestRenderJSONSuppressed(t *testing.T) {
	d := sampleDiag()
	d.Suppress("allow(AZTEC001)")
	data, err := RenderJSON([]model.Diagnostic{d})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"suppression_reason": "allow(AZTEC001)"`)
	assert.Contains(t, string(data), `"suppressed": true`)

	out, err := ParseJSON(data)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].SuppressionReason)
	assert.Equal(t, "allow(AZTEC001)", *out[0].SuppressionReason)
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
