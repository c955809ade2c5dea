package report

import (
	"encoding/json"

	"github.com/xab-mack/aztlint/internal/model"
)

// RenderJSON serializes diagnostics in the stable output contract: keys in
// declared order, arrays always present, null for an absent suppression
// reason.
func RenderJSON(diags []model.Diagnostic) ([]byte, error) {
	if diags == nil {
		diags = []model.Diagnostic{}
	}
	for i := range diags {
		diags[i].Canonicalize()
	}
	return json.MarshalIndent(diags, "", "  ")
}

// ParseJSON is the inverse of RenderJSON.
func ParseJSON(data []byte) ([]model.Diagnostic, error) {
	var diags []model.Diagnostic
	if err := json.Unmarshal(data, &diags); err != nil {
		return nil, err
	}
	for i := range diags {
		diags[i].Canonicalize()
	}
	return diags, nil
}
