package engine

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/xab-mack/aztlint/internal/model"
)

// loadBaseline reads a baseline file: a JSON array of fingerprints.
func loadBaseline(path string) (map[string]bool, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fps []string
	if err := json.Unmarshal(data, &fps); err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(fps))
	for _, fp := range fps {
		set[fp] = true
	}
	return set, nil
}

// filterByBaseline drops diagnostics whose fingerprint the baseline already
// contains.
func filterByBaseline(diags []model.Diagnostic, baseline map[string]bool) []model.Diagnostic {
	if len(baseline) == 0 {
		return diags
	}
	out := diags[:0]
	for _, d := range diags {
		if baseline[d.Fingerprint] {
			continue
		}
		out = append(out, d)
	}
	return out
}

// WriteBaseline stores the sorted, deduplicated fingerprints of diags.
func WriteBaseline(path string, diags []model.Diagnostic) error {
	seen := map[string]bool{}
	var fps []string
	for _, d := range diags {
		if d.Fingerprint != "" && !seen[d.Fingerprint] {
			seen[d.Fingerprint] = true
			fps = append(fps, d.Fingerprint)
		}
	}
	sort.Strings(fps)
	data, err := json.MarshalIndent(fps, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
