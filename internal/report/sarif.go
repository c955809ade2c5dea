package report

import (
	"encoding/json"

	"github.com/xab-mack/aztlint/internal/model"
)

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name string `json:"name"`
}

type sarifResult struct {
	RuleID              string            `json:"ruleId"`
	Level               string            `json:"level"`
	Message             sarifMessage      `json:"message"`
	Locations           []sarifLoc        `json:"locations"`
	PartialFingerprints map[string]string `json:"partialFingerprints,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	Physical sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
}

// ToSARIF renders diagnostics as a SARIF 2.1.0 envelope with a single run.
func ToSARIF(diags []model.Diagnostic) ([]byte, error) {
	results := make([]sarifResult, 0, len(diags))
	for _, d := range diags {
		level := "warning"
		if d.Severity == model.SeverityError {
			level = "error"
		}
		r := sarifResult{
			RuleID:  d.RuleID,
			Level:   level,
			Message: sarifMessage{Text: d.Message},
			Locations: []sarifLoc{{Physical: sarifPhys{
				ArtifactLocation: sarifArt{URI: model.NormalizePath(d.PrimarySpan.File)},
				Region:           sarifRegion{StartLine: d.PrimarySpan.Line, StartColumn: d.PrimarySpan.Col},
			}}},
		}
		if d.Fingerprint != "" {
			r.PartialFingerprints = map[string]string{"aztlintFingerprint/v1": d.Fingerprint}
		}
		results = append(results, r)
	}
	s := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{{Tool: sarifTool{Driver: sarifDriver{Name: "aztlint"}}, Results: results}},
	}
	return json.MarshalIndent(s, "", "  ")
}
