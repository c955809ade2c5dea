package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationReaches(t *testing.T) {
	f := &SemanticFunction{
		DFGEdges: []DFGEdge{
			{From: "path", To: "computed_root"},
			{From: "computed_root", To: "checked"},
		},
		Statements: []Statement{
			{Category: StatementAssert, Line: 9, Idents: []string{"checked"}},
			{Category: StatementCall, Line: 4, Idents: []string{"path"}},
		},
	}
	assert.True(t, f.VerificationReaches("path"))
	assert.True(t, f.VerificationReaches("checked"))
	assert.False(t, f.VerificationReaches("leaf"))

	var nilFn *SemanticFunction
	assert.False(t, nilFn.VerificationReaches("path"))
}

func TestVerificationReachesCycle(t *testing.T) {
	f := &SemanticFunction{
		DFGEdges: []DFGEdge{
			{From: "a", To: "b"},
			{From: "b", To: "a"},
		},
	}
	// A cyclic DFG with no verification statements terminates with false.
	assert.False(t, f.VerificationReaches("a"))
}

func TestLoadSemanticModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	body := `{
  "functions": {
    "src/main.nr::Tree::fn::claim": {
      "statements": [{"category": "constrain", "line": 7, "idents": ["root"]}],
      "dfg_edges": [{"from": "witness", "to": "root"}]
    }
  }
}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	m, err := LoadSemanticModel(path)
	require.NoError(t, err)
	fn := m.Functions["src/main.nr::Tree::fn::claim"]
	require.NotNil(t, fn)
	assert.True(t, fn.VerificationReaches("witness"))

	_, err = LoadSemanticModel(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
