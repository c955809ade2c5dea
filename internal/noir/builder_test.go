package noir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xab-mack/aztlint/internal/config"
	"github.com/xab-mack/aztlint/internal/model"
)

const bridgeSource = `contract Token {
    #[storage]
    struct Storage {
        total: PublicMutable<Field>,
    }

    #[external("private")]
    fn bridge(amount: Field) {
        self.enqueue(Token::at(self.context.this_address()).mint_public(amount));
    }

    #[external("public")]
    #[only_self]
    fn mint_public(amount: Field) {
        storage.total.write(amount);
    }
}
`

func buildTestModel(t *testing.T, text string) *model.AztecModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg := config.DefaultAztec()
	return BuildModel([]model.SourceUnit{{Path: "src/token.nr", Text: text}}, &cfg)
}

func TestBuildModelContractAndEntrypoints(t *testing.T) {
	m := buildTestModel(t, bridgeSource)

	require.Len(t, m.Contracts, 1)
	assert.Equal(t, "src/token.nr::Token", m.Contracts[0].ContractID)
	assert.Equal(t, "Token", m.Contracts[0].Name)

	require.Len(t, m.StorageStructs, 1)

	bridgeID := "src/token.nr::Token::fn::bridge"
	mintID := "src/token.nr::Token::fn::mint_public"
	assert.True(t, m.HasEntrypointKind(bridgeID, model.EntrypointPrivate))
	assert.True(t, m.HasEntrypointKind(mintID, model.EntrypointPublic))
	assert.True(t, m.HasEntrypointKind(mintID, model.EntrypointOnlySelf))
	assert.False(t, m.HasEntrypointKind(mintID, model.EntrypointPrivate))

	// Both attributes of mint_public produce their own entries.
	kinds := m.EntrypointKinds(mintID)
	assert.Len(t, kinds, 2)
}

func TestBuildModelEnqueueSite(t *testing.T) {
	m := buildTestModel(t, bridgeSource)

	require.Len(t, m.EnqueueSites, 1)
	site := m.EnqueueSites[0]
	assert.Equal(t, "src/token.nr::Token", site.SourceContractID)
	assert.Equal(t, "src/token.nr::Token::fn::bridge", site.SourceFunctionSymbolID)
	assert.Equal(t, "src/token.nr::Token", site.TargetContractID)
	assert.Equal(t, "mint_public", site.TargetFunctionName)
	assert.Equal(t, 9, site.Span.Line)
}

func TestBuildModelSites(t *testing.T) {
	src := `contract Vault {
    #[external("private")]
    fn spend(owner: Field) {
        let notes = storage.notes.get_notes(owner);
        emit_nullifier(notes);
        storage.notes.insert(note).deliver(owner);
        emit(notes);
    }
}
`
	m := buildTestModel(t, src)
	require.Len(t, m.NoteReadSites, 1)
	require.Len(t, m.NullifierEmits, 1)
	require.Len(t, m.NoteWriteSites, 1)
	require.Len(t, m.PublicSinks, 1)
	assert.Equal(t, 7, m.PublicSinks[0].Span.Line)
}

func TestUtilityClassification(t *testing.T) {
	src := `contract Helper {
    fn internal_math(x: Field) -> Field {
        x
    }
}
`
	m := buildTestModel(t, src)
	require.Len(t, m.Entrypoints, 1)
	assert.Equal(t, model.EntrypointUtility, m.Entrypoints[0].Kind)
}

func TestNormalizeIdempotent(t *testing.T) {
	m := buildTestModel(t, bridgeSource)
	// Duplicate everything, normalize twice, expect the original shape back.
	dup := &model.AztecModel{}
	dup.Merge(m)
	dup.Merge(m)
	dup.Normalize()
	once := *dup
	dup.Normalize()
	assert.Equal(t, once.Contracts, dup.Contracts)
	assert.Equal(t, once.Entrypoints, dup.Entrypoints)
	assert.Equal(t, once.EnqueueSites, dup.EnqueueSites)
	assert.Equal(t, len(m.Entrypoints), len(dup.Entrypoints))
}
