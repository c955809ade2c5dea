package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xab-mack/aztlint/internal/model"
)

func scopesOf(text string) []scopeOverride {
	return collectScopes(model.SourceUnit{Path: "src/main.nr", Text: text})
}

func TestCollectScopesItemAttribute(t *testing.T) {
	scopes := scopesOf(`contract T {
    #[allow(AZTEC001)]
    fn spend() {
        emit(x);
    }

    fn other() {
    }
}
`)
	require.Len(t, scopes, 1)
	s := scopes[0]
	assert.Equal(t, "AZTEC001", s.RuleID)
	assert.Equal(t, model.LevelAllow, s.Level)
	assert.Equal(t, 3, s.StartLine)
	assert.Equal(t, 5, s.EndLine)
}

func TestCollectScopesInnerAttributeIsFileScope(t *testing.T) {
	text := `#![deny(NOIR002)]

fn a() {
    println("x");
}
`
	scopes := scopesOf(text)
	require.Len(t, scopes, 1)
	assert.Equal(t, 1, scopes[0].StartLine)
	assert.Equal(t, 6, scopes[0].EndLine)
	assert.Equal(t, model.LevelDeny, scopes[0].Level)
}

func TestCollectScopesTrailingAttributeIsFileScope(t *testing.T) {
	scopes := scopesOf(`fn a() {
}

#[warn(NOIR001)]
`)
	require.Len(t, scopes, 1)
	assert.Equal(t, 1, scopes[0].StartLine)
}

func TestCollectScopesStackedAttributes(t *testing.T) {
	scopes := scopesOf(`#[allow(NOIR001)]
#[allow(NOIR002)]
#[external("private")]
fn spend() {
    assert(true);
}
`)
	require.Len(t, scopes, 2)
	for _, s := range scopes {
		assert.Equal(t, 4, s.StartLine)
		assert.Equal(t, 6, s.EndLine)
	}
}

func TestCollectScopesContractScope(t *testing.T) {
	scopes := scopesOf(`#[allow(AZTEC003)]
contract T {
    fn a() {
        debug_log(x);
    }
}
`)
	require.Len(t, scopes, 1)
	assert.Equal(t, 2, scopes[0].StartLine)
	assert.Equal(t, 6, scopes[0].EndLine)
}

func TestFindNearestPicksSmallestScope(t *testing.T) {
	scopes := []scopeOverride{
		{RuleID: "AZTEC001", Level: model.LevelAllow, StartLine: 1, EndLine: 100},
		{RuleID: "AZTEC001", Level: model.LevelDeny, StartLine: 10, EndLine: 20},
		{RuleID: "NOIR001", Level: model.LevelWarn, StartLine: 1, EndLine: 100},
	}
	sc := findNearest(scopes, "AZTEC001", 15)
	require.NotNil(t, sc)
	assert.Equal(t, model.LevelDeny, sc.Level)

	sc = findNearest(scopes, "AZTEC001", 50)
	require.NotNil(t, sc)
	assert.Equal(t, model.LevelAllow, sc.Level)

	assert.Nil(t, findNearest(scopes, "AZTEC010", 15))
	assert.Nil(t, findNearest(nil, "AZTEC001", 15))
}

func TestBlockEndSingleLineItem(t *testing.T) {
	lines := []string{
		"#[allow(NOIR001)]",
		"mod helpers;",
		"",
		"fn later() {",
		"}",
	}
	assert.Equal(t, 2, blockEnd(lines, 1))
}
