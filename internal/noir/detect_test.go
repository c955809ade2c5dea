package noir

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xab-mack/aztlint/internal/config"
	"github.com/xab-mack/aztlint/internal/model"
)

func TestShouldActivateAztec(t *testing.T) {
	cfg := config.DefaultAztec()
	unit := func(text string) []model.SourceUnit {
		return []model.SourceUnit{{Path: "src/main.nr", Text: text}}
	}

	// Root-segment import activates.
	assert.True(t, ShouldActivateAztec("default", unit("use aztec::prelude::*;\n"), &cfg))
	assert.True(t, ShouldActivateAztec("default", unit("pub use aztec::macros::*;\n"), &cfg))
	assert.True(t, ShouldActivateAztec("default", unit("use ::aztec::prelude::*;\n"), &cfg))

	// Non-root segment does not.
	assert.False(t, ShouldActivateAztec("default", unit("use other::aztec::helpers::x;\n"), &cfg))

	// Contract attribute activates.
	assert.True(t, ShouldActivateAztec("default", unit("#[aztec]\ncontract T {}\n"), &cfg))

	// Profile name activates regardless of sources.
	assert.True(t, ShouldActivateAztec("AZTEC", nil, &cfg))
	assert.False(t, ShouldActivateAztec("default", unit("fn main() {}\n"), &cfg))
}
