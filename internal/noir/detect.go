package noir

import (
	"strings"

	"github.com/xab-mack/aztlint/internal/config"
	"github.com/xab-mack/aztlint/internal/model"
)

// ShouldActivateAztec decides whether the Aztec model builder and rule pack
// apply to this project: the profile is named "aztec", a file carries the
// contract attribute, or an import clause is rooted at a configured prefix.
// A non-root segment (`use other::aztec::...`) does not activate.
func ShouldActivateAztec(profile string, sources []model.SourceUnit, cfg *config.AztecConfig) bool {
	if strings.EqualFold(profile, "aztec") {
		return true
	}
	marker := "#[" + cfg.ContractAttribute + "]"
	for _, src := range sources {
		if strings.Contains(src.Text, marker) {
			return true
		}
		for _, raw := range strings.Split(src.Text, "\n") {
			line, _ := StripLine(raw)
			if isAztecImport(line, cfg) {
				return true
			}
		}
	}
	return false
}

func isAztecImport(line string, cfg *config.AztecConfig) bool {
	line = strings.TrimPrefix(line, "pub ")
	path, ok := strings.CutPrefix(line, "use ")
	if !ok {
		return false
	}
	path = strings.TrimLeft(path, " \t")
	path = strings.TrimPrefix(path, "::")
	for _, prefix := range cfg.ImportsPrefixes {
		if strings.HasPrefix(path, prefix+"::") {
			return true
		}
	}
	return false
}
