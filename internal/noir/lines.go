package noir

import (
	"strings"

	"github.com/xab-mack/aztlint/internal/model"
)

// EachLine visits every line of a source unit with its stripped content and
// the span covering that content. Lines whose content is empty after
// stripping are skipped.
func EachLine(unit model.SourceUnit, visit func(content string, span model.Span)) {
	offset := 0
	for i, raw := range strings.Split(unit.Text, "\n") {
		content, indent := StripLine(raw)
		if content != "" {
			visit(content, model.Span{
				File:  unit.Path,
				Start: offset + indent,
				End:   offset + indent + len(content),
				Line:  i + 1,
				Col:   indent + 1,
			})
		}
		offset += len(raw) + 1
	}
}
