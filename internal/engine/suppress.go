package engine

import (
	"regexp"
	"strings"

	"github.com/xab-mack/aztlint/internal/model"
	"github.com/xab-mack/aztlint/internal/noir"
)

// scopeOverride is one in-source #[allow]/#[warn]/#[deny] attribute mapped to
// the line range of the block it precedes.
type scopeOverride struct {
	RuleID    string
	Level     model.Level
	StartLine int
	EndLine   int
}

var levelAttrRe = regexp.MustCompile(`#!?\[(allow|warn|deny)\(([A-Z][A-Z0-9_]*)\)\]`)

// collectScopes extracts every level attribute of a file. An attribute binds
// to the next contract/struct/fn/mod item and covers that item's brace block;
// an inner attribute (#![...]) or an attribute with no following item covers
// the whole file.
func collectScopes(unit model.SourceUnit) []scopeOverride {
	lines := strings.Split(unit.Text, "\n")
	var out []scopeOverride

	type pendingAttr struct {
		rule  string
		level model.Level
	}
	var pending []pendingAttr

	fileScope := func(rule string, level model.Level) {
		out = append(out, scopeOverride{RuleID: rule, Level: level, StartLine: 1, EndLine: len(lines)})
	}

	for i, raw := range lines {
		content, _ := noir.StripLine(raw)
		if content == "" {
			continue
		}
		if m := levelAttrRe.FindStringSubmatch(content); m != nil {
			if strings.HasPrefix(content, "#![") {
				fileScope(m[2], model.Level(m[1]))
			} else {
				pending = append(pending, pendingAttr{rule: m[2], level: model.Level(m[1])})
			}
			continue
		}
		if strings.HasPrefix(content, "#[") {
			continue
		}
		if len(pending) > 0 && isItemStart(content) {
			end := blockEnd(lines, i)
			for _, p := range pending {
				out = append(out, scopeOverride{RuleID: p.rule, Level: p.level, StartLine: i + 1, EndLine: end})
			}
			pending = nil
		} else if len(pending) > 0 {
			// Attribute not followed by an item: treat as file scope.
			for _, p := range pending {
				fileScope(p.rule, p.level)
			}
			pending = nil
		}
	}
	for _, p := range pending {
		fileScope(p.rule, p.level)
	}
	return out
}

func isItemStart(content string) bool {
	if _, ok := noir.IsContractStart(content); ok {
		return true
	}
	if _, ok := noir.IsStructStart(content); ok {
		return true
	}
	if _, ok := noir.IsFunctionStart(content); ok {
		return true
	}
	trimmed := strings.TrimPrefix(content, "pub ")
	return strings.HasPrefix(trimmed, "mod ")
}

// blockEnd returns the 1-based last line of the brace block opened at line
// index start, or the item line itself when no block opens.
func blockEnd(lines []string, start int) int {
	depth := 0
	opened := false
	for i := start; i < len(lines); i++ {
		content, _ := noir.StripLine(lines[i])
		if !opened && i > start && content != "" && !strings.HasPrefix(content, "{") {
			// No block on the item line, and the next content line does not
			// open one: single-line item.
			return start + 1
		}
		for _, c := range content {
			switch c {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		if opened && depth <= 0 {
			return i + 1
		}
	}
	return len(lines)
}

// findNearest returns the smallest scope of ruleID containing line, or nil.
func findNearest(scopes []scopeOverride, ruleID string, line int) *scopeOverride {
	var best *scopeOverride
	for i := range scopes {
		s := &scopes[i]
		if s.RuleID != ruleID || line < s.StartLine || line > s.EndLine {
			continue
		}
		if best == nil || s.EndLine-s.StartLine < best.EndLine-best.StartLine {
			best = s
		}
	}
	return best
}
