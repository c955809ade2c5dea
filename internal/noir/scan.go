package noir

import (
	"regexp"
	"strings"

	"github.com/xab-mack/aztlint/internal/config"
)

// The scanners in this file recognize a small grammar of Aztec/Noir
// declarations and call sites by string shape. There is no token stream; a
// line is stripped of its first // comment and surrounding whitespace before
// matching. All scanners are total: an unrecognized line is "no match".

var identRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

var methodCallRe = regexp.MustCompile(`\.([A-Za-z_][A-Za-z0-9_]*)\(`)

// StripLine removes the first // comment and surrounding whitespace. It
// returns the remaining content and the byte offset of that content within
// the raw line.
func StripLine(raw string) (content string, indent int) {
	if i := strings.Index(raw, "//"); i >= 0 {
		raw = raw[:i]
	}
	trimmed := strings.TrimLeft(raw, " \t")
	indent = len(raw) - len(trimmed)
	return strings.TrimRight(trimmed, " \t\r"), indent
}

func firstIdentAfter(line, keyword string) (string, bool) {
	rest, ok := strings.CutPrefix(line, keyword+" ")
	if !ok {
		return "", false
	}
	name := identRe.FindString(strings.TrimLeft(rest, " \t"))
	if name == "" || !strings.HasPrefix(strings.TrimLeft(rest, " \t"), name) {
		return "", false
	}
	return name, true
}

// IsContractStart matches `contract X` or `pub contract X` and returns the
// first identifier after the keyword.
func IsContractStart(line string) (string, bool) {
	line = strings.TrimPrefix(line, "pub ")
	return firstIdentAfter(line, "contract")
}

// IsStructStart matches `struct X` or `pub struct X`.
func IsStructStart(line string) (string, bool) {
	line = strings.TrimPrefix(line, "pub ")
	return firstIdentAfter(line, "struct")
}

// IsFunctionStart matches `fn X`, `pub fn X`, `unconstrained fn X` and
// `pub unconstrained fn X`.
func IsFunctionStart(line string) (string, bool) {
	line = strings.TrimPrefix(line, "pub ")
	line = strings.TrimPrefix(line, "unconstrained ")
	return firstIdentAfter(line, "fn")
}

// IsUnconstrainedFunctionStart matches only the unconstrained variants.
func IsUnconstrainedFunctionStart(line string) (string, bool) {
	line = strings.TrimPrefix(line, "pub ")
	if !strings.HasPrefix(line, "unconstrained ") {
		return "", false
	}
	return IsFunctionStart(line)
}

// HasAttribute reports whether the line carries `#[<attr>]`.
func HasAttribute(line, attr string) bool {
	return strings.Contains(line, "#["+attr+"]")
}

// HasExternalKind reports whether the line carries
// `#[<external_attribute>("<kind>")]`, kind being "private" or "public".
func HasExternalKind(line, kind string, cfg *config.AztecConfig) bool {
	return strings.Contains(line, "#["+cfg.ExternalAttribute+`("`+kind+`")]`)
}

// IsStorageStruct matches a struct header on a line that also carries the
// storage attribute.
func IsStorageStruct(line string, cfg *config.AztecConfig) (string, bool) {
	if !HasAttribute(line, cfg.StorageAttribute) {
		return "", false
	}
	idx := strings.Index(line, "]")
	if idx < 0 {
		return "", false
	}
	return IsStructStart(strings.TrimLeft(line[idx+1:], " \t"))
}

// LooksLikeEnqueue reports whether the line schedules a public call.
func LooksLikeEnqueue(line string, cfg *config.AztecConfig) bool {
	return strings.Contains(line, "self."+cfg.EnqueueFn+"(") || strings.Contains(line, "enqueue_self")
}

// ExtractEnqueueTarget returns the function name an enqueue line targets.
// `enqueue_self.X(` wins; otherwise the last `.identifier(` on the line.
// The fallback can misread chained calls that end in a non-method paren;
// the shapes exercised by the tests are the supported contract.
func ExtractEnqueueTarget(line string) string {
	if i := strings.Index(line, "enqueue_self."); i >= 0 {
		rest := line[i+len("enqueue_self."):]
		if m := methodCallRe.FindStringSubmatch("." + rest); m != nil {
			return m[1]
		}
	}
	ms := methodCallRe.FindAllStringSubmatch(line, -1)
	if len(ms) == 0 {
		return ""
	}
	return ms[len(ms)-1][1]
}

// IsSameContractEnqueue reports whether the enqueue targets the enclosing
// contract.
func IsSameContractEnqueue(line string) bool {
	return strings.Contains(line, "this_address") || strings.Contains(line, "enqueue_self")
}

// ContainsNoteRead matches calls to any configured note getter.
func ContainsNoteRead(line string, cfg *config.AztecConfig) bool {
	for _, fn := range cfg.NoteGetterFns {
		if strings.Contains(line, fn+"(") {
			return true
		}
	}
	return false
}

// ContainsNoteWrite matches the commitment-insert shape.
func ContainsNoteWrite(line string) bool {
	if !strings.Contains(line, ".insert(") {
		return false
	}
	return strings.Contains(line, "deliver(") || strings.Contains(line, "ONCHAIN_CONSTRAINED")
}

// ContainsNullifierEmit matches calls to any configured nullifier emitter.
func ContainsNullifierEmit(line string, cfg *config.AztecConfig) bool {
	for _, fn := range cfg.NullifierFns {
		if strings.Contains(line, fn+"(") {
			return true
		}
	}
	return false
}

// ContainsPublicSink matches the hard-coded public output shapes.
func ContainsPublicSink(line string) bool {
	return strings.Contains(line, "emit(") ||
		strings.Contains(line, "public_log(") ||
		strings.Contains(line, "debug_log(") ||
		strings.Contains(line, "return ")
}

// Identifiers returns every identifier occurring in the line, in order.
func Identifiers(line string) []string {
	return identRe.FindAllString(line, -1)
}

// ContainsIdentifier reports a whole-identifier match of name in line.
func ContainsIdentifier(line, name string) bool {
	for _, id := range Identifiers(line) {
		if id == name {
			return true
		}
	}
	return false
}
