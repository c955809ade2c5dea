package model

import "strings"

// Span is a half-open byte range in a source file with 1-based line/column.
// Spans are immutable after construction and ordered by
// (normalized file, start, end).
type Span struct {
	File  string `json:"file"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Line  int    `json:"line"`
	Col   int    `json:"col"`
}

// NormalizePath rewrites backslashes to forward slashes and strips a leading
// "./" so that the same file yields the same span key on every platform.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	return p
}

// Normalized returns a copy of the span with its file path normalized.
func (s Span) Normalized() Span {
	s.File = NormalizePath(s.File)
	return s
}

// Compare orders spans by (normalized file, start, end).
func (s Span) Compare(o Span) int {
	if c := strings.Compare(NormalizePath(s.File), NormalizePath(o.File)); c != 0 {
		return c
	}
	if s.Start != o.Start {
		return cmpInt(s.Start, o.Start)
	}
	return cmpInt(s.End, o.End)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
