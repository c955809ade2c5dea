package util

import (
	"encoding/hex"
	"fmt"

	"lukechampine.com/blake3"

	"github.com/xab-mack/aztlint/internal/model"
)

// Fingerprint computes the stable identity of a (span, rule) pair. The
// preimage is versioned so the scheme can evolve without colliding with old
// baselines.
func Fingerprint(span model.Span, ruleID string) string {
	preimage := fmt.Sprintf("v1|%s|%d|%d|%d|%d|%s",
		model.NormalizePath(span.File), span.Start, span.End, span.Line, span.Col, ruleID)
	sum := blake3.Sum256([]byte(preimage))
	return hex.EncodeToString(sum[:])
}

// HashHex returns the blake3 hex of an arbitrary string. Used as the final
// tie-breaker in diagnostic ordering.
func HashHex(s string) string {
	sum := blake3.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
