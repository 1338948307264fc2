// Package normalize canonicalizes transaction descriptions into stable
// correction-lookup keys. Two descriptions that differ only in case,
// punctuation, or incidental whitespace normalize identically, so a single
// user correction covers every superficial variant a statement export emits.
package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Normalize reduces raw transaction text to lowercase ASCII letters, digits,
// and single spaces, with leading and trailing whitespace removed. Anything
// else is stripped. The empty string is returned when nothing survives.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	lastSpace := true // swallow leading whitespace
	for _, r := range strings.ToLower(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		case r == ' ', r == '\t', r == '\n', r == '\r':
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// Key returns the hex SHA-256 digest of the UTF-8 bytes of a normalized
// description. Callers must treat it as an opaque stable identifier.
func Key(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
