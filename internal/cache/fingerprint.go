package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// Stop words removed during normalization. Questions differing only in these
// words intentionally share one cache slot.
var stopWords = map[string]struct{}{
	"what": {}, "how": {}, "why": {}, "when": {}, "where": {},
	"is": {}, "are": {}, "the": {}, "a": {}, "an": {},
}

// Normalize lowercases the question, collapses whitespace, strips punctuation
// and drops stop words, returning the remaining tokens joined by single
// spaces. It is total: any input, including empty or whitespace-only text,
// yields a deterministic result (the empty string maps all no-content
// questions to one slot).
func Normalize(question string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(question) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
		// Punctuation and symbols are dropped.
	}

	kept := make([]string, 0, 8)
	for _, tok := range strings.Fields(b.String()) {
		if _, skip := stopWords[tok]; skip {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// Fingerprint derives the cache key for a question in a given context and
// language. Pure and deterministic.
func Fingerprint(question, contextKey, language string) string {
	content := Normalize(question) + "|" + contextKey + "|" + language
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
