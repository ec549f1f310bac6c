package utils

import "github.com/google/uuid"

// ChatID returns the canonical thread key for a two-party conversation:
// the participant ids sorted lexicographically, joined with "_". The key is
// order-independent, so ChatID(a, b) == ChatID(b, a).
func ChatID(a, b uuid.UUID) string {
	return ChatIDFromStrings(a.String(), b.String())
}

func ChatIDFromStrings(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "_" + b
}
