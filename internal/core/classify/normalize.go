package classify

import (
	"strings"
	"unicode/utf8"
)

// Text is a candidate prepared for matching. Raw keeps the original casing
// and is the value that gets stored; Lower is only for keyword checks.
type Text struct {
	Raw   string
	Lower string
	Len   int
}

// Normalize trims s and lowercases a copy for matching. It fails closed:
// empty, whitespace-only or malformed UTF-8 input reports ok == false and
// every rule chain treats that as a rejection.
func Normalize(s string) (Text, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" || !utf8.ValidString(raw) {
		return Text{}, false
	}
	return Text{
		Raw:   raw,
		Lower: strings.ToLower(raw),
		Len:   utf8.RuneCountInString(raw),
	}, true
}
