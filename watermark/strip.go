package watermark

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// stripper removes the invisible channel; it is stateless and safe for
// concurrent use.
var stripper = runes.Remove(runes.Predicate(IsMarker))

// Stripper returns a transformer that deletes all invisible marker
// runes, for streaming use.
func Stripper() transform.Transformer {
	return stripper
}

// Strip returns s with the invisible channel removed. The result is the
// visible text exactly as an editor would show it.
func Strip(s string) string {
	out, _, err := transform.String(stripper, s)
	if err != nil {
		// The transformer only deletes runes and cannot fail on valid
		// UTF-8; fall back to the input on malformed text.
		return s
	}
	return out
}
