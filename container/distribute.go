// Package container scatters an invisible payload across the textual
// tokens of a document and recovers it later. Plain text is handled as
// whitespace-separated tokens; word-processor packages are handled at
// the level of their text-bearing markup nodes. Recovery is
// format-agnostic: the markers are simply collected from the extracted
// text in document order.
package container

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/vaultmark/vaultmark/internal/randsrc"
	"github.com/vaultmark/vaultmark/watermark"
)

const (
	// chunkTarget is the payload length one slot should carry, used to
	// size the slot count.
	chunkTarget = 32
	// minChunk is the smallest chunk appended to a single slot.
	minChunk = 8
	// slotFraction caps how many of the available slots are used.
	slotFraction = 0.3
)

// PackageFormatError reports a word-processor package that is missing
// its main document part or carries malformed markup.
type PackageFormatError struct {
	Reason string
	Err    error
}

func (e *PackageFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("container: %s: %v", e.Reason, e.Err)
	}
	return "container: " + e.Reason
}

func (e *PackageFormatError) Unwrap() error { return e.Err }

// slotCount computes how many insertion slots to use for a payload of
// payloadLen runes given available candidate slots.
func slotCount(payloadLen, available int) int {
	if available <= 0 {
		return 0
	}
	needed := (payloadLen + chunkTarget - 1) / chunkTarget
	if needed < 1 {
		needed = 1
	}
	limit := int(slotFraction * float64(available))
	if limit < 1 {
		limit = 1
	}
	use := needed
	if use > limit {
		use = limit
	}
	if use > available {
		use = available
	}
	return use
}

// chunkPayload splits payload into n chunks of at least minChunk runes;
// the last chunk absorbs any remainder.
func chunkPayload(payload []rune, n int) [][]rune {
	size := (len(payload) + n - 1) / n
	if size < minChunk {
		size = minChunk
	}
	chunks := make([][]rune, n)
	for i := 0; i < n; i++ {
		lo := i * size
		if lo > len(payload) {
			lo = len(payload)
		}
		hi := lo + size
		if i == n-1 || hi > len(payload) {
			hi = len(payload)
		}
		chunks[i] = payload[lo:hi]
	}
	return chunks
}

// Distribute interleaves the invisible payload into text by appending
// chunks after randomly chosen non-whitespace tokens. The visible text
// is unchanged: stripping the markers returns the input exactly.
func Distribute(src io.Reader, text, payload string) (string, error) {
	if payload == "" {
		return text, nil
	}

	tokens := splitRuns(text)
	var slots []int
	for i, tok := range tokens {
		if !isSpaceRun(tok) {
			slots = append(slots, i)
		}
	}
	if len(slots) == 0 {
		// Nothing to interleave with; carry the payload at the tail.
		return text + payload, nil
	}

	runes := []rune(payload)
	use := slotCount(len(runes), len(slots))
	picked, err := randsrc.Sample(src, len(slots), use)
	if err != nil {
		return "", fmt.Errorf("container: choose slots: %w", err)
	}
	chunks := chunkPayload(runes, len(picked))

	var b strings.Builder
	b.Grow(len(text) + len(payload)*3)
	next := 0
	for i, tok := range tokens {
		b.WriteString(tok)
		if next < len(picked) && slots[picked[next]] == i {
			b.WriteString(string(chunks[next]))
			next++
		}
	}
	return b.String(), nil
}

// Recover collects the invisible channel from extracted document text
// in document order. Slot positions are never needed: concatenating the
// markers reproduces the original payload stream.
func Recover(text string) string {
	var b strings.Builder
	for _, r := range text {
		if watermark.IsMarker(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// splitRuns cuts text into maximal runs of whitespace and
// non-whitespace, preserving every rune.
func splitRuns(text string) []string {
	var out []string
	start := 0
	var inSpace bool
	for i, r := range text {
		s := unicode.IsSpace(r)
		if i == 0 {
			inSpace = s
			continue
		}
		if s != inSpace {
			out = append(out, text[start:i])
			start = i
			inSpace = s
		}
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

func isSpaceRun(s string) bool {
	for _, r := range s {
		return unicode.IsSpace(r)
	}
	return true
}
