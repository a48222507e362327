// Package hashutil implements the 32-bit rolling hash used for the
// identity and content checksums embedded in watermark records.
//
// This is the classic djb-style string hash (h = h*31 + c) and is NOT
// collision resistant. It is an integrity check against accidental or
// casual modification, not a cryptographic digest. Upgrading it would
// invalidate every watermark record already embedded in documents, so
// the weakness is documented here rather than fixed.
package hashutil

import (
	"strconv"
	"strings"
)

// Rolling returns the lowercase hex form of the 32-bit rolling hash of s,
// iterating h = (h << 5) - h + c over the bytes of s with wraparound.
func Rolling(s string) string {
	var h int32
	for i := 0; i < len(s); i++ {
		h = h<<5 - h + int32(s[i])
	}
	return strconv.FormatUint(uint64(uint32(h)), 16)
}

// NormalizeSpace trims s and collapses every run of whitespace to a
// single space. Content hashes are computed over normalized text so
// that whitespace-only reflow does not read as tampering.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ContentHash hashes the whitespace-normalized visible text.
func ContentHash(text string) string {
	return Rolling(NormalizeSpace(text))
}
