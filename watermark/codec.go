package watermark

import (
	"strings"
)

// The three invisible carriers. All render at zero width and carry no
// semantic meaning in ordinary text.
const (
	MarkerZero = '​' // zero width space, bit 0
	MarkerOne  = '‌' // zero width non-joiner, bit 1
	Delimiter  = '‍' // zero width joiner, byte separator
)

// IsMarker reports whether r belongs to the invisible channel.
func IsMarker(r rune) bool {
	return r == MarkerZero || r == MarkerOne || r == Delimiter
}

// AbsentError reports that a scanned stream contains no watermark.
type AbsentError struct{}

func (*AbsentError) Error() string {
	return "watermark: no watermark found in document"
}

// Encode serializes the record to its compact form and maps it to the
// invisible channel: every payload byte becomes eight marker runes,
// most significant bit first, with a delimiter between byte groups.
func Encode(r Record) (string, error) {
	payload, err := marshalRecord(r)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(payload) * 9 * 3) // 9 runes per byte, 3 bytes per rune in UTF-8
	for i, c := range payload {
		if i > 0 {
			b.WriteRune(Delimiter)
		}
		for bit := 7; bit >= 0; bit-- {
			if c>>uint(bit)&1 == 1 {
				b.WriteRune(MarkerOne)
			} else {
				b.WriteRune(MarkerZero)
			}
		}
	}
	return b.String(), nil
}

// Decode scans a marker stream back into a record. Delimiters are
// skipped, the two bit markers are collected into bytes, and scanning
// stops at the first foreign rune after bits have been seen. A foreign
// rune before any marker, or no markers at all, means the document
// carries no watermark.
func Decode(stream string) (Record, error) {
	var payload []byte
	var cur byte
	bits := 0
	started := false

scan:
	for _, r := range stream {
		switch r {
		case MarkerZero:
			cur <<= 1
			bits++
		case MarkerOne:
			cur = cur<<1 | 1
			bits++
		case Delimiter:
			started = true
			continue
		default:
			if !started {
				return Record{}, &AbsentError{}
			}
			break scan
		}
		started = true
		if bits == 8 {
			payload = append(payload, cur)
			cur, bits = 0, 0
		}
	}

	if len(payload) == 0 {
		return Record{}, &AbsentError{}
	}
	return unmarshalRecord(payload)
}
