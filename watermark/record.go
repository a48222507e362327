// Package watermark serializes ownership records into invisible
// zero-width character streams and back. The visible rendering of a
// watermarked document is unchanged: every payload bit is carried by a
// code point with zero rendered width.
package watermark

import (
	"encoding/json"
	"fmt"
)

// ContentHash is an optional content checksum. Records written before
// integrity checking existed carry none; those must still verify, they
// just cannot assert integrity. Present distinguishes a genuinely empty
// hash from a legacy record without one.
type ContentHash struct {
	Value   string
	Present bool
}

// SomeContentHash wraps a computed hash value.
func SomeContentHash(v string) ContentHash {
	return ContentHash{Value: v, Present: true}
}

// Record is the compact ownership record embedded into a document:
// the fingerprint identity hash, the vault secret, the embedding time
// in milliseconds since the epoch, and the content hash of the visible
// text. Records are immutable values.
type Record struct {
	IdentityHash string
	VaultSecret  string
	Timestamp    int64
	ContentHash  ContentHash
}

// compactRecord is the serialization form: single-letter field names
// keep the embedded payload short. The content hash is omitted, not
// empty, for legacy records.
type compactRecord struct {
	I string  `json:"i"`
	S string  `json:"s"`
	T int64   `json:"t"`
	C *string `json:"c,omitempty"`
}

func marshalRecord(r Record) ([]byte, error) {
	c := compactRecord{I: r.IdentityHash, S: r.VaultSecret, T: r.Timestamp}
	if r.ContentHash.Present {
		v := r.ContentHash.Value
		c.C = &v
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("watermark: marshal record: %w", err)
	}
	return data, nil
}

func unmarshalRecord(data []byte) (Record, error) {
	var c compactRecord
	if err := json.Unmarshal(data, &c); err != nil {
		return Record{}, fmt.Errorf("watermark: malformed record payload: %w", err)
	}
	r := Record{IdentityHash: c.I, VaultSecret: c.S, Timestamp: c.T}
	if c.C != nil {
		r.ContentHash = SomeContentHash(*c.C)
	}
	return r, nil
}
