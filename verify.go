package vaultmark

import (
	"github.com/vaultmark/vaultmark/container"
	"github.com/vaultmark/vaultmark/fingerprint"
	"github.com/vaultmark/vaultmark/internal/hashutil"
	"github.com/vaultmark/vaultmark/watermark"
)

// Verify checks whether doc carries a watermark bound to the supplied
// fingerprint and still matches its sealed content. All failure kinds
// collapse to false for the caller; the distinguishing cause is logged.
func (p *Pipeline) Verify(fingerprintImage []byte, doc *Document) bool {
	if err := p.verify(fingerprintImage, doc); err != nil {
		p.log.Debug().Err(err).Msg("verification failed")
		return false
	}
	p.log.Debug().Msg("verification succeeded")
	return true
}

// verify keeps the distinguishing failure kind: document read errors,
// watermark absence, integrity mismatch and identity mismatch each
// surface as their own type.
func (p *Pipeline) verify(fingerprintImage []byte, doc *Document) error {
	// Reading must go through the same extraction path as encryption,
	// or the content hash would diverge without any tampering.
	text, err := doc.Text()
	if err != nil {
		return err
	}

	record, err := watermark.Decode(container.Recover(text))
	if err != nil {
		return err
	}
	p.log.Debug().Int64("timestamp", record.Timestamp).Msg("watermark extracted")

	if record.ContentHash.Present {
		visible := watermark.Strip(text)
		actual := hashutil.ContentHash(visible)
		if actual != record.ContentHash.Value {
			return &IntegrityMismatchError{Expected: record.ContentHash.Value, Actual: actual}
		}
		p.log.Debug().Str("content", actual).Msg("integrity checked")
	} else {
		// Legacy record without a content hash: verification proceeds
		// but cannot assert integrity.
		p.log.Debug().Msg("record carries no content hash, integrity not asserted")
	}

	minutiae, err := fingerprint.Extract(fingerprintImage)
	if err != nil {
		return err
	}
	identity := fingerprint.Hash(minutiae)
	if identity != record.IdentityHash {
		return &IdentityMismatchError{Expected: record.IdentityHash, Actual: identity}
	}
	return nil
}
