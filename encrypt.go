package vaultmark

import (
	"fmt"

	"github.com/vaultmark/vaultmark/container"
	"github.com/vaultmark/vaultmark/fingerprint"
	"github.com/vaultmark/vaultmark/internal/hashutil"
	"github.com/vaultmark/vaultmark/vault"
	"github.com/vaultmark/vaultmark/watermark"
)

// Encrypt binds the fingerprint to the document and returns the secured
// artifact. Any stage failure aborts the pipeline with a typed error;
// no partial artifact is ever returned. PDF sources are re-packaged as
// plain text, since only textual content is round-tripped.
func (p *Pipeline) Encrypt(fingerprintImage []byte, doc *Document) (*SecuredArtifact, error) {
	minutiae, err := fingerprint.Extract(fingerprintImage)
	if err != nil {
		return nil, err
	}
	p.log.Debug().Int("minutiae", len(minutiae)).Msg("fingerprint processed")

	v, err := vault.Generate(p.rnd, minutiae)
	if err != nil {
		return nil, err
	}
	p.log.Debug().Int("points", len(v.Points)).Msg("vault generated")

	text, err := doc.Text()
	if err != nil {
		return nil, err
	}

	record := watermark.Record{
		IdentityHash: fingerprint.Hash(minutiae),
		VaultSecret:  v.Secret,
		Timestamp:    p.now().UnixMilli(),
		ContentHash:  watermark.SomeContentHash(hashutil.ContentHash(text)),
	}
	stream, err := watermark.Encode(record)
	if err != nil {
		return nil, err
	}
	p.log.Debug().
		Str("identity", record.IdentityHash).
		Str("content", record.ContentHash.Value).
		Msg("watermark assembled")

	switch doc.format {
	case FormatWord:
		data, err := container.EmbedPackage(p.rnd, doc.data, text, stream)
		if err != nil {
			return nil, err
		}
		p.log.Debug().Int("bytes", len(data)).Msg("package sealed")
		return &SecuredArtifact{Data: data, Format: FormatWord}, nil
	case FormatText, FormatPDF:
		out, err := container.Distribute(p.rnd, text, stream)
		if err != nil {
			return nil, err
		}
		p.log.Debug().Int("bytes", len(out)).Msg("text sealed")
		return &SecuredArtifact{Data: []byte(out), Format: FormatText}, nil
	default:
		return nil, fmt.Errorf("unsupported document format %v", doc.format)
	}
}
