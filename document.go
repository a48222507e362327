// Package vaultmark binds a fingerprint to a document. Encryption
// derives a noise-tolerant secret from the fingerprint's minutiae with
// a Fuzzy Vault, serializes an ownership record (identity hash, vault
// secret, timestamp, content hash) into zero-width characters, and
// scatters that invisible channel through the document's text.
// Verification reverses the path and independently recomputes both
// hashes for comparison.
//
// Basic usage:
//
//	doc, err := vaultmark.OpenFile("contract.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p := vaultmark.New()
//	artifact, err := p.Encrypt(fingerprintPNG, doc)
//
//	ok := p.Verify(fingerprintPNG, vaultmark.NewDocument(artifact.Data, artifact.Format))
package vaultmark

import (
	"fmt"
	"os"

	"github.com/vaultmark/vaultmark/extract"
)

// Format identifies the container format of a document.
type Format = extract.Format

const (
	FormatText = extract.FormatText
	FormatWord = extract.FormatWord
	FormatPDF  = extract.FormatPDF
)

// Document is a source or secured document together with its declared
// format. It is a value consumed within a single encrypt or verify
// call; nothing is persisted across invocations.
type Document struct {
	data   []byte
	format Format
}

// NewDocument wraps raw document bytes with an explicit format.
func NewDocument(data []byte, format Format) *Document {
	return &Document{data: data, format: format}
}

// OpenFile reads a document from disk, inferring the format from the
// file extension.
func OpenFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	return NewDocument(data, extract.DetectFormat(path)), nil
}

// Bytes returns the raw document bytes.
func (d *Document) Bytes() []byte { return d.data }

// Format returns the document's container format.
func (d *Document) Format() Format { return d.format }

// Text extracts the document's visible text, invisible channel
// included if one is embedded.
func (d *Document) Text() (string, error) {
	return extract.Text(d.data, d.format)
}
