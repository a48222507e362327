// Package extract reads the visible text out of supported document
// formats. Encryption and verification must read a document through the
// same path: the content hash is computed over extracted text, so two
// different extraction methods would make untampered documents look
// modified.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	pdflib "github.com/digitorus/pdf"
	"github.com/mattetti/filebuffer"

	"github.com/vaultmark/vaultmark/container"
)

// Format identifies how a document's bytes are interpreted.
type Format int

const (
	// FormatText treats the bytes as UTF-8 plain text, verbatim.
	FormatText Format = iota
	// FormatWord is a zip-packaged word-processor document.
	FormatWord
	// FormatPDF supports reading text out of a PDF; secured artifacts
	// for PDF sources are packaged as plain text.
	FormatPDF
)

func (f Format) String() string {
	switch f {
	case FormatWord:
		return "word"
	case FormatPDF:
		return "pdf"
	default:
		return "text"
	}
}

// DetectFormat infers the document format from its file name. Callers
// with an explicit declared type can bypass this and pick a Format
// directly.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".docx":
		return FormatWord
	case ".pdf":
		return FormatPDF
	default:
		return FormatText
	}
}

// Text extracts the visible text of data according to its format.
func Text(data []byte, f Format) (string, error) {
	switch f {
	case FormatWord:
		return container.ExtractPackageText(data)
	case FormatPDF:
		return pdfText(data)
	default:
		return string(data), nil
	}
}

// pdfText concatenates the text content of every page in order. The
// underlying reader panics on some malformed files; that surfaces as an
// ordinary error here.
func pdfText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("extract: malformed pdf (%v)", r)
		}
	}()

	rdr, err := pdflib.NewReader(filebuffer.New(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("extract: open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= rdr.NumPage(); i++ {
		page := rdr.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, t := range page.Content().Text {
			b.WriteString(t.S)
		}
	}
	return b.String(), nil
}
