package container

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/mattetti/filebuffer"

	"github.com/vaultmark/vaultmark/internal/randsrc"
)

const mainDocumentPart = "word/document.xml"

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// EmbedPackage interleaves the invisible payload into the text-bearing
// leaf nodes of a word-processor package. Candidate nodes are the leaf
// text nodes whose trimmed content has at least one alphanumeric rune;
// when none qualify, one invisible run is synthesized to hold the whole
// payload. If the package cannot be parsed or lacks its main document
// part, a minimal package is regenerated from the supplied visible
// text instead.
func EmbedPackage(src io.Reader, pkg []byte, text, payload string) ([]byte, error) {
	doc, zr, err := openMainPart(pkg)
	if err != nil {
		return regenerate(src, text, payload)
	}

	root, prolog, err := parseXML(doc)
	if err != nil {
		return regenerate(src, text, payload)
	}

	if err := embedInTree(src, root, payload); err != nil {
		return nil, err
	}

	return rewritePackage(zr, renderXML(root, prolog))
}

// ExtractPackageText unzips the package, parses the main document part
// and concatenates the content of the text-run nodes in document order,
// with one newline between paragraphs. Encryption and verification must
// both read through this function or content hashes would diverge
// without any tampering.
func ExtractPackageText(pkg []byte) (string, error) {
	doc, _, err := openMainPart(pkg)
	if err != nil {
		return "", err
	}
	root, _, err := parseXML(doc)
	if err != nil {
		return "", &PackageFormatError{Reason: "malformed document markup", Err: err}
	}

	var b strings.Builder
	paragraphs := 0
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Name == "" {
			return
		}
		if n.Local() == "p" {
			if paragraphs > 0 {
				b.WriteString("\n")
			}
			paragraphs++
		}
		if n.Local() == "t" {
			b.WriteString(n.InnerText())
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return b.String(), nil
}

func openMainPart(pkg []byte) ([]byte, *zip.Reader, error) {
	buf := filebuffer.New(pkg)
	zr, err := zip.NewReader(buf, int64(len(pkg)))
	if err != nil {
		return nil, nil, &PackageFormatError{Reason: "not a valid package archive", Err: err}
	}
	for _, f := range zr.File {
		if f.Name != mainDocumentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, nil, &PackageFormatError{Reason: "cannot open main document part", Err: err}
		}
		defer func() { _ = rc.Close() }()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, nil, &PackageFormatError{Reason: "cannot read main document part", Err: err}
		}
		return data, zr, nil
	}
	return nil, nil, &PackageFormatError{Reason: "package is missing its main document part"}
}

// embedInTree distributes the payload over the candidate text nodes of
// a parsed document, mutating the tree in place.
func embedInTree(src io.Reader, root *Node, payload string) error {
	if payload == "" {
		return nil
	}
	candidates := collectTextNodes(root)
	if len(candidates) == 0 {
		synthesizeRun(root, payload)
		return nil
	}

	runes := []rune(payload)
	use := slotCount(len(runes), len(candidates))
	picked, err := randsrc.Sample(src, len(candidates), use)
	if err != nil {
		return fmt.Errorf("container: choose text nodes: %w", err)
	}
	chunks := chunkPayload(runes, len(picked))
	for i, idx := range picked {
		candidates[idx].AppendText(string(chunks[i]))
	}
	return nil
}

// collectTextNodes returns the text-run leaves able to carry payload:
// elements locally named "t" without nested elements whose trimmed
// content contains at least one alphanumeric rune, in document order.
func collectTextNodes(root *Node) []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Name == "" {
			return
		}
		if n.Local() == "t" && !n.hasElementChildren() {
			trimmed := strings.TrimSpace(n.InnerText())
			if strings.ContainsFunc(trimmed, func(r rune) bool {
				return unicode.IsLetter(r) || unicode.IsDigit(r)
			}) {
				out = append(out, n)
			}
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}

// synthesizeRun appends an invisible paragraph/run/text node carrying
// the whole payload. The section properties node, when present, stays
// last as the format requires.
func synthesizeRun(root *Node, payload string) {
	prefix := namespacePrefix(root)
	t := &Node{Name: prefix + "t", Attrs: []Attr{{Name: "xml:space", Value: "preserve"}}}
	t.AppendText(payload)
	r := &Node{Name: prefix + "r", Children: []*Node{t}}
	p := &Node{Name: prefix + "p", Children: []*Node{r}}

	body := findLocal(root, "body")
	if body == nil {
		root.Children = append(root.Children, p)
		return
	}
	if n := len(body.Children); n > 0 && body.Children[n-1].Local() == "sectPr" {
		body.Children = append(body.Children[:n-1], p, body.Children[n-1])
		return
	}
	body.Children = append(body.Children, p)
}

// namespacePrefix recovers the prefix bound to the wordprocessing
// namespace on the root element, defaulting to "w:".
func namespacePrefix(root *Node) string {
	for _, a := range root.Attrs {
		if a.Value == wordNamespace && strings.HasPrefix(a.Name, "xmlns:") {
			return strings.TrimPrefix(a.Name, "xmlns:") + ":"
		}
		if a.Value == wordNamespace && a.Name == "xmlns" {
			return ""
		}
	}
	return "w:"
}

func findLocal(n *Node, local string) *Node {
	if n.Name != "" && n.Local() == local {
		return n
	}
	for _, c := range n.Children {
		if found := findLocal(c, local); found != nil {
			return found
		}
	}
	return nil
}

// rewritePackage copies every archive entry verbatim except the main
// document part, which is replaced with the modified markup.
func rewritePackage(zr *zip.Reader, document string) ([]byte, error) {
	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, f := range zr.File {
		if f.Name == mainDocumentPart {
			w, err := zw.Create(f.Name)
			if err != nil {
				return nil, fmt.Errorf("container: rewrite package: %w", err)
			}
			if _, err := io.WriteString(w, document); err != nil {
				return nil, fmt.Errorf("container: rewrite package: %w", err)
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("container: copy package entry %s: %w", f.Name, err)
		}
		w, err := zw.Create(f.Name)
		if err != nil {
			_ = rc.Close()
			return nil, fmt.Errorf("container: copy package entry %s: %w", f.Name, err)
		}
		if _, err := io.Copy(w, rc); err != nil {
			_ = rc.Close()
			return nil, fmt.Errorf("container: copy package entry %s: %w", f.Name, err)
		}
		_ = rc.Close()
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("container: finalize package: %w", err)
	}
	return out.Bytes(), nil
}

func regenerate(src io.Reader, text, payload string) ([]byte, error) {
	distributed, err := Distribute(src, text, payload)
	if err != nil {
		return nil, err
	}
	return BuildPackage(distributed)
}
