package container

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is one element of a parsed markup tree. Names and attributes are
// kept verbatim, prefixes included, so a document round-trips without
// namespace rewriting. Character data is represented as nameless child
// nodes, which preserves mixed-content ordering. The tree is an owned,
// mutable in-memory structure scoped to a single call.
type Node struct {
	Name     string // empty for character data nodes
	Attrs    []Attr
	Children []*Node
	Text     string // set on character data nodes only
}

// Attr is a verbatim name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

// Local returns the element name without its namespace prefix.
func (n *Node) Local() string {
	if i := strings.IndexByte(n.Name, ':'); i >= 0 {
		return n.Name[i+1:]
	}
	return n.Name
}

// InnerText concatenates the character data directly under n.
func (n *Node) InnerText() string {
	var b strings.Builder
	for _, c := range n.Children {
		if c.Name == "" {
			b.WriteString(c.Text)
		}
	}
	return b.String()
}

// AppendText adds character data at the end of n's content.
func (n *Node) AppendText(s string) {
	if len(n.Children) > 0 {
		if last := n.Children[len(n.Children)-1]; last.Name == "" {
			last.Text += s
			return
		}
	}
	n.Children = append(n.Children, &Node{Text: s})
}

// hasElementChildren reports whether n contains nested elements.
func (n *Node) hasElementChildren() bool {
	for _, c := range n.Children {
		if c.Name != "" {
			return true
		}
	}
	return false
}

// parseXML builds a tree from a well-formed XML document, returning the
// root element and the document prolog (declaration and any leading
// processing instructions) verbatim.
func parseXML(data []byte) (*Node, string, error) {
	p := &xmlParser{src: string(data)}
	prolog := p.readProlog()
	root, err := p.readElement()
	if err != nil {
		return nil, "", err
	}
	return root, prolog, nil
}

type xmlParser struct {
	src string
	pos int
}

func (p *xmlParser) errf(format string, args ...any) error {
	return fmt.Errorf("markup offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *xmlParser) readProlog() string {
	start := p.pos
	for {
		p.skipSpace()
		if strings.HasPrefix(p.src[p.pos:], "<?") {
			if end := strings.Index(p.src[p.pos:], "?>"); end >= 0 {
				p.pos += end + 2
				continue
			}
		}
		if strings.HasPrefix(p.src[p.pos:], "<!--") {
			if end := strings.Index(p.src[p.pos:], "-->"); end >= 0 {
				p.pos += end + 3
				continue
			}
		}
		if strings.HasPrefix(p.src[p.pos:], "<!DOCTYPE") {
			if end := strings.IndexByte(p.src[p.pos:], '>'); end >= 0 {
				p.pos += end + 1
				continue
			}
		}
		return p.src[start:p.pos]
	}
}

func (p *xmlParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

func (p *xmlParser) readElement() (*Node, error) {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '<' {
		return nil, p.errf("expected element start")
	}
	p.pos++
	name := p.readName()
	if name == "" {
		return nil, p.errf("missing element name")
	}
	n := &Node{Name: name}

	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errf("unterminated start tag <%s", name)
		}
		if strings.HasPrefix(p.src[p.pos:], "/>") {
			p.pos += 2
			return n, nil
		}
		if p.src[p.pos] == '>' {
			p.pos++
			if err := p.readContent(n); err != nil {
				return nil, err
			}
			return n, nil
		}
		attr, err := p.readAttr()
		if err != nil {
			return nil, err
		}
		n.Attrs = append(n.Attrs, attr)
	}
}

func (p *xmlParser) readContent(n *Node) error {
	for {
		if p.pos >= len(p.src) {
			return p.errf("unterminated element <%s>", n.Name)
		}
		if p.src[p.pos] == '<' {
			if strings.HasPrefix(p.src[p.pos:], "</") {
				p.pos += 2
				name := p.readName()
				p.skipSpace()
				if p.pos >= len(p.src) || p.src[p.pos] != '>' {
					return p.errf("malformed end tag </%s", name)
				}
				p.pos++
				if name != n.Name {
					return p.errf("end tag </%s> does not close <%s>", name, n.Name)
				}
				return nil
			}
			if strings.HasPrefix(p.src[p.pos:], "<!--") {
				end := strings.Index(p.src[p.pos:], "-->")
				if end < 0 {
					return p.errf("unterminated comment")
				}
				p.pos += end + 3
				continue
			}
			child, err := p.readElement()
			if err != nil {
				return err
			}
			n.Children = append(n.Children, child)
			continue
		}
		end := strings.IndexByte(p.src[p.pos:], '<')
		if end < 0 {
			return p.errf("unterminated element <%s>", n.Name)
		}
		raw := p.src[p.pos : p.pos+end]
		p.pos += end
		text, err := unescapeXML(raw)
		if err != nil {
			return err
		}
		n.Children = append(n.Children, &Node{Text: text})
	}
}

func (p *xmlParser) readName() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '>' || c == '/' || c == '=' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *xmlParser) readAttr() (Attr, error) {
	name := p.readName()
	if name == "" {
		return Attr{}, p.errf("malformed attribute")
	}
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '=' {
		return Attr{}, p.errf("attribute %s missing value", name)
	}
	p.pos++
	p.skipSpace()
	if p.pos >= len(p.src) || (p.src[p.pos] != '"' && p.src[p.pos] != '\'') {
		return Attr{}, p.errf("attribute %s value not quoted", name)
	}
	quote := p.src[p.pos]
	p.pos++
	end := strings.IndexByte(p.src[p.pos:], quote)
	if end < 0 {
		return Attr{}, p.errf("attribute %s value unterminated", name)
	}
	raw := p.src[p.pos : p.pos+end]
	p.pos += end + 1
	val, err := unescapeXML(raw)
	if err != nil {
		return Attr{}, err
	}
	return Attr{Name: name, Value: val}, nil
}

// renderXML serializes the tree back to markup, prefixing the given
// prolog verbatim.
func renderXML(root *Node, prolog string) string {
	var b strings.Builder
	b.WriteString(prolog)
	writeNode(&b, root)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	if n.Name == "" {
		b.WriteString(escapeXML(n.Text))
		return
	}
	b.WriteByte('<')
	b.WriteString(n.Name)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(a.Value))
		b.WriteByte('"')
	}
	if len(n.Children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range n.Children {
		writeNode(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteByte('>')
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var attrEscaper = strings.NewReplacer(
	"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
)

func escapeXML(s string) string { return textEscaper.Replace(s) }

func escapeAttr(s string) string { return attrEscaper.Replace(s) }

func unescapeXML(s string) (string, error) {
	if !strings.ContainsRune(s, '&') {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			return "", fmt.Errorf("unterminated entity in %q", s)
		}
		ent := s[i+1 : i+end]
		switch ent {
		case "amp":
			b.WriteByte('&')
		case "lt":
			b.WriteByte('<')
		case "gt":
			b.WriteByte('>')
		case "quot":
			b.WriteByte('"')
		case "apos":
			b.WriteByte('\'')
		default:
			if len(ent) > 1 && ent[0] == '#' {
				numeric := ent[1:]
				base := 10
				if numeric[0] == 'x' || numeric[0] == 'X' {
					numeric = numeric[1:]
					base = 16
				}
				v, err := strconv.ParseInt(numeric, base, 32)
				if err != nil {
					return "", fmt.Errorf("bad numeric entity &%s;", ent)
				}
				b.WriteRune(rune(v))
			} else {
				return "", fmt.Errorf("unknown entity &%s;", ent)
			}
		}
		i += end + 1
	}
	return b.String(), nil
}
