package container

import "testing"

const sampleDoc = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:document xmlns:w="` + wordNamespace + `">` +
	`<w:body>` +
	`<w:p><w:r><w:t xml:space="preserve">Hello &amp; &lt;World&gt;</w:t></w:r></w:p>` +
	`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr>` +
	`</w:body>` +
	`</w:document>`

func TestParseRenderRoundTrip(t *testing.T) {
	root, prolog, err := parseXML([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parseXML: %v", err)
	}
	if root.Name != "w:document" {
		t.Errorf("root = %q, want w:document", root.Name)
	}
	if got := renderXML(root, prolog); got != sampleDoc {
		t.Errorf("render mismatch:\n got  %s\n want %s", got, sampleDoc)
	}
}

func TestParseResolvesEntities(t *testing.T) {
	root, _, err := parseXML([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parseXML: %v", err)
	}
	tNode := findLocal(root, "t")
	if tNode == nil {
		t.Fatal("text node not found")
	}
	if got := tNode.InnerText(); got != "Hello & <World>" {
		t.Errorf("InnerText = %q, want %q", got, "Hello & <World>")
	}
	if len(tNode.Attrs) != 1 || tNode.Attrs[0].Name != "xml:space" || tNode.Attrs[0].Value != "preserve" {
		t.Errorf("attributes parsed as %v", tNode.Attrs)
	}
}

func TestParseNumericEntity(t *testing.T) {
	root, _, err := parseXML([]byte(`<a>&#65;&#x42;</a>`))
	if err != nil {
		t.Fatalf("parseXML: %v", err)
	}
	if got := root.InnerText(); got != "AB" {
		t.Errorf("numeric entities decoded to %q, want AB", got)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := []string{
		`<a><b></a>`,     // mismatched close
		`<a`,             // unterminated start tag
		`<a>text`,        // missing close
		`<a b=c></a>`,    // unquoted attribute
		`<a>&bogus;</a>`, // unknown entity
		`plain text`,     // no element at all
	}
	for _, c := range cases {
		if _, _, err := parseXML([]byte(c)); err == nil {
			t.Errorf("parseXML(%q) succeeded, want error", c)
		}
	}
}

func TestAppendTextMergesWithTrailingData(t *testing.T) {
	n := &Node{Name: "t"}
	n.AppendText("one")
	n.AppendText(" two")
	if len(n.Children) != 1 {
		t.Fatalf("got %d children, want 1 merged data node", len(n.Children))
	}
	if n.InnerText() != "one two" {
		t.Errorf("InnerText = %q", n.InnerText())
	}
}

func TestNamespacePrefix(t *testing.T) {
	root, _, err := parseXML([]byte(`<doc xmlns:x="` + wordNamespace + `"><x:body/></doc>`))
	if err != nil {
		t.Fatalf("parseXML: %v", err)
	}
	if got := namespacePrefix(root); got != "x:" {
		t.Errorf("namespacePrefix = %q, want x:", got)
	}
	plain, _, err := parseXML([]byte(`<doc/>`))
	if err != nil {
		t.Fatalf("parseXML: %v", err)
	}
	if got := namespacePrefix(plain); got != "w:" {
		t.Errorf("default prefix = %q, want w:", got)
	}
}
