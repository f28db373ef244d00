// Package docx writes minimal OOXML word-processing documents. It builds the
// package zip (content types, relationships, styles, document body) directly
// with archive/zip and escaped XML, which covers the paragraph-and-heading
// subset generated documentation needs.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"gitscribe/internal/markdown"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

// Build renders a parsed Markdown node sequence into a DOCX byte slice.
// Headings map to Heading1-6 styles, code block lines to monospace
// paragraphs, blockquotes to the Quote style, blank lines to empty
// paragraphs, and everything else to plain paragraphs.
func Build(nodes []markdown.Node) ([]byte, error) {
	var body strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case markdown.KindHeading:
			writeStyledParagraph(&body, fmt.Sprintf("Heading%d", n.Level), n.Text, false)
		case markdown.KindCodeBlock:
			for _, line := range n.Lines {
				writeStyledParagraph(&body, "", line, true)
			}
		case markdown.KindBlockquote:
			writeStyledParagraph(&body, "Quote", n.Text, false)
		case markdown.KindBlank:
			body.WriteString("<w:p/>")
		case markdown.KindParagraph:
			writeStyledParagraph(&body, "", n.Text, false)
		}
	}

	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body.String() + `</w:body></w:document>`

	var out bytes.Buffer
	w := zip.NewWriter(&out)
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", rootRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML()},
		{"word/document.xml", documentXML},
	}
	for _, p := range parts {
		f, err := w.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := f.Write([]byte(p.content)); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close package: %w", err)
	}
	return out.Bytes(), nil
}

func writeStyledParagraph(b *strings.Builder, style, text string, monospace bool) {
	b.WriteString("<w:p>")
	if style != "" {
		fmt.Fprintf(b, `<w:pPr><w:pStyle w:val="%s"/></w:pPr>`, style)
	}
	b.WriteString("<w:r>")
	if monospace {
		b.WriteString(`<w:rPr><w:rFonts w:ascii="Courier New" w:hAnsi="Courier New"/></w:rPr>`)
	}
	fmt.Fprintf(b, `<w:t xml:space="preserve">%s</w:t>`, escape(text))
	b.WriteString("</w:r></w:p>")
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// stylesXML declares the heading and quote styles the body references.
func stylesXML() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)

	// Heading sizes in half-points, largest first.
	sizes := []int{48, 40, 34, 30, 26, 24}
	for i, sz := range sizes {
		fmt.Fprintf(&b,
			`<w:style w:type="paragraph" w:styleId="Heading%d">`+
				`<w:name w:val="heading %d"/>`+
				`<w:pPr><w:spacing w:before="240" w:after="120"/></w:pPr>`+
				`<w:rPr><w:b/><w:sz w:val="%d"/></w:rPr>`+
				`</w:style>`, i+1, i+1, sz)
	}
	b.WriteString(
		`<w:style w:type="paragraph" w:styleId="Quote">` +
			`<w:name w:val="Quote"/>` +
			`<w:pPr><w:ind w:left="720"/></w:pPr>` +
			`<w:rPr><w:i/><w:color w:val="57606A"/></w:rPr>` +
			`</w:style>`)
	b.WriteString(`</w:styles>`)
	return b.String()
}
