package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitscribe/internal/markdown"
)

func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			content, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(content)
		}
	}
	t.Fatalf("part %s not found in package", name)
	return ""
}

func TestBuild_PackageStructure(t *testing.T) {
	data, err := Build(markdown.Parse("# Title"))
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "[Content_Types].xml")
	assert.Contains(t, names, "_rels/.rels")
	assert.Contains(t, names, "word/document.xml")
	assert.Contains(t, names, "word/styles.xml")
}

func TestBuild_HeadingProducesStyledParagraph(t *testing.T) {
	data, err := Build(markdown.Parse("# Title"))
	require.NoError(t, err)

	doc := readPart(t, data, "word/document.xml")
	assert.Contains(t, doc, `<w:pStyle w:val="Heading1"/>`)
	assert.Contains(t, doc, `>Title</w:t>`)
}

func TestBuild_CodeBlockIsLiteralMonospace(t *testing.T) {
	data, err := Build(markdown.Parse("```\ncode here\n```"))
	require.NoError(t, err)

	doc := readPart(t, data, "word/document.xml")
	assert.Contains(t, doc, "Courier New")
	assert.Contains(t, doc, `>code here</w:t>`)
}

func TestBuild_BlankLineProducesEmptyParagraph(t *testing.T) {
	data, err := Build(markdown.Parse("a\n\nb"))
	require.NoError(t, err)

	doc := readPart(t, data, "word/document.xml")
	assert.Contains(t, doc, "<w:p/>")
	assert.Equal(t, 1, strings.Count(doc, "<w:p/>"))
}

func TestBuild_EscapesXMLSpecials(t *testing.T) {
	data, err := Build(markdown.Parse("a < b & c"))
	require.NoError(t, err)

	doc := readPart(t, data, "word/document.xml")
	assert.Contains(t, doc, "a &lt; b &amp; c")
}

func TestBuild_BlockquoteUsesQuoteStyle(t *testing.T) {
	data, err := Build(markdown.Parse("> wisdom"))
	require.NoError(t, err)

	doc := readPart(t, data, "word/document.xml")
	assert.Contains(t, doc, `<w:pStyle w:val="Quote"/>`)
	assert.Contains(t, doc, `>wisdom</w:t>`)
}
