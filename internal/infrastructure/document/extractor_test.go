package document

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := []struct{ name, content string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body + `</w:body></w:document>`},
	}
	for _, f := range files {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractTXT(t *testing.T) {
	e := NewExtractor()

	text, err := e.Extract("story.TXT", []byte("\xef\xbb\xbf  The sun rose over the hill.\n"))
	require.NoError(t, err)
	assert.Equal(t, "The sun rose over the hill.", text)

	_, err = e.Extract("story.txt", []byte{0xff, 0xfe, 0xfd})
	assert.ErrorIs(t, err, ErrParse)

	_, err = e.Extract("blank.txt", []byte("  \n\t"))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestExtractDOCX(t *testing.T) {
	body := `<w:p><w:r><w:t>Chapter One</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">It was a </w:t></w:r><w:r><w:t>dark night.</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Line</w:t><w:br/><w:t>break</w:t></w:r></w:p>`

	text, err := NewExtractor().Extract("book.docx", buildDOCX(t, body))
	require.NoError(t, err)
	assert.Equal(t, "Chapter One\nIt was a dark night.\nLine\nbreak", text)
}

func TestExtractDOCXMissingBody(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("other.xml")
	require.NoError(t, err)
	_, _ = w.Write([]byte("<x/>"))
	require.NoError(t, zw.Close())

	_, err = NewExtractor().Extract("book.docx", buf.Bytes())
	assert.ErrorIs(t, err, ErrParse)
}

func TestExtractRejectsMismatchedContent(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract("fake.pdf", []byte("plain text pretending to be a pdf"))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = e.Extract("fake.docx", []byte("plain text pretending to be a docx"))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestExtractCorruptPDF(t *testing.T) {
	_, err := NewExtractor().Extract("broken.pdf", []byte("%PDF-1.4\nnot really a pdf"))
	assert.ErrorIs(t, err, ErrParse)
}

func TestExtractUnsupportedExtension(t *testing.T) {
	_, err := NewExtractor().Extract("slides.pptx", []byte("whatever"))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = NewExtractor().Extract("noext", []byte("whatever"))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestFormatOf(t *testing.T) {
	f, ok := FormatOf("A.Pdf")
	assert.True(t, ok)
	assert.Equal(t, FormatPDF, f)

	_, ok = FormatOf("a.doc")
	assert.False(t, ok)
}
