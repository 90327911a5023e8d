// Package document 从上传的文档中提取纯文本
package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"

	"echoverse-api/pkg/metrics"
)

var (
	// ErrUnsupported 不支持的文档类型
	ErrUnsupported = errors.New("document: unsupported type")
	// ErrParse 文档内容无法解析
	ErrParse = errors.New("document: parse failed")
	// ErrEmpty 文档中没有文本
	ErrEmpty = errors.New("document: no text")
)

// Format 文档格式
type Format string

const (
	FormatTXT  Format = "txt"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Extractor 文档文本提取器
type Extractor struct{}

// NewExtractor 创建提取器
func NewExtractor() *Extractor {
	return &Extractor{}
}

// FormatOf 按扩展名判断格式
func FormatOf(filename string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return FormatTXT, true
	case ".pdf":
		return FormatPDF, true
	case ".docx":
		return FormatDOCX, true
	}
	return "", false
}

// Extract 提取文档文本，扩展名决定格式，嗅探到的类型必须一致
func (e *Extractor) Extract(filename string, data []byte) (text string, err error) {
	format, ok := FormatOf(filename)
	label := string(format)
	if !ok {
		label = "unknown"
	}
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.DocumentExtractTotal.WithLabelValues(label, status).Inc()
	}()

	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(filename))
	}
	if err := checkMIME(format, data); err != nil {
		return "", err
	}

	switch format {
	case FormatTXT:
		text, err = extractTXT(data)
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

func checkMIME(format Format, data []byte) error {
	m := mimetype.Detect(data)
	var want string
	switch format {
	case FormatPDF:
		want = "application/pdf"
	case FormatDOCX:
		want = "application/zip"
	default:
		return nil
	}
	for ; m != nil; m = m.Parent() {
		if m.Is(want) {
			return nil
		}
	}
	return fmt.Errorf("%w: content is not %s", ErrUnsupported, format)
}

func extractTXT(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: text is not valid UTF-8", ErrParse)
	}
	return string(data), nil
}

func extractPDF(data []byte) (text string, err error) {
	// 解析器遇到损坏的内容流会 panic
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: %v", ErrParse, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParse, err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrParse, i, err)
		}
		sb.WriteString(content)
	}
	return sb.String(), nil
}

// docx 正文位于 word/document.xml
const docxBody = "word/document.xml"

func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParse, err)
	}

	for _, f := range zr.File {
		if f.Name != docxBody {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrParse, err)
		}
		defer rc.Close()
		return docxParagraphs(rc)
	}
	return "", fmt.Errorf("%w: %s not found", ErrParse, docxBody)
}

// docxParagraphs 收集 w:p 段落文本，段落之间以换行分隔
func docxParagraphs(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		inPara     bool
		inText     bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrParse, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inPara = true
				current.Reset()
			case "t":
				inText = true
			case "tab":
				if inPara {
					current.WriteByte('\t')
				}
			case "br":
				if inPara {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				inPara = false
				paragraphs = append(paragraphs, current.String())
			case "t":
				inText = false
			}
		case xml.CharData:
			if inPara && inText {
				current.Write(t)
			}
		}
	}
	return strings.Join(paragraphs, "\n"), nil
}
