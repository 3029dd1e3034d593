package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"careerlaunch-backend/internal/shared/util"
)

var (
	ErrEmptyDocument      = errors.New("PDF file is empty")
	ErrNoExtractableText  = errors.New("document appears to be empty or contains no text")
	ErrUnreadableDocument = errors.New("unreadable document")
	ErrUnsupportedType    = errors.New("only PDF and DOCX files are supported")
)

// Supported reports whether fileName has an extension the extractor handles.
func Supported(fileName string) bool {
	switch util.Extension(fileName) {
	case "pdf", "docx":
		return true
	default:
		return false
	}
}

// ExtractText dispatches on the file extension.
func ExtractText(data []byte, fileName string) (string, error) {
	switch util.Extension(fileName) {
	case "pdf":
		return ExtractPDF(data)
	case "docx":
		return ExtractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, fileName)
	}
}

// ExtractPDF returns the text of every page, one page per block.
// A single page without text fails the whole document.
func ExtractPDF(data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrUnreadableDocument, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	total := reader.NumPage()
	if total == 0 {
		return "", ErrEmptyDocument
	}

	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			return "", fmt.Errorf("%w: page %d", ErrNoExtractableText, i)
		}
		fonts := make(map[string]*pdf.Font)
		for _, name := range page.Fonts() {
			f := page.Font(name)
			fonts[name] = &f
		}
		content, err := page.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrUnreadableDocument, i, err)
		}
		if strings.TrimSpace(content) == "" {
			return "", fmt.Errorf("%w: page %d", ErrNoExtractableText, i)
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n"), nil
}

// ExtractDOCX returns paragraph text from word/document.xml.
func ExtractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNoExtractableText
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}
	defer doc.Close()

	text, err := stripDocxXML(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}
	if text == "" {
		return "", ErrNoExtractableText
	}
	return text, nil
}

func stripDocxXML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString("\t")
			}
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
