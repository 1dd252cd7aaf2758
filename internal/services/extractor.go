package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const extractionErrorPrefix = "Error reading PDF: "

// ResumeExtractor pulls the text layer out of an uploaded resume.
type ResumeExtractor interface {
	Extract(data []byte) string
}

type resumeExtractor struct{}

func NewResumeExtractor() ResumeExtractor {
	return &resumeExtractor{}
}

// Extract returns the concatenated per-page text of the document. It
// never fails: any decoding problem yields a diagnostic string with the
// extraction error prefix so downstream stages always receive text.
// No OCR; documents without a text layer come back as a diagnostic.
func (e *resumeExtractor) Extract(data []byte) (text string) {
	// The PDF parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text = fmt.Sprintf("%smalformed document: %v", extractionErrorPrefix, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return extractionErrorPrefix + err.Error()
	}

	var builder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		builder.WriteString(pageText)
		builder.WriteString("\n")
	}

	if strings.TrimSpace(builder.String()) == "" {
		return extractionErrorPrefix + "no text content found"
	}

	return builder.String()
}

// IsExtractionError reports whether text is a diagnostic string rather
// than extracted resume content.
func IsExtractionError(text string) bool {
	return strings.HasPrefix(text, extractionErrorPrefix)
}
