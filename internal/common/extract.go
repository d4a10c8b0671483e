package common

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"jobmatch/internal/errors"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// ExtractResumeText converts an uploaded resume into plain text. The format
// is chosen by file extension: .pdf and .docx are parsed, anything else is
// treated as UTF-8 text.
func ExtractResumeText(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.NewValidationError(errors.ErrCodeInvalidRequest, "uploaded resume is empty", nil)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDFText(data)
	case ".docx":
		return extractDocxText(data)
	default:
		if !utf8.Valid(data) {
			return "", errors.NewValidationError(errors.ErrCodeInvalidFormat,
				fmt.Sprintf("unsupported resume format: %s", filepath.Ext(filename)), nil)
		}
		return string(data), nil
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewDataError(errors.ErrCodeInvalidFormat, "failed to read PDF resume", err)
	}

	var textBuilder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := strings.TrimSpace(textBuilder.String())
	if text == "" {
		return "", errors.NewDataError(errors.ErrCodeInvalidFormat, "PDF resume contains no extractable text", nil)
	}
	return text, nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewDataError(errors.ErrCodeInvalidFormat, "failed to parse DOCX resume", err)
	}
	defer func() { _ = doc.Close() }()

	// GetContent returns the raw document XML; strip the markup
	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	text := strings.TrimSpace(xmlTagPattern.ReplaceAllString(content, " "))
	if text == "" {
		return "", errors.NewDataError(errors.ErrCodeInvalidFormat, "DOCX resume contains no extractable text", nil)
	}
	return text, nil
}
