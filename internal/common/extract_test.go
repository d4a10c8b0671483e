package common

import (
	"strings"
	"testing"
)

func TestExtractResumeTextPlainText(t *testing.T) {
	text := "Python developer with 3 years of Django experience"

	for _, name := range []string{"resume.txt", "resume.md", "resume"} {
		got, err := ExtractResumeText(name, []byte(text))
		if err != nil {
			t.Errorf("ExtractResumeText(%s) failed: %v", name, err)
			continue
		}
		if got != text {
			t.Errorf("ExtractResumeText(%s) = %q, want passthrough", name, got)
		}
	}
}

func TestExtractResumeTextEmpty(t *testing.T) {
	if _, err := ExtractResumeText("resume.txt", nil); err == nil {
		t.Error("empty upload should fail")
	}
}

func TestExtractResumeTextInvalidEncoding(t *testing.T) {
	if _, err := ExtractResumeText("resume.bin", []byte{0xff, 0xfe, 0xfd}); err == nil {
		t.Error("non-UTF-8 content without a known extension should fail")
	}
}

func TestExtractResumeTextCorruptPDF(t *testing.T) {
	if _, err := ExtractResumeText("resume.pdf", []byte("not a pdf")); err == nil {
		t.Error("corrupt PDF should fail")
	}
}

func TestExtractResumeTextCorruptDocx(t *testing.T) {
	if _, err := ExtractResumeText("resume.docx", []byte("not a zip archive")); err == nil {
		t.Error("corrupt DOCX should fail")
	}
}

func TestExtractResumeTextUppercaseExtension(t *testing.T) {
	// Extension matching is case-insensitive, so an uppercase .PDF goes
	// through the PDF parser rather than the text fallback.
	if _, err := ExtractResumeText("RESUME.PDF", []byte("plain text")); err == nil {
		t.Error("uppercase .PDF with non-PDF content should fail as a PDF")
	}
}

func TestXMLTagStripping(t *testing.T) {
	content := `<w:document><w:p><w:r><w:t>Go developer</w:t></w:r></w:p></w:document>`
	stripped := strings.TrimSpace(xmlTagPattern.ReplaceAllString(content, " "))
	if !strings.Contains(stripped, "Go developer") {
		t.Errorf("stripped content = %q, want text preserved", stripped)
	}
	if strings.Contains(stripped, "<") {
		t.Errorf("stripped content still has markup: %q", stripped)
	}
}
