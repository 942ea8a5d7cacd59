// Package docs prepares caller-supplied documents for oracle consumption:
// type/size validation, HTML-to-text sanitization, and content part assembly.
package docs

import (
	"fmt"
	"path/filepath"
	"strings"

	"research_portal/pkg/core/llm"
)

const (
	// MaxFileSize caps each uploaded file at 4 MB.
	MaxFileSize = 4 * 1024 * 1024

	// MaxTextBytes caps how much plain text from a single document is sent to
	// the model.
	MaxTextBytes = 500000
)

// Document is one caller-supplied file, held in memory for the duration of a
// request only.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

var allowedTypes = map[string]bool{
	"application/pdf": true,
	"text/plain":      true,
	"text/html":       true,
}

var allowedExtensions = map[string]bool{
	"pdf":  true,
	"txt":  true,
	"html": true,
	"htm":  true,
}

// Validate rejects documents with an unsupported type or over the size cap.
// The returned error message is safe to surface to the caller verbatim.
func Validate(doc Document) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(doc.Filename), "."))
	if !allowedTypes[doc.ContentType] && !allowedExtensions[ext] {
		return fmt.Errorf("unsupported file type %q in %q. Please upload PDF, TXT or HTML files only", ext, doc.Filename)
	}
	if len(doc.Data) > MaxFileSize {
		sizeMB := float64(len(doc.Data)) / (1024 * 1024)
		return fmt.Errorf("%q is too large (%.1f MB). Maximum allowed size is 4 MB per file", doc.Filename, sizeMB)
	}
	return nil
}

// IsPDF reports whether the document should be sent as inline binary data.
func (d Document) IsPDF() bool {
	if d.ContentType == "application/pdf" {
		return true
	}
	return strings.EqualFold(filepath.Ext(d.Filename), ".pdf")
}

// IsHTML reports whether the document needs sanitization to plain text.
func (d Document) IsHTML() bool {
	if d.ContentType == "text/html" {
		return true
	}
	ext := strings.ToLower(filepath.Ext(d.Filename))
	return ext == ".html" || ext == ".htm"
}

// BuildParts assembles oracle content parts: PDFs as inline binary payloads,
// text and sanitized HTML as one combined text chunk, and the instruction as
// the final part.
func BuildParts(documents []Document, instruction string) ([]llm.Part, error) {
	var parts []llm.Part
	var textChunks []string

	for _, doc := range documents {
		switch {
		case doc.IsPDF():
			parts = append(parts, llm.DocumentPart("application/pdf", doc.Data))
		case doc.IsHTML():
			text, err := HTMLToText(string(doc.Data))
			if err != nil {
				return nil, fmt.Errorf("failed to sanitize %q: %w", doc.Filename, err)
			}
			textChunks = append(textChunks, formatTextChunk(doc.Filename, text))
		default:
			textChunks = append(textChunks, formatTextChunk(doc.Filename, string(doc.Data)))
		}
	}

	if len(textChunks) > 0 {
		parts = append(parts, llm.TextPart(strings.Join(textChunks, "\n\n")))
	}
	parts = append(parts, llm.TextPart(instruction))
	return parts, nil
}

func formatTextChunk(filename, text string) string {
	if len(text) > MaxTextBytes {
		text = text[:MaxTextBytes]
	}
	return fmt.Sprintf("--- Document: %s ---\n%s", filename, text)
}
