package llm

import (
	"context"
)

// Part is one piece of oracle input: either an inline binary document
// (MIMEType + Data) or plain text. A request is an ordered sequence of parts,
// typically document payloads followed by the instruction text.
type Part struct {
	Text     string
	MIMEType string
	Data     []byte
}

// TextPart builds a text-only part.
func TextPart(s string) Part {
	return Part{Text: s}
}

// DocumentPart builds an inline binary document part.
func DocumentPart(mimeType string, data []byte) Part {
	return Part{MIMEType: mimeType, Data: data}
}

// Options carries generation parameters shared by all providers.
type Options struct {
	Model       string  // provider-specific model ID; empty = provider default
	Temperature float32 // sampling temperature
	JSONMode    bool    // request strict-JSON output where the provider supports it
}

// Provider is the interface for all LLM providers. Implementations return the
// raw response text; callers own parsing and validation.
type Provider interface {
	GenerateContent(ctx context.Context, parts []Part, opts Options) (string, error)
}
