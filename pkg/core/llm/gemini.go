package llm

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// GeminiProvider implements the Provider interface for Google's Gemini models
// via the official GenAI SDK. It is the only provider that accepts inline PDF
// document parts.
type GeminiProvider struct {
	Model string // e.g. "gemini-2.5-flash"
}

var _ Provider = (*GeminiProvider)(nil)

// GenerateContent sends a generateContent request carrying the given parts.
func (p *GeminiProvider) GenerateContent(ctx context.Context, parts []Part, opts Options) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	model := opts.Model
	if model == "" {
		model = p.Model
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create GenAI client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(opts.Temperature),
	}
	if opts.JSONMode {
		config.ResponseMIMEType = "application/json"
	}

	genParts := make([]*genai.Part, 0, len(parts))
	for _, part := range parts {
		if len(part.Data) > 0 {
			genParts = append(genParts, &genai.Part{
				InlineData: &genai.Blob{MIMEType: part.MIMEType, Data: part.Data},
			})
		} else {
			genParts = append(genParts, &genai.Part{Text: part.Text})
		}
	}
	contents := []*genai.Content{{Role: genai.RoleUser, Parts: genParts}}

	result, err := client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	return result.Text(), nil
}
