// Package report produces the narrative analyst report for one uploaded
// document: a fixed-section earnings-call analysis returned as markdown.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"research_portal/pkg/core/docs"
	"research_portal/pkg/core/llm"
	"research_portal/pkg/core/prompt"
)

const analysisTemperature = 0.2

// ErrUnsupportedDocument marks input-validation failures so the HTTP layer
// can answer 400 instead of 500.
var ErrUnsupportedDocument = errors.New("unsupported document")

// Service drives one analysis request: a single oracle call returning
// free-form markdown, cleaned before it reaches the caller.
type Service struct {
	provider llm.Provider
	model    string
}

func NewService(provider llm.Provider) *Service {
	return &Service{provider: provider}
}

// SetModel overrides the provider's default model for analysis calls.
func (s *Service) SetModel(model string) {
	s.model = model
}

// Analyze runs the analyst prompt over one document and returns the cleaned
// markdown report.
func (s *Service) Analyze(ctx context.Context, doc docs.Document) (string, error) {
	if err := docs.Validate(doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedDocument, err)
	}

	instruction := prompt.Get().MustGetSystemPrompt(prompt.IDAnalyzeEarningsCall)
	parts, err := docs.BuildParts([]docs.Document{doc}, instruction)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedDocument, err)
	}

	start := time.Now()
	fmt.Printf("[ANALYZE] Invoking oracle for %q...\n", doc.Filename)
	raw, err := s.provider.GenerateContent(ctx, parts, llm.Options{
		Model:       s.model,
		Temperature: analysisTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("analysis generation failed: %w", err)
	}
	fmt.Printf("[ANALYZE] Oracle responded in %v (%d chars)\n", time.Since(start), len(raw))

	cleaned := CleanMarkdown(raw)
	if !ValidateMarkdown(cleaned) {
		fmt.Printf("[WARNING] Analysis output failed markdown validation, returning as-is\n")
	}
	return cleaned, nil
}
