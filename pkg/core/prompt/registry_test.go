package prompt

import (
	"strings"
	"testing"
)

func TestBuiltinsRegistered(t *testing.T) {
	r := Get()

	for _, id := range []string{IDExtractIncomeStatement, IDAnalyzeEarningsCall} {
		text, err := r.GetSystemPrompt(id)
		if err != nil {
			t.Fatalf("builtin %s missing: %v", id, err)
		}
		if len(text) < 100 {
			t.Errorf("builtin %s looks truncated (%d chars)", id, len(text))
		}
	}
}

func TestExtractionPromptContract(t *testing.T) {
	text := Get().MustGetSystemPrompt(IDExtractIncomeStatement)

	// The downstream parser depends on these field names.
	for _, required := range []string{"metadata", "line_items", "standard_label", "original_label", "depth", "is_total", "analyst_notes", "Section heading"} {
		if !strings.Contains(text, required) {
			t.Errorf("extraction prompt missing %q", required)
		}
	}
}

func TestRegisterOverride(t *testing.T) {
	r := Get()
	original := r.MustGetSystemPrompt(IDAnalyzeEarningsCall)
	defer r.Register(&PromptTemplate{ID: IDAnalyzeEarningsCall, SystemPrompt: original})

	if err := r.Register(&PromptTemplate{ID: IDAnalyzeEarningsCall, SystemPrompt: "custom"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if r.MustGetSystemPrompt(IDAnalyzeEarningsCall) != "custom" {
		t.Error("override not applied")
	}
}

func TestRegisterEmptyID(t *testing.T) {
	if err := Get().Register(&PromptTemplate{SystemPrompt: "x"}); err == nil {
		t.Error("empty ID must be rejected")
	}
}
