// Package prompt provides a centralized prompt library for LLM interactions.
// Built-in prompts ship with the binary; JSON files in a resources directory
// can override them at startup without code changes.
package prompt

// PromptTemplate represents a reusable prompt with metadata
type PromptTemplate struct {
	ID           string `json:"id"`            // Unique identifier (e.g., "extract.income_statement")
	Name         string `json:"name"`          // Human-readable name
	Category     string `json:"category"`      // Category (extract, analyze, ...)
	Description  string `json:"description"`   // Description of prompt purpose
	SystemPrompt string `json:"system_prompt"` // The prompt content sent to the model
	Version      string `json:"version"`       // Version for tracking changes
}

// Well-known prompt IDs.
const (
	IDExtractIncomeStatement = "extract.income_statement"
	IDAnalyzeEarningsCall    = "analyze.earnings_call"
)
