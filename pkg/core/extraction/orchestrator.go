// Package extraction drives one statement extraction end to end: document
// validation, a single oracle call, response parsing/repair, role
// reconciliation, grid projection and artifact encoding.
package extraction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"research_portal/pkg/core/docs"
	"research_portal/pkg/core/export"
	"research_portal/pkg/core/grid"
	"research_portal/pkg/core/llm"
	"research_portal/pkg/core/prompt"
	"research_portal/pkg/core/statement"
	"research_portal/pkg/models"
)

const extractionTemperature = 0.1

// Result bundles the typed model with its encoded artifacts.
type Result struct {
	Data        *models.ExtractionResult
	ExcelBase64 string
	CSV         string
}

// Orchestrator runs extraction requests. It holds no per-request state:
// every Run is independent, triggers exactly one oracle call, and either
// completes or fails outright.
type Orchestrator struct {
	provider llm.Provider
	model    string
}

func NewOrchestrator(provider llm.Provider) *Orchestrator {
	return &Orchestrator{provider: provider}
}

// SetModel overrides the provider's default model for extraction calls.
func (o *Orchestrator) SetModel(model string) {
	o.model = model
}

// Run executes one extraction. All failures come back as *Error.
func (o *Orchestrator) Run(ctx context.Context, documents []docs.Document) (*Result, error) {
	if len(documents) == 0 {
		return nil, &Error{Kind: KindUnsupportedInput, Message: "No files uploaded."}
	}
	for _, doc := range documents {
		if err := docs.Validate(doc); err != nil {
			return nil, &Error{Kind: KindUnsupportedInput, Message: err.Error(), Cause: err}
		}
	}

	instruction := prompt.Get().MustGetSystemPrompt(prompt.IDExtractIncomeStatement)
	parts, err := docs.BuildParts(documents, instruction)
	if err != nil {
		return nil, &Error{Kind: KindUnsupportedInput, Message: err.Error(), Cause: err}
	}

	start := time.Now()
	fmt.Printf("[EXTRACT] Invoking oracle for %d document(s)...\n", len(documents))
	raw, err := o.provider.GenerateContent(ctx, parts, llm.Options{
		Model:       o.model,
		Temperature: extractionTemperature,
		JSONMode:    true,
	})
	if err != nil {
		fmt.Printf("[EXTRACT] Oracle call failed: %v\n", err)
		return nil, &Error{
			Kind:    KindOracleTransport,
			Message: "Failed to extract financial data. Please try again.",
			Cause:   err,
		}
	}
	fmt.Printf("[EXTRACT] Oracle responded in %v (%d chars)\n", time.Since(start), len(raw))

	result, err := statement.ParseOracleResponse(raw)
	if err != nil {
		return nil, classifyParseFailure(err)
	}
	fmt.Printf("[EXTRACT] Parsed %d line items across %d periods for %s\n",
		len(result.LineItems), len(result.Metadata.ReportingPeriods), result.Metadata.CompanyName)

	plan := grid.BuildPlan(result)

	excelB64, err := export.EncodeWorkbookBase64(plan)
	if err != nil {
		fmt.Printf("[EXTRACT] Workbook encoding failed: %v\n", err)
		return nil, &Error{
			Kind:    KindMalformedExtraction,
			Message: "Failed to generate workbook. Please try again.",
			Cause:   err,
		}
	}

	csvText, err := export.EncodeCSV(result)
	if err != nil {
		return nil, &Error{
			Kind:    KindMalformedExtraction,
			Message: "Failed to generate CSV. Please try again.",
			Cause:   err,
		}
	}

	return &Result{Data: result, ExcelBase64: excelB64, CSV: csvText}, nil
}

// classifyParseFailure converts statement-layer errors into the caller-facing
// taxonomy. The oracle's own out-of-domain verdict is passed through with its
// analyst notes; everything else is a retryable format failure.
func classifyParseFailure(err error) *Error {
	var domainErr *statement.DomainError
	if errors.As(err, &domainErr) {
		return &Error{
			Kind:         KindNotAFinancialStatement,
			Message:      domainErr.Message,
			AnalystNotes: domainErr.AnalystNotes,
			Cause:        err,
		}
	}
	return &Error{
		Kind:    KindMalformedExtraction,
		Message: "AI returned invalid data format. Please try again.",
		Cause:   err,
	}
}
