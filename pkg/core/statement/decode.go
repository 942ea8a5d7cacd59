// Package statement converts raw oracle output into the validated
// ExtractionResult model and derives presentation roles for its line items.
// It is the only boundary where untyped data is accepted; everything
// downstream operates on the typed model.
package statement

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"

	"research_portal/pkg/models"
)

// DomainError is the oracle's own judgment that the document is out of
// domain (not a financial statement). It is trusted without further
// validation and is not retryable.
type DomainError struct {
	Message      string
	AnalystNotes []string
}

func (e *DomainError) Error() string {
	return e.Message
}

// ParseError means the oracle responded but no parsing strategy could recover
// valid JSON from the text. Retryable.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("oracle returned invalid data format: %v", e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

var fencedJSON = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// oracleEnvelope mirrors the oracle's wire shape. Pointers distinguish
// "absent" from "empty" for the required-shape check.
type oracleEnvelope struct {
	Error        string            `json:"error"`
	Metadata     *oracleMetadata   `json:"metadata"`
	LineItems    []json.RawMessage `json:"line_items"`
	AnalystNotes []string          `json:"analyst_notes"`
}

type oracleMetadata struct {
	CompanyName       string   `json:"company_name"`
	Currency          string   `json:"currency"`
	Units             string   `json:"units"`
	ReportingPeriods  []string `json:"reporting_periods"`
	StatementType     string   `json:"statement_type"`
	SourceDescription string   `json:"source_description"`
}

type oracleLineItem struct {
	StandardLabel string                 `json:"standard_label"`
	OriginalLabel string                 `json:"original_label"`
	Depth         int                    `json:"depth"`
	IsTotal       bool                   `json:"is_total"`
	Values        map[string]interface{} `json:"values"`
	Notes         *string                `json:"notes"`
}

// ParseOracleResponse turns raw oracle text into an ExtractionResult.
// Parsing strategies, in order: strict JSON, fenced code block, JSON repair,
// Hjson. Error returns are *DomainError when the oracle declared the document
// out of domain, *ParseError when nothing could be decoded, and a plain error
// for a decoded value with the wrong shape.
func ParseOracleResponse(raw string) (*models.ExtractionResult, error) {
	env, err := decodeEnvelope(raw)
	if err != nil {
		return nil, &ParseError{Cause: err}
	}

	if env.Error != "" {
		return nil, &DomainError{Message: env.Error, AnalystNotes: env.AnalystNotes}
	}

	if env.Metadata == nil || env.LineItems == nil {
		return nil, fmt.Errorf("malformed extraction: response missing metadata or line_items")
	}

	result := &models.ExtractionResult{
		Metadata:     buildMetadata(env.Metadata),
		LineItems:    make([]models.LineItem, 0, len(env.LineItems)),
		AnalystNotes: env.AnalystNotes,
	}
	if result.AnalystNotes == nil {
		result.AnalystNotes = []string{}
	}

	for i, rawItem := range env.LineItems {
		var item oracleLineItem
		if err := json.Unmarshal(rawItem, &item); err != nil {
			return nil, fmt.Errorf("malformed extraction: line item %d: %w", i, err)
		}
		result.LineItems = append(result.LineItems, buildLineItem(item))
	}

	return result, nil
}

// decodeEnvelope runs the parse ladder over the raw text.
func decodeEnvelope(raw string) (*oracleEnvelope, error) {
	trimmed := strings.TrimSpace(raw)

	var env oracleEnvelope
	strictErr := json.Unmarshal([]byte(trimmed), &env)
	if strictErr == nil {
		return &env, nil
	}

	// Fallback 1: fenced code block
	if match := fencedJSON.FindStringSubmatch(trimmed); match != nil {
		env = oracleEnvelope{}
		if err := json.Unmarshal([]byte(strings.TrimSpace(match[1])), &env); err == nil {
			return &env, nil
		}
	}

	// Fallback 2: JSON repair
	if repaired, err := jsonrepair.RepairJSON(trimmed); err == nil {
		env = oracleEnvelope{}
		if err := json.Unmarshal([]byte(repaired), &env); err == nil {
			return &env, nil
		}
	}

	// Fallback 3: Hjson (most lenient)
	var loose interface{}
	if err := hjson.Unmarshal([]byte(trimmed), &loose); err == nil {
		if normalized, err := json.Marshal(loose); err == nil {
			env = oracleEnvelope{}
			if err := json.Unmarshal(normalized, &env); err == nil {
				return &env, nil
			}
		}
	}

	return nil, strictErr
}

func buildMetadata(m *oracleMetadata) models.StatementMetadata {
	meta := models.StatementMetadata{
		CompanyName:       m.CompanyName,
		Currency:          m.Currency,
		Units:             m.Units,
		ReportingPeriods:  m.ReportingPeriods,
		StatementType:     models.StatementType(m.StatementType),
		SourceDescription: m.SourceDescription,
	}
	if meta.CompanyName == "" {
		meta.CompanyName = "Unknown"
	}
	if meta.Currency == "" {
		meta.Currency = "N/A"
	}
	if meta.Units == "" {
		meta.Units = "N/A"
	}
	if meta.StatementType == "" {
		meta.StatementType = models.StatementUnknown
	}
	if meta.ReportingPeriods == nil {
		meta.ReportingPeriods = []string{}
	}
	return meta
}

func buildLineItem(item oracleLineItem) models.LineItem {
	depth := item.Depth
	if depth < 0 {
		depth = 0
	}
	return models.LineItem{
		StandardLabel: item.StandardLabel,
		OriginalLabel: item.OriginalLabel,
		Depth:         depth,
		IsTotal:       item.IsTotal,
		Values:        item.Values,
		Notes:         item.Notes,
	}
}
