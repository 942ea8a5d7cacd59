package models

// StatementType distinguishes consolidated vs standalone statements.
type StatementType string

const (
	StatementConsolidated StatementType = "Consolidated"
	StatementStandalone   StatementType = "Standalone"
	StatementUnknown      StatementType = "Unknown"
)

// SectionHeadingNote is the sentinel the extraction prompt instructs the model
// to place in a line item's notes when the row only labels a group.
const SectionHeadingNote = "Section heading"

// StatementMetadata describes the statement a set of line items was lifted from.
// All fields are oracle-supplied; "Unknown"/"N/A" sentinels are allowed.
type StatementMetadata struct {
	CompanyName string `json:"company_name"`
	Currency    string `json:"currency"`
	Units       string `json:"units"`
	// ReportingPeriods are the period labels in document order. They define
	// column order for every downstream artifact.
	ReportingPeriods  []string      `json:"reporting_periods"`
	StatementType     StatementType `json:"statement_type"`
	SourceDescription string        `json:"source_description"`
}

// LineItem is one row of the extracted statement. Values may be absent or
// null for any period; both mean "not available". Values are kept exactly as
// the oracle returned them (numbers stay numbers, anything else stays as-is
// and becomes a display concern).
type LineItem struct {
	StandardLabel string                 `json:"standard_label"`
	OriginalLabel string                 `json:"original_label"`
	Depth         int                    `json:"depth"`
	IsTotal       bool                   `json:"is_total"`
	Values        map[string]interface{} `json:"values"`
	Notes         *string                `json:"notes"`
}

// Label returns the display label: original if present, else standard,
// else "Unknown".
func (li *LineItem) Label() string {
	if li.OriginalLabel != "" {
		return li.OriginalLabel
	}
	if li.StandardLabel != "" {
		return li.StandardLabel
	}
	return "Unknown"
}

// Value looks up the value for a period label. ok is false when the period is
// missing entirely or the value is JSON null.
func (li *LineItem) Value(period string) (interface{}, bool) {
	if li.Values == nil {
		return nil, false
	}
	v, present := li.Values[period]
	if !present || v == nil {
		return nil, false
	}
	return v, true
}

// HasAnyValue reports whether the item carries a non-null value for at least
// one of the given periods.
func (li *LineItem) HasAnyValue(periods []string) bool {
	for _, p := range periods {
		if _, ok := li.Value(p); ok {
			return true
		}
	}
	return false
}

// ExtractionResult is the canonical in-memory form of one extracted
// statement. It is built once per request from oracle output and never
// mutated afterwards; line item order matches the source document top to
// bottom and is preserved through every downstream stage.
type ExtractionResult struct {
	Metadata     StatementMetadata `json:"metadata"`
	LineItems    []LineItem        `json:"line_items"`
	AnalystNotes []string          `json:"analyst_notes"`
}
