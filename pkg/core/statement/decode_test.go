package statement

import (
	"errors"
	"strings"
	"testing"

	"research_portal/pkg/models"
)

const validResponse = `{
	"metadata": {
		"company_name": "Acme Industries Ltd",
		"currency": "INR",
		"units": "Lakhs",
		"reporting_periods": ["FY2024", "FY2023"],
		"statement_type": "Consolidated",
		"source_description": "Annual report"
	},
	"line_items": [
		{"standard_label": "Revenue from Operations", "original_label": "Revenue from operations", "depth": 0, "is_total": false, "values": {"FY2024": 5000.5, "FY2023": 4200}, "notes": null},
		{"standard_label": "Total Income", "original_label": "Total Income", "depth": 0, "is_total": true, "values": {"FY2024": 5100, "FY2023": 4300}, "notes": null}
	],
	"analyst_notes": ["Figures restated for FY2023."]
}`

func TestParseOracleResponse_Strict(t *testing.T) {
	result, err := ParseOracleResponse(validResponse)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if result.Metadata.CompanyName != "Acme Industries Ltd" {
		t.Errorf("company = %q", result.Metadata.CompanyName)
	}
	if result.Metadata.StatementType != models.StatementConsolidated {
		t.Errorf("statement type = %q", result.Metadata.StatementType)
	}
	if len(result.LineItems) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(result.LineItems))
	}
	if v, ok := result.LineItems[0].Value("FY2024"); !ok || v.(float64) != 5000.5 {
		t.Errorf("FY2024 value = %v (ok=%v)", v, ok)
	}
	if !result.LineItems[1].IsTotal {
		t.Error("second item should be a total")
	}
	if len(result.AnalystNotes) != 1 {
		t.Errorf("analyst notes = %v", result.AnalystNotes)
	}
}

func TestParseOracleResponse_FencedBlock(t *testing.T) {
	raw := "Here is the extraction you asked for:\n```json\n" + validResponse + "\n```\nLet me know if you need anything else."
	result, err := ParseOracleResponse(raw)
	if err != nil {
		t.Fatalf("expected fenced recovery, got %v", err)
	}
	if len(result.LineItems) != 2 {
		t.Errorf("expected 2 line items, got %d", len(result.LineItems))
	}
}

func TestParseOracleResponse_RepairTrailingComma(t *testing.T) {
	raw := `{"metadata": {"company_name": "Acme", "reporting_periods": ["FY2024"],}, "line_items": [{"standard_label": "Revenue", "values": {"FY2024": 10},}], "analyst_notes": []}`
	result, err := ParseOracleResponse(raw)
	if err != nil {
		t.Fatalf("expected repair recovery, got %v", err)
	}
	if result.LineItems[0].StandardLabel != "Revenue" {
		t.Errorf("label = %q", result.LineItems[0].StandardLabel)
	}
}

func TestParseOracleResponse_DomainError(t *testing.T) {
	raw := `{"error": "Not a financial statement", "analyst_notes": ["Document appears to be a shipping invoice."]}`
	_, err := ParseOracleResponse(raw)
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	if domainErr.Message != "Not a financial statement" {
		t.Errorf("message = %q", domainErr.Message)
	}
	if len(domainErr.AnalystNotes) != 1 || !strings.Contains(domainErr.AnalystNotes[0], "invoice") {
		t.Errorf("notes = %v", domainErr.AnalystNotes)
	}
}

func TestParseOracleResponse_Garbage(t *testing.T) {
	_, err := ParseOracleResponse("I could not process that document, sorry.")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestParseOracleResponse_MissingShape(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no metadata", `{"line_items": []}`},
		{"no line items", `{"metadata": {"company_name": "Acme"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseOracleResponse(tc.raw)
			if err == nil {
				t.Fatal("expected error")
			}
			var parseErr *ParseError
			if errors.As(err, &parseErr) {
				t.Errorf("shape failure should not be a ParseError: %v", err)
			}
			if !strings.Contains(err.Error(), "malformed extraction") {
				t.Errorf("unexpected message: %v", err)
			}
		})
	}
}

func TestParseOracleResponse_Defaults(t *testing.T) {
	raw := `{"metadata": {}, "line_items": []}`
	result, err := ParseOracleResponse(raw)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	meta := result.Metadata
	if meta.CompanyName != "Unknown" || meta.Currency != "N/A" || meta.Units != "N/A" {
		t.Errorf("defaults not applied: %+v", meta)
	}
	if meta.StatementType != models.StatementUnknown {
		t.Errorf("statement type = %q", meta.StatementType)
	}
	if meta.ReportingPeriods == nil || result.AnalystNotes == nil {
		t.Error("slices should be empty, not nil")
	}
}

func TestParseOracleResponse_NegativeDepthClamped(t *testing.T) {
	raw := `{"metadata": {"reporting_periods": []}, "line_items": [{"standard_label": "Revenue", "depth": -2, "values": {}}]}`
	result, err := ParseOracleResponse(raw)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if result.LineItems[0].Depth != 0 {
		t.Errorf("depth = %d, want 0", result.LineItems[0].Depth)
	}
}

func TestParseOracleResponse_NullValuePreserved(t *testing.T) {
	raw := `{"metadata": {"reporting_periods": ["FY2024", "FY2023"]}, "line_items": [{"standard_label": "Exceptional Items", "values": {"FY2024": null, "FY2023": 100}}]}`
	result, err := ParseOracleResponse(raw)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	item := result.LineItems[0]
	if _, ok := item.Value("FY2024"); ok {
		t.Error("null value should read as absent")
	}
	if v, ok := item.Value("FY2023"); !ok || v.(float64) != 100 {
		t.Errorf("FY2023 = %v (ok=%v)", v, ok)
	}
}
