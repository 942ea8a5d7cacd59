package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"research_portal/pkg/models"
)

func TestEncodeCSV(t *testing.T) {
	result := &models.ExtractionResult{
		Metadata: models.StatementMetadata{
			CompanyName:      "Acme Industries Ltd",
			Currency:         "INR",
			Units:            "Lakhs",
			ReportingPeriods: []string{"FY2024", "FY2023"},
			StatementType:    models.StatementConsolidated,
		},
		LineItems: []models.LineItem{
			{StandardLabel: "Revenue from Operations", Values: map[string]interface{}{"FY2024": 5000.5, "FY2023": 4200.0}},
			{StandardLabel: "Exceptional Items", Values: map[string]interface{}{"FY2023": -150.0}},
		},
		AnalystNotes: []string{"FY2023 figures restated."},
	}

	out, err := EncodeCSV(result)
	if err != nil {
		t.Fatalf("EncodeCSV: %v", err)
	}

	reader := csv.NewReader(strings.NewReader(out))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("output must round-trip through a CSV reader: %v", err)
	}

	if records[0][0] != "Company" || records[0][1] != "Acme Industries Ltd" {
		t.Errorf("first record = %v", records[0])
	}

	// The blank separator line is skipped by the reader, so the header is
	// the fifth surviving record.
	header := records[4]
	wantHeader := []string{"Line Item", "FY2024", "FY2023", "Notes"}
	if strings.Join(header, "|") != strings.Join(wantHeader, "|") {
		t.Errorf("header = %v", header)
	}

	// One field per period, empty where the item has no value.
	revenue := records[5]
	if revenue[1] != "5000.5" || revenue[2] != "4200" {
		t.Errorf("revenue row = %v", revenue)
	}
	exceptional := records[6]
	if exceptional[1] != "" || exceptional[2] != "-150" {
		t.Errorf("exceptional row = %v", exceptional)
	}

	if !strings.Contains(out, "Analyst Notes") {
		t.Error("analyst notes section missing")
	}
}

func TestEncodeCSV_QuotesSpecialCharacters(t *testing.T) {
	result := &models.ExtractionResult{
		Metadata: models.StatementMetadata{
			CompanyName:      "Acme, \"The\" Company",
			ReportingPeriods: []string{"FY2024"},
		},
		LineItems: []models.LineItem{
			{OriginalLabel: "Revenue, \"Net\"", Values: map[string]interface{}{"FY2024": 1.0}},
		},
	}

	out, err := EncodeCSV(result)
	if err != nil {
		t.Fatalf("EncodeCSV: %v", err)
	}
	if !strings.Contains(out, `"Revenue, ""Net"""`) {
		t.Errorf("label not quoted correctly:\n%s", out)
	}

	reader := csv.NewReader(strings.NewReader(out))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if records[0][1] != "Acme, \"The\" Company" {
		t.Errorf("company = %q", records[0][1])
	}
}

func TestEncodeCSV_LabelFallback(t *testing.T) {
	result := &models.ExtractionResult{
		Metadata: models.StatementMetadata{ReportingPeriods: []string{"FY2024"}},
		LineItems: []models.LineItem{
			{Values: map[string]interface{}{"FY2024": 1.0}},
		},
	}
	out, err := EncodeCSV(result)
	if err != nil {
		t.Fatalf("EncodeCSV: %v", err)
	}
	if !strings.Contains(out, "Unknown") {
		t.Error("unnamed item should fall back to Unknown")
	}
}
