package export

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"research_portal/pkg/models"
)

// EncodeCSV serializes an ExtractionResult as CSV text: metadata rows, a
// header row, one row per line item with exactly one field per reporting
// period (empty string for missing values), then an analyst-notes section.
// Standard CSV quoting applies to every field.
func EncodeCSV(result *models.ExtractionResult) (string, error) {
	periods := result.Metadata.ReportingPeriods

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	records := [][]string{
		{"Company", result.Metadata.CompanyName},
		{"Currency", result.Metadata.Currency},
		{"Units", result.Metadata.Units},
		{"Statement Type", string(result.Metadata.StatementType)},
		{""},
	}

	header := make([]string, 0, len(periods)+2)
	header = append(header, "Line Item")
	header = append(header, periods...)
	header = append(header, "Notes")
	records = append(records, header)

	for i := range result.LineItems {
		item := &result.LineItems[i]
		row := make([]string, 0, len(periods)+2)
		row = append(row, item.Label())
		for _, period := range periods {
			row = append(row, csvValue(item, period))
		}
		notes := ""
		if item.Notes != nil {
			notes = *item.Notes
		}
		row = append(row, notes)
		records = append(records, row)
	}

	if len(result.AnalystNotes) > 0 {
		records = append(records, []string{""}, []string{"Analyst Notes"})
		for _, note := range result.AnalystNotes {
			records = append(records, []string{note})
		}
	}

	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("csv write: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("csv flush: %w", err)
	}
	return sb.String(), nil
}

// csvValue renders a period value for CSV: numbers in their shortest exact
// form (sign preserved, no separators), anything non-numeric as-is, missing
// or null as empty string.
func csvValue(item *models.LineItem, period string) string {
	v, ok := item.Value(period)
	if !ok {
		return ""
	}
	if num, isNum := v.(float64); isNum {
		return strconv.FormatFloat(num, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}
