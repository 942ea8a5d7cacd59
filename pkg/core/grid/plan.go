// Package grid projects an ExtractionResult into a renderer-agnostic grid
// plan: ordered rows with roles, formatted cells aligned to the reporting
// periods, and usability column widths. Encoders (xlsx, others) consume the
// plan without re-deriving any statement semantics.
package grid

import (
	"fmt"
	"strconv"
	"strings"

	"research_portal/pkg/core/statement"
	"research_portal/pkg/models"
)

const (
	minColumnWidth   = 10
	maxColumnWidth   = 45
	columnPadding    = 4
	labelColumnWidth = 38
)

// Cell is one value cell. Text is the rendered form; Number is set only when
// the underlying value was numeric, so encoders can emit a real number cell.
type Cell struct {
	Text     string
	Number   *float64
	Negative bool
}

// Blank reports whether the cell holds no value.
func (c Cell) Blank() bool {
	return c.Text == "" && c.Number == nil
}

// Row is one line item projected into the grid.
type Row struct {
	LabelText   string
	IndentLevel int
	Role        statement.Role
	// Cells is aligned to Plan.Periods: exactly one cell per reporting
	// period, blank where the item has no value.
	Cells    []Cell
	NoteText string
}

// MetaRow is a key/value pair in the leading metadata block.
type MetaRow struct {
	Label string
	Value string
}

// Plan is the full grid: metadata block, header, data rows, trailing analyst
// notes, and per-column widths (label column first, then one per period).
type Plan struct {
	SheetName    string
	MetaRows     []MetaRow
	Periods      []string
	Rows         []Row
	AnalystNotes []string
	ColumnWidths []float64
}

// BuildPlan projects the result into a grid plan. Pure function: the same
// result always yields an identical plan, and the input is not modified.
// Values keyed by a period label missing from reporting_periods are omitted;
// no column is ever invented for them.
func BuildPlan(result *models.ExtractionResult) *Plan {
	periods := result.Metadata.ReportingPeriods
	roles := statement.DeriveRoles(result)

	plan := &Plan{
		SheetName: "Financial Data",
		MetaRows: []MetaRow{
			{Label: "Company", Value: result.Metadata.CompanyName},
			{Label: "Currency", Value: result.Metadata.Currency},
			{Label: "Units", Value: result.Metadata.Units},
			{Label: "Statement Type", Value: string(result.Metadata.StatementType)},
		},
		Periods:      periods,
		Rows:         make([]Row, 0, len(result.LineItems)),
		AnalystNotes: result.AnalystNotes,
	}

	for i := range result.LineItems {
		item := &result.LineItems[i]
		row := Row{
			LabelText:   item.Label(),
			IndentLevel: item.Depth,
			Role:        roles[i],
			Cells:       make([]Cell, len(periods)),
		}
		if item.Notes != nil {
			row.NoteText = *item.Notes
		}
		for j, period := range periods {
			row.Cells[j] = buildCell(item, period)
		}
		plan.Rows = append(plan.Rows, row)
	}

	plan.ColumnWidths = computeWidths(plan)
	return plan
}

func buildCell(item *models.LineItem, period string) Cell {
	v, ok := item.Value(period)
	if !ok {
		return Cell{}
	}
	if num, isNum := asFloat(v); isNum {
		return Cell{
			Text:     FormatNumber(num),
			Number:   &num,
			Negative: num < 0,
		}
	}
	// Non-numeric value in a numeric slot: passed through as text.
	return Cell{Text: fmt.Sprintf("%v", v)}
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// FormatNumber renders a value with thousands separators and two decimal
// places. Negative values keep their leading sign; parentheses notation is
// never produced.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	out := grouped.String() + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// computeWidths sizes each column from the longest rendered text it holds,
// plus padding, within min/max bounds. The label column is forced wide enough
// for indented item names.
func computeWidths(plan *Plan) []float64 {
	maxLens := make([]int, len(plan.Periods)+1)
	observe := func(col int, text string) {
		if len(text) > maxLens[col] {
			maxLens[col] = len(text)
		}
	}

	observe(0, "Particulars")
	for i, p := range plan.Periods {
		observe(i+1, p)
	}
	for _, m := range plan.MetaRows {
		observe(0, m.Label)
	}
	for _, row := range plan.Rows {
		observe(0, strings.Repeat("  ", row.IndentLevel)+row.LabelText)
		for j, cell := range row.Cells {
			observe(j+1, cell.Text)
		}
	}
	for _, note := range plan.AnalystNotes {
		observe(0, note)
	}

	widths := make([]float64, len(maxLens))
	for i, l := range maxLens {
		if l < minColumnWidth {
			l = minColumnWidth
		}
		w := l + columnPadding
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		widths[i] = float64(w)
	}
	if widths[0] < labelColumnWidth {
		widths[0] = labelColumnWidth
	}
	return widths
}
