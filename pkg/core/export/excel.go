// Package export encodes an extraction into transportable artifacts: a styled
// xlsx workbook (from the grid plan) and CSV text (straight from the model).
package export

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"research_portal/pkg/core/grid"
	"research_portal/pkg/core/statement"
)

const numberFormat = "#,##0.00"

// workbookStyles holds the style IDs registered against one file.
type workbookStyles struct {
	metaLabel   int
	metaValue   int
	header      int
	headerLabel int
	total       int
	totalNum    int
	section     int
	normal      int
	normalNum   int
	negativeNum int
	note        int
}

// EncodeWorkbookBase64 renders the grid plan into a single-sheet xlsx
// workbook and returns it base64-encoded for the JSON response.
func EncodeWorkbookBase64(plan *grid.Plan) (string, error) {
	raw, err := EncodeWorkbook(plan)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// EncodeWorkbook renders the grid plan into xlsx bytes.
func EncodeWorkbook(plan *grid.Plan) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := plan.SheetName
	if sheet == "" {
		sheet = "Financial Data"
	}
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	styles, err := registerStyles(f)
	if err != nil {
		return nil, fmt.Errorf("failed to register styles: %w", err)
	}

	row := 1

	// Metadata block
	for _, meta := range plan.MetaRows {
		setCell(f, sheet, 1, row, meta.Label, styles.metaLabel)
		setCell(f, sheet, 2, row, meta.Value, styles.metaValue)
		row++
	}

	// Blank separator
	row++

	// Header row
	headerRow := row
	setCell(f, sheet, 1, row, "Particulars", styles.headerLabel)
	for j, period := range plan.Periods {
		setCell(f, sheet, j+2, row, period, styles.header)
	}
	_ = f.SetRowHeight(sheet, row, 28)
	row++

	// Data rows
	for _, dataRow := range plan.Rows {
		labelStyle, textStyle, numStyle := rowStyles(styles, dataRow.Role)

		label := strings.Repeat("  ", dataRow.IndentLevel) + dataRow.LabelText
		setCell(f, sheet, 1, row, label, labelStyle)

		for j, cell := range dataRow.Cells {
			col := j + 2
			switch {
			case cell.Number != nil:
				style := numStyle
				if dataRow.Role == statement.RoleNormal && cell.Negative {
					style = styles.negativeNum
				}
				setCell(f, sheet, col, row, *cell.Number, style)
			case cell.Text != "":
				setCell(f, sheet, col, row, cell.Text, textStyle)
			default:
				setCell(f, sheet, col, row, "", textStyle)
			}
		}
		row++
	}

	// Analyst notes block
	if len(plan.AnalystNotes) > 0 {
		row++
		setCell(f, sheet, 1, row, "Analyst Notes", styles.metaLabel)
		row++
		for _, note := range plan.AnalystNotes {
			setCell(f, sheet, 1, row, note, styles.note)
			row++
		}
	}

	// Freeze everything above the first data row
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze header: %w", err)
	}

	for i, width := range plan.ColumnWidths {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetColWidth(sheet, colName, colName, width)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// rowStyles maps a row role to its label, text-cell and number-cell styles.
func rowStyles(styles *workbookStyles, role statement.Role) (int, int, int) {
	switch role {
	case statement.RoleTotal:
		return styles.total, styles.total, styles.totalNum
	case statement.RoleSectionHeading:
		return styles.section, styles.section, styles.section
	default:
		return styles.normal, styles.normal, styles.normalNum
	}
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}, styleID int) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	_ = f.SetCellValue(sheet, cell, value)
	if styleID != 0 {
		_ = f.SetCellStyle(sheet, cell, cell, styleID)
	}
}

func registerStyles(f *excelize.File) (*workbookStyles, error) {
	numFmt := numberFormat
	thinBorder := []excelize.Border{
		{Type: "top", Style: 1, Color: "D0D0D0"},
		{Type: "bottom", Style: 1, Color: "D0D0D0"},
		{Type: "left", Style: 1, Color: "D0D0D0"},
		{Type: "right", Style: 1, Color: "D0D0D0"},
	}

	s := &workbookStyles{}
	var err error

	// Deep purple header over white bold text, matching the portal palette.
	if s.header, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4A154B"}},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11, Family: "Calibri"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	}); err != nil {
		return nil, err
	}
	if s.headerLabel, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4A154B"}},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11, Family: "Calibri"},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Border:    thinBorder,
	}); err != nil {
		return nil, err
	}
	if s.total, err = f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F2E8F2"}},
		Font:   &excelize.Font{Bold: true, Color: "4A154B", Size: 11, Family: "Calibri"},
		Border: thinBorder,
	}); err != nil {
		return nil, err
	}
	if s.totalNum, err = f.NewStyle(&excelize.Style{
		Fill:         excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F2E8F2"}},
		Font:         &excelize.Font{Bold: true, Color: "4A154B", Size: 11, Family: "Calibri"},
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:       thinBorder,
		CustomNumFmt: &numFmt,
	}); err != nil {
		return nil, err
	}
	if s.section, err = f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFF8E1"}},
		Font:   &excelize.Font{Bold: true, Color: "5D4037", Size: 11, Family: "Calibri"},
		Border: thinBorder,
	}); err != nil {
		return nil, err
	}
	if s.normal, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 11, Family: "Calibri"},
		Border: thinBorder,
	}); err != nil {
		return nil, err
	}
	if s.normalNum, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 11, Family: "Calibri"},
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:       thinBorder,
		CustomNumFmt: &numFmt,
	}); err != nil {
		return nil, err
	}
	// Negative numbers keep their sign; red font only.
	if s.negativeNum, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 11, Family: "Calibri", Color: "C62828"},
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:       thinBorder,
		CustomNumFmt: &numFmt,
	}); err != nil {
		return nil, err
	}
	if s.metaLabel, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "4A154B", Size: 11, Family: "Calibri"},
	}); err != nil {
		return nil, err
	}
	if s.metaValue, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11, Family: "Calibri"},
	}); err != nil {
		return nil, err
	}
	if s.note, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Color: "757575", Size: 11, Family: "Calibri"},
	}); err != nil {
		return nil, err
	}

	return s, nil
}
