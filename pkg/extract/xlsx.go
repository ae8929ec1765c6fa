package extract

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractXLSX renders each worksheet under a "## Sheet: <name>" header with
// non-empty cell values pipe-joined per row. Cell styles feed the tally.
func extractXLSX(data []byte) (string, *Tally) {
	tally := NewTally()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", tally
	}
	defer f.Close()

	var parts []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}

		parts = append(parts, "## Sheet: "+sheet)

		for rowIdx, row := range rows {
			cells := make([]string, 0, len(row))
			for colIdx, value := range row {
				if strings.TrimSpace(value) == "" {
					continue
				}
				cells = append(cells, value)
				tallyCellStyle(f, sheet, colIdx+1, rowIdx+1, tally)
			}
			if len(cells) > 0 {
				parts = append(parts, strings.Join(cells, " | "))
			}
		}
	}

	if len(parts) <= len(f.GetSheetList()) {
		// Only headers, no content rows
		return "", tally
	}

	return strings.Join(parts, "\n"), tally
}

func tallyCellStyle(f *excelize.File, sheet string, col, row int, tally *Tally) {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return
	}
	styleID, err := f.GetCellStyle(sheet, axis)
	if err != nil {
		return
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil || style.Font == nil {
		return
	}

	font := style.Font
	color := strings.ToUpper(font.Color)
	if len(color) == 8 {
		// Drop the alpha channel of ARGB values
		color = color[2:]
	}
	tally.Add(font.Family, font.Size, font.Bold, font.Italic, color)
}
