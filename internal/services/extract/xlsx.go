package extract

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractXLSX renders each worksheet as a labeled block: a header line
// naming the sheet, then one tab-joined line per row. Rows that are blank
// after joining are skipped.
func extractXLSX(path string) (string, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close()

	var parts []string
	for _, sheet := range workbook.GetSheetList() {
		parts = append(parts, fmt.Sprintf("--- Sheet: %s ---", sheet))

		rows, err := workbook.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		for _, row := range rows {
			line := strings.Join(row, "\t")
			if strings.TrimSpace(line) == "" {
				continue
			}
			parts = append(parts, line)
		}
	}

	return strings.Join(parts, "\n"), nil
}
