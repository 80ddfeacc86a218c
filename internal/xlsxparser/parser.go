// =============================================================================
// Backer CSV to Shopify Orders - XLSX Parser Module
// =============================================================================
//
// Parses XLSX backer exports into the same flat records the CSV parser
// produces. Kickstarter and Indiegogo both offer spreadsheet downloads, and
// operators regularly have only the .xlsx variant of the backer list.
//
// Only the first sheet is read: one header row followed by data rows, the
// same layout as the CSV export.
//
// =============================================================================

package xlsxparser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/backercamp/csv-to-shopify-orders/internal/types"
)

// Parse reads the first sheet of an XLSX export.
func Parse(filePath string) (*types.Export, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("file %s has no sheets", filePath)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file %s has no header row", filePath)
	}

	export := &types.Export{
		Headers:    types.CleanHeaders(rows[0]),
		SourceFile: filePath,
	}

	for _, row := range rows[1:] {
		if types.IsRowEmpty(row) {
			continue
		}
		export.Rows = append(export.Rows, types.RowToRecord(export.Headers, row))
	}

	return export, nil
}
