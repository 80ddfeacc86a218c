// =============================================================================
// Backer CSV to Shopify Orders - CSV Parser Module
// =============================================================================
//
// Parses backer CSV exports into flat records. Crowdfunding platforms are
// not consistent about their exports, so the parser tolerates:
//   - Different delimiters (comma, semicolon, tab)
//   - A UTF-8 byte order mark in front of the header row
//   - Quoted fields and rows with a deviating field count
//
// Each data row becomes a map of header -> value; downstream normalization
// addresses fields by the export's column names.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/backercamp/csv-to-shopify-orders/internal/types"
)

// Settings controls how an export file is read.
type Settings struct {
	// Delimiter separates fields. Defaults to ",".
	Delimiter string `yaml:"delimiter"`
}

// Parse reads a CSV export. A file without a header row is an error; a file
// with only a header row parses to zero records.
func Parse(filePath string, settings Settings) (*types.Export, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if settings.Delimiter != "" {
		reader.Comma = rune(settings.Delimiter[0])
	}

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("file %s has no header row", filePath)
	}

	export := &types.Export{
		Headers:    types.CleanHeaders(allRows[0]),
		SourceFile: filePath,
	}

	for _, row := range allRows[1:] {
		if types.IsRowEmpty(row) {
			continue
		}
		export.Rows = append(export.Rows, types.RowToRecord(export.Headers, row))
	}

	return export, nil
}
