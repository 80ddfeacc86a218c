// =============================================================================
// Backer CSV to Shopify Orders - Shared Types
// =============================================================================
//
// This package contains the parsed-export type shared by the csvparser and
// xlsxparser packages, kept here to avoid import cycles. Both parsers
// produce the same flat shape regardless of the source file format.
//
// =============================================================================

package types

import "strings"

// Export is one parsed backer export file.
type Export struct {
	// Headers are the cleaned column names from the header row.
	Headers []string

	// Rows holds the data rows as header -> value maps, in file order.
	Rows []map[string]string

	// SourceFile is the path the data was read from.
	SourceFile string
}

// RowCount is the number of data rows, excluding the header.
func (e *Export) RowCount() int {
	return len(e.Rows)
}

// MissingColumns returns the names from required that are absent from the
// headers. Used for field-presence validation.
func (e *Export) MissingColumns(required []string) []string {
	present := make(map[string]struct{}, len(e.Headers))
	for _, h := range e.Headers {
		present[h] = struct{}{}
	}

	var missing []string
	for _, name := range required {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// CleanHeaders trims whitespace and a leading BOM from header names.
func CleanHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimPrefix(h, "\uFEFF")
		headers[i] = strings.TrimSpace(h)
	}
	return headers
}

// IsRowEmpty reports whether every cell in the row is blank.
func IsRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// RowToRecord maps one raw row onto the headers, padding short rows with
// empty values and trimming each cell.
func RowToRecord(headers, row []string) map[string]string {
	record := make(map[string]string, len(headers))
	for i, header := range headers {
		if i < len(row) {
			record[header] = strings.TrimSpace(row[i])
		} else {
			record[header] = ""
		}
	}
	return record
}
