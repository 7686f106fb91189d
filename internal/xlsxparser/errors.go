// =============================================================================
// WZ Generator - Parser Errors
// =============================================================================

package xlsxparser

import "fmt"

// HeaderNotFoundError reports that none of the scanned rows of a spreadsheet
// carried all of the required column headers. It is fatal for the file; the
// aggregator records it and skips the file.
type HeaderNotFoundError struct {
	// Path is the spreadsheet that was scanned.
	Path string

	// Missing lists the canonical column keys that were not located.
	Missing []string

	// RowsScanned is how many rows were examined before giving up.
	RowsScanned int
}

// Error implements the error interface.
func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("%s: header row with columns Lp, Symbol, Nazwa, Ilość not found in first %d rows (missing: %v)",
		e.Path, e.RowsScanned, e.Missing)
}

// MalformedRowError reports a data row whose quantity cell is missing,
// non-numeric or negative. It is recoverable: the parser skips the row,
// records the error in ParseResult.SkippedRows and keeps going.
type MalformedRowError struct {
	// Path is the spreadsheet containing the row.
	Path string

	// Row is the 1-based row number in the sheet.
	Row int

	// Symbol is the symbol cell of the offending row, for error messages.
	Symbol string

	// Quantity is the raw quantity cell content that failed to parse.
	Quantity string
}

// Error implements the error interface.
func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s: row %d (symbol %q): quantity %q is not a non-negative number",
		e.Path, e.Row, e.Symbol, e.Quantity)
}
