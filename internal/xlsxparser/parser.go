// =============================================================================
// WZ Generator - Spreadsheet Item Parser
// =============================================================================
//
// This module reads one input spreadsheet and extracts typed inventory items.
// The input files come from several upstream systems, so nothing about the
// layout is assumed beyond the presence of a header row somewhere near the
// top of the first sheet:
//
//   | ...  | Lp | Symbol  | Nazwa        | Ilość | ... |
//   |------|----|---------|--------------|-------|-----|
//   |      | 1  | A1-200  | Widget       | 5     |     |
//   |      | 2  | B7-010  | Bracket      | 3     |     |
//
// Header discovery scans the first N rows for the required column names
// (case-, whitespace- and dot-tolerant), so the columns may appear in any
// order and at any position. Everything beneath the discovered header row is
// data; empty rows are skipped, rows without a symbol are skipped, and rows
// with a malformed quantity are recorded and skipped.
//
// The file is read values-only through excelize's GetRows: computed cell
// values, no formulas, no styles.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lpkonstal/wz-generator/internal/config"
	"github.com/lpkonstal/wz-generator/internal/types"
)

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult is the outcome of parsing one spreadsheet.
type ParseResult struct {
	// Path is the spreadsheet that was parsed.
	Path string

	// Items contains the extracted items, in document order.
	Items []types.Item

	// HeaderRow is the 1-based row number where the header was found.
	HeaderRow int

	// SkippedRows records every data row that was dropped because its
	// quantity cell was malformed. Recoverable per the error policy:
	// a populated list does not fail the file.
	SkippedRows []*MalformedRowError
}

// =============================================================================
// PARSER
// =============================================================================

// ParseFile opens the spreadsheet at path read-only and extracts all items
// from its first sheet.
//
// PARAMETERS:
//   - path: the path to the XLSX file.
//   - settings: parser tuning (scan limits, header synonyms).
//
// RETURNS:
//   - A ParseResult with the extracted items and any skipped rows.
//   - A *HeaderNotFoundError if no scanned row carries all required headers,
//     or a wrapped I/O error if the file cannot be opened or read.
func ParseFile(path string, settings config.ParserSettings) (*ParseResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%s: spreadsheet has no sheets", path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read rows: %w", path, err)
	}

	headerRow, columns, missing := findHeaderRow(rows, settings)
	if headerRow == 0 {
		scanned := settings.HeaderScanRows
		if len(rows) < scanned {
			scanned = len(rows)
		}
		return nil, &HeaderNotFoundError{Path: path, Missing: missing, RowsScanned: scanned}
	}

	result := &ParseResult{Path: path, HeaderRow: headerRow}

	for i := headerRow; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}

		item, rowErr := parseItemRow(path, row, i+1, columns, len(result.Items))
		if rowErr != nil {
			result.SkippedRows = append(result.SkippedRows, rowErr)
			continue
		}
		if item == nil {
			// No symbol on this row.
			continue
		}
		result.Items = append(result.Items, *item)
	}

	return result, nil
}

// =============================================================================
// HEADER DISCOVERY
// =============================================================================

// columnIndexes maps each canonical column key to its 0-based column index.
type columnIndexes map[string]int

// findHeaderRow scans the first HeaderScanRows rows for a row containing all
// four required headers within the first HeaderScanCols columns.
//
// RETURNS:
//   - The 1-based header row number, or 0 when not found.
//   - The column indexes for each canonical key.
//   - The canonical keys still missing after the scan (for error reporting).
func findHeaderRow(rows [][]string, settings config.ParserSettings) (int, columnIndexes, []string) {
	required := []string{config.KeyLineNumber, config.KeySymbol, config.KeyName, config.KeyQuantity}

	// Invert the synonym table once: normalized spelling -> canonical key.
	spellings := make(map[string]string)
	for key, names := range settings.HeaderSynonyms {
		for _, name := range names {
			spellings[normalizeHeader(name)] = key
		}
	}

	var lastMissing []string

	maxRow := settings.HeaderScanRows
	if len(rows) < maxRow {
		maxRow = len(rows)
	}

	for r := 0; r < maxRow; r++ {
		columns := make(columnIndexes)
		row := rows[r]
		maxCol := settings.HeaderScanCols
		if len(row) < maxCol {
			maxCol = len(row)
		}
		for c := 0; c < maxCol; c++ {
			if key, ok := spellings[normalizeHeader(row[c])]; ok {
				if _, taken := columns[key]; !taken {
					columns[key] = c
				}
			}
		}

		missing := missingKeys(columns, required)
		if len(missing) == 0 {
			return r + 1, columns, nil
		}
		if lastMissing == nil || len(missing) < len(lastMissing) {
			lastMissing = missing
		}
	}

	if lastMissing == nil {
		lastMissing = required
	}
	return 0, nil, lastMissing
}

// normalizeHeader prepares a header cell for comparison: lowercase, with all
// spaces and dots removed, so "Lp.", " lp " and "LP" all match.
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	return s
}

// missingKeys returns the required keys absent from the column map.
func missingKeys(columns columnIndexes, required []string) []string {
	var missing []string
	for _, key := range required {
		if _, ok := columns[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// =============================================================================
// ROW PARSING
// =============================================================================

// parseItemRow extracts one Item from a data row.
//
// RETURNS:
//   - The parsed item, or nil when the row has no symbol (silently skipped).
//   - A *MalformedRowError when the quantity cell is missing, non-numeric
//     or negative.
func parseItemRow(path string, row []string, rowNum int, columns columnIndexes, itemCount int) (*types.Item, *MalformedRowError) {
	symbol := strings.TrimSpace(cellAt(row, columns[config.KeySymbol]))
	if symbol == "" {
		return nil, nil
	}

	qtyRaw := strings.TrimSpace(cellAt(row, columns[config.KeyQuantity]))
	qty, err := parseQuantity(qtyRaw)
	if err != nil || qty < 0 {
		return nil, &MalformedRowError{Path: path, Row: rowNum, Symbol: symbol, Quantity: qtyRaw}
	}

	// A missing or non-numeric Lp is not an error; the running item count
	// takes over.
	lp := itemCount + 1
	if lpRaw := strings.TrimSpace(cellAt(row, columns[config.KeyLineNumber])); lpRaw != "" {
		if n, err := strconv.Atoi(lpRaw); err == nil {
			lp = n
		}
	}

	return &types.Item{
		LineNumber: lp,
		Symbol:     symbol,
		Name:       strings.TrimSpace(cellAt(row, columns[config.KeyName])),
		Quantity:   qty,
		Unit:       types.DefaultUnit,
	}, nil
}

// parseQuantity parses a quantity cell, accepting both comma and dot as the
// decimal separator and tolerating embedded spaces (thousands grouping).
func parseQuantity(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty quantity")
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}

// =============================================================================
// HELPERS
// =============================================================================

// cellAt safely returns the cell at the given index; GetRows trims trailing
// empty cells, so short rows are common.
func cellAt(row []string, index int) string {
	if index < len(row) {
		return row[index]
	}
	return ""
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
