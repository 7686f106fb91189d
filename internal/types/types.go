// =============================================================================
// WZ Generator - Shared Types
// =============================================================================
//
// This package contains the value records shared across the pipeline to avoid
// import cycles. Types defined here are used by:
//   - xlsxparser
//   - aggregator
//   - pricelist
//   - docgen
//
// All records are constructed once and never mutated afterwards; none of them
// outlives a single run of the application.
//
// =============================================================================

package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ITEM
// =============================================================================

// Item represents a single inventory line parsed from one spreadsheet row.
type Item struct {
	// LineNumber is the ordinal number of the line (the "Lp" column,
	// 1-based). When the source cell is missing or not numeric, the parser
	// substitutes the running item count.
	LineNumber int

	// Symbol is the internal part code or SKU (the "Symbol" column).
	// Always non-empty after trimming; rows without a symbol are skipped.
	Symbol string

	// Name is the human-readable part name (the "Nazwa" column).
	Name string

	// Quantity is the parsed quantity (the "Ilość" column).
	// Always non-negative; rows with a malformed quantity are skipped.
	Quantity float64

	// Unit is the unit of measure. Defaults to "szt." (pieces).
	Unit string
}

// DefaultUnit is the unit of measure assumed when the source data carries none.
const DefaultUnit = "szt."

// =============================================================================
// ANALYSIS RESULT
// =============================================================================

// AnalysisResult is the outcome of aggregating one folder of spreadsheets.
// It is created once per folder run and is read-only afterwards.
type AnalysisResult struct {
	// Items contains every parsed Item, concatenated in file-iteration
	// order. The file order itself is filesystem-dependent and therefore
	// unspecified; only the per-symbol totals are order-independent.
	Items []Item

	// TotalsBySymbol maps each trimmed symbol to the summed quantity of
	// all Items carrying that symbol.
	TotalsBySymbol map[string]float64

	// TotalQuantity is the sum of quantities across all Items.
	TotalQuantity float64

	// SourceFileCount is the number of spreadsheet files that were
	// successfully parsed.
	SourceFileCount int

	// SourceFiles lists the paths of the successfully parsed files.
	SourceFiles []string

	// SkippedFiles records every input file that failed to parse together
	// with the reason. A non-empty list is not an error by itself; the run
	// fails only when every candidate file ends up here.
	SkippedFiles []FileFailure

	// SkippedRows records every data row that was dropped because of a
	// malformed quantity cell, across all parsed files. Recoverable, like
	// SkippedFiles, but surfaced in the run summaries so dropped rows are
	// never silent.
	SkippedRows []RowFailure
}

// FileFailure records one input file that could not be parsed.
type FileFailure struct {
	// Path is the path of the skipped file.
	Path string

	// Err is the parse failure that caused the skip.
	Err error
}

// RowFailure records one data row that was dropped during parsing.
type RowFailure struct {
	// Path is the file containing the row.
	Path string

	// Row is the 1-based row number in the sheet.
	Row int

	// Err is the parse failure that caused the skip.
	Err error
}

// NewAnalysisResult builds an AnalysisResult from the given items and source
// bookkeeping, computing the per-symbol totals and the total quantity.
//
// PARAMETERS:
//   - items: all parsed items, in concatenation order.
//   - sourceFiles: paths of the successfully parsed files.
//   - skipped: files that failed to parse.
//   - skippedRows: data rows dropped during parsing.
//
// RETURNS:
//   - A pointer to the fully populated AnalysisResult.
func NewAnalysisResult(items []Item, sourceFiles []string, skipped []FileFailure, skippedRows []RowFailure) *AnalysisResult {
	totals := make(map[string]float64, len(items))
	var totalQty float64
	for _, it := range items {
		sym := strings.TrimSpace(it.Symbol)
		totals[sym] += it.Quantity
		totalQty += it.Quantity
	}

	return &AnalysisResult{
		Items:           items,
		TotalsBySymbol:  totals,
		TotalQuantity:   totalQty,
		SourceFileCount: len(sourceFiles),
		SourceFiles:     sourceFiles,
		SkippedFiles:    skipped,
		SkippedRows:     skippedRows,
	}
}

// =============================================================================
// PRICE LIST
// =============================================================================

// PriceList maps a part symbol to its unit price in PLN.
// A nil or empty PriceList means "no pricing available"; the document
// generator then omits the price columns entirely.
type PriceList map[string]decimal.Decimal

// Lookup returns the unit price for a symbol, matching on the trimmed
// symbol. The boolean reports whether a price was found.
func (p PriceList) Lookup(symbol string) (decimal.Decimal, bool) {
	price, ok := p[strings.TrimSpace(symbol)]
	return price, ok
}
