// =============================================================================
// WZ Generator - Price List Loader
// =============================================================================
//
// This module loads the optional unit price table and memoizes it in a Cache
// keyed by (path, content fingerprint). Two source formats are supported,
// selected by file extension, and both produce the same mapping shape:
//
//   CSV   - one entry per line: symbol,price[,...]. Lines whose second field
//           is not a number are skipped, which also covers header lines.
//   XLSX  - first sheet, first column symbol, second column price.
//
// Prices tolerate the comma decimal separator used in Polish exports.
//
// A failure here is never fatal for a run: the caller reports it as a
// warning and generates the document without prices.
//
// =============================================================================

package pricelist

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/lpkonstal/wz-generator/internal/types"
)

// =============================================================================
// ERRORS
// =============================================================================

// PriceFileUnreadableError reports that the price file could not be opened
// or parsed, or yielded no usable entries. Non-fatal: the caller reports a
// warning and proceeds without prices.
type PriceFileUnreadableError struct {
	// Path is the price file that failed to load.
	Path string

	// Reason is the underlying failure.
	Reason error
}

// Error implements the error interface.
func (e *PriceFileUnreadableError) Error() string {
	return fmt.Sprintf("price file %s unreadable: %v", e.Path, e.Reason)
}

// Unwrap exposes the underlying failure to errors.Is/As.
func (e *PriceFileUnreadableError) Unwrap() error { return e.Reason }

// =============================================================================
// LOADER
// =============================================================================

// Loader loads price lists through an injected Cache.
type Loader struct {
	cache *Cache
}

// NewLoader creates a Loader backed by the given cache. A nil cache gets a
// fresh one, for callers that do not care about memoization across runs.
func NewLoader(cache *Cache) *Loader {
	if cache == nil {
		cache = NewCache()
	}
	return &Loader{cache: cache}
}

// Load returns the symbol → unit price mapping for the given file.
//
// The file content is fingerprinted first; a repeated call with an unchanged
// fingerprint returns the cached mapping without re-parsing the file, and a
// changed fingerprint forces a reload.
//
// PARAMETERS:
//   - path: the path to a .csv, .xlsx or .xlsm price file.
//
// RETURNS:
//   - The price mapping.
//   - A *PriceFileUnreadableError on any failure, including an empty result.
func (l *Loader) Load(path string) (types.PriceList, error) {
	fingerprint, err := Fingerprint(path)
	if err != nil {
		return nil, &PriceFileUnreadableError{Path: path, Reason: err}
	}

	if prices, ok := l.cache.get(path, fingerprint); ok {
		return prices, nil
	}

	prices, err := parsePriceFile(path)
	if err != nil {
		return nil, &PriceFileUnreadableError{Path: path, Reason: err}
	}
	if len(prices) == 0 {
		return nil, &PriceFileUnreadableError{Path: path, Reason: fmt.Errorf("no price entries found")}
	}

	l.cache.put(path, fingerprint, prices)
	return prices, nil
}

// Fingerprint computes the content fingerprint used as the cache key:
// the hex-encoded SHA-256 of the file bytes.
func Fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// =============================================================================
// FORMAT PARSERS
// =============================================================================

// parsePriceFile dispatches on the file extension. Both parsers produce the
// same mapping shape.
func parsePriceFile(path string) (types.PriceList, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return parseCSV(path)
	case ".xlsx", ".xlsm":
		return parseXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported price file extension %q", filepath.Ext(path))
	}
}

// parseCSV reads a CSV price file. The reader is lenient: variable field
// counts are allowed and any line whose price field does not parse is
// skipped, which also drops header lines.
func parseCSV(path string) (types.PriceList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	prices := make(types.PriceList)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if len(record) < 2 {
			continue
		}
		addEntry(prices, record[0], record[1])
	}
	return prices, nil
}

// parseXLSX reads a spreadsheet price file: first sheet, column A symbol,
// column B price.
func parseXLSX(path string) (types.PriceList, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	prices := make(types.PriceList)
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		addEntry(prices, row[0], row[1])
	}
	return prices, nil
}

// addEntry parses one (symbol, price) pair and stores it. Unparsable prices
// are skipped silently; the caller treats an entirely empty result as a
// load failure.
func addEntry(prices types.PriceList, rawSymbol, rawPrice string) {
	symbol := strings.TrimSpace(rawSymbol)
	if symbol == "" {
		return
	}
	price, err := parsePrice(rawPrice)
	if err != nil {
		return
	}
	prices[symbol] = price
}

// parsePrice parses a price cell, accepting the comma decimal separator and
// embedded grouping spaces.
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}
