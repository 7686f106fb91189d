// =============================================================================
// WZ Generator - XLSX Summary Report
// =============================================================================
//
// Optional companion report in spreadsheet form, for workflows that feed the
// aggregated quantities back into other tooling. Carries the same rows as
// the DOCX items table plus a per-symbol totals sheet.
//
// =============================================================================

package docgen

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/lpkonstal/wz-generator/internal/types"
)

// itemsSheet and totalsSheet are the sheet names of the summary workbook.
const (
	itemsSheet  = "Pozycje"
	totalsSheet = "Podsumowanie"
)

// GenerateXLSXSummary writes the XLSX summary report to outPath, overwriting
// an existing file. The row policy and the price-column fast path follow the
// same rules as GenerateWZ.
//
// RETURNS:
//   - A *DocumentWriteError if the workbook cannot be saved.
func (g *Generator) GenerateXLSXSummary(res *types.AnalysisResult, prices types.PriceList, outPath string) error {
	withPrices := len(prices) > 0
	rows := buildRows(res, prices, *g.cfg.Document.GroupRowsBySymbol)

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), itemsSheet)

	headers := []interface{}{"Lp", "Symbol", "Nazwa", "Ilość", "Jedn."}
	if withPrices {
		headers = append(headers, "Cena jedn. [PLN]", "Wartość [PLN]")
	}
	if err := f.SetSheetRow(itemsSheet, "A1", &headers); err != nil {
		return &DocumentWriteError{Path: outPath, Reason: err}
	}

	for i, row := range rows {
		values := []interface{}{row.LineNumber, row.Symbol, row.Name, row.Quantity, row.Unit}
		if withPrices {
			if row.Priced {
				unitPrice, _ := row.UnitPrice.Float64()
				lineTotal, _ := row.LineTotal.Float64()
				values = append(values, unitPrice, lineTotal)
			} else {
				values = append(values, nil, nil)
			}
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(itemsSheet, cell, &values); err != nil {
			return &DocumentWriteError{Path: outPath, Reason: err}
		}
	}

	// Per-symbol totals on a second sheet, in lexical symbol order so the
	// report is deterministic regardless of file iteration order.
	if _, err := f.NewSheet(totalsSheet); err != nil {
		return &DocumentWriteError{Path: outPath, Reason: err}
	}
	totalsHeader := []interface{}{"Symbol", "Suma ilości"}
	if err := f.SetSheetRow(totalsSheet, "A1", &totalsHeader); err != nil {
		return &DocumentWriteError{Path: outPath, Reason: err}
	}
	for i, sym := range sortedSymbols(res.TotalsBySymbol) {
		values := []interface{}{sym, res.TotalsBySymbol[sym]}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(totalsSheet, cell, &values); err != nil {
			return &DocumentWriteError{Path: outPath, Reason: err}
		}
	}

	if err := f.SaveAs(outPath); err != nil {
		return &DocumentWriteError{Path: outPath, Reason: err}
	}
	return nil
}
