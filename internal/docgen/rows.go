// =============================================================================
// WZ Generator - Report Row Building
// =============================================================================
//
// Shared row-building logic for the DOCX delivery note and the XLSX summary
// report, so both documents always show exactly the same data.
//
// =============================================================================

package docgen

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lpkonstal/wz-generator/internal/types"
)

// reportRow is one line of the items table, already resolved against the
// price mapping. UnitPrice and LineTotal are meaningful only when Priced is
// true; unpriced rows render blank price cells.
type reportRow struct {
	LineNumber int
	Symbol     string
	Name       string
	Quantity   float64
	Unit       string
	Priced     bool
	UnitPrice  decimal.Decimal
	LineTotal  decimal.Decimal
}

// buildRows resolves the analysis result into report rows.
//
// Row policy: with groupBySymbol one row is emitted per aggregated symbol,
// quantity summed and name taken from the first occurrence, ordered by first
// appearance; otherwise one row per parsed item, in concatenation order.
// Line numbers are reassigned sequentially either way so the document always
// counts 1..N regardless of the source numbering.
func buildRows(res *types.AnalysisResult, prices types.PriceList, groupBySymbol bool) []reportRow {
	var rows []reportRow

	if groupBySymbol {
		index := make(map[string]int)
		for _, it := range res.Items {
			sym := strings.TrimSpace(it.Symbol)
			if i, ok := index[sym]; ok {
				rows[i].Quantity += it.Quantity
				continue
			}
			index[sym] = len(rows)
			rows = append(rows, reportRow{
				Symbol:   sym,
				Name:     it.Name,
				Quantity: it.Quantity,
				Unit:     it.Unit,
			})
		}
	} else {
		for _, it := range res.Items {
			rows = append(rows, reportRow{
				Symbol:   strings.TrimSpace(it.Symbol),
				Name:     it.Name,
				Quantity: it.Quantity,
				Unit:     it.Unit,
			})
		}
	}

	for i := range rows {
		rows[i].LineNumber = i + 1
		if price, ok := prices.Lookup(rows[i].Symbol); ok {
			rows[i].Priced = true
			rows[i].UnitPrice = price
			rows[i].LineTotal = price.Mul(decimal.NewFromFloat(rows[i].Quantity))
		}
	}

	return rows
}

// grandTotal sums the line totals of all priced rows.
func grandTotal(rows []reportRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		if r.Priced {
			total = total.Add(r.LineTotal)
		}
	}
	return total
}

// sortedSymbols returns the symbols of a totals map in lexical order, for
// deterministic rendering of order-independent aggregates.
func sortedSymbols(totals map[string]float64) []string {
	symbols := make([]string, 0, len(totals))
	for sym := range totals {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols
}

// formatQuantity renders a quantity with the comma decimal separator and no
// trailing zeros, so whole counts print as plain integers.
func formatQuantity(q float64) string {
	s := strconv.FormatFloat(q, 'f', -1, 64)
	return strings.ReplaceAll(s, ".", ",")
}

// formatMoney renders a decimal amount with two fraction digits, the comma
// decimal separator and spaces grouping the thousands (Polish convention).
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	out := b.String() + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
