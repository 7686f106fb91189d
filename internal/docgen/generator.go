// =============================================================================
// WZ Generator - Delivery Note Generator
// =============================================================================
//
// This module renders an AnalysisResult into the WZ (wydanie na zewnątrz)
// delivery-note document:
//
//   - centered bold title
//   - metadata table (WZ number, issue date, place of issue, warehouse)
//   - issuer / recipient table
//   - items table: one row per aggregated symbol by default, or one row per
//     parsed item when group_rows_by_symbol is false
//   - summary table (row count, total quantity, grand total when priced)
//
// Price columns ("Cena jedn. [PLN]", "Wartość [PLN]") are emitted ONLY when a
// non-empty price mapping is supplied. Without one the table keeps the plain
// four-column layout; the fast path performs no price lookups and never
// fails because prices are missing. A symbol absent from the mapping renders
// "—" in its price cells.
//
// Exactly one file is written, at the caller-specified path, overwriting any
// existing file.
//
// =============================================================================

package docgen

import (
	"fmt"
	"os"
	"time"

	"github.com/fumiama/go-docx"

	"github.com/lpkonstal/wz-generator/internal/config"
	"github.com/lpkonstal/wz-generator/internal/types"
	"github.com/lpkonstal/wz-generator/pkg/utils"
)

// =============================================================================
// ERRORS
// =============================================================================

// DocumentWriteError reports that the output document could not be written.
// Fatal for the run.
type DocumentWriteError struct {
	// Path is the output path that failed.
	Path string

	// Reason is the underlying failure.
	Reason error
}

// Error implements the error interface.
func (e *DocumentWriteError) Error() string {
	return fmt.Sprintf("failed to write document %s: %v", e.Path, e.Reason)
}

// Unwrap exposes the underlying failure to errors.Is/As.
func (e *DocumentWriteError) Unwrap() error { return e.Reason }

// =============================================================================
// GENERATOR
// =============================================================================

// Generator renders delivery-note documents according to the application
// configuration.
type Generator struct {
	cfg *config.Config
}

// NewGenerator creates a Generator for the given configuration.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg}
}

// Options carries the per-run values that may override the configuration.
type Options struct {
	// RecipientName overrides the configured recipient name when non-empty.
	RecipientName string

	// Number overrides the generated WZ number when non-empty.
	Number string

	// IssueDate overrides the issue date when non-empty. Default: today.
	IssueDate string
}

// GenerateWZ renders the delivery note for the given analysis result and
// writes it to outPath, overwriting an existing file.
//
// PARAMETERS:
//   - res: the aggregated analysis result.
//   - prices: the optional price mapping; nil or empty selects the fast
//     path without price columns.
//   - outPath: where to write the DOCX.
//   - opts: per-run overrides.
//
// RETURNS:
//   - A *DocumentWriteError if the output path cannot be created or written.
func (g *Generator) GenerateWZ(res *types.AnalysisResult, prices types.PriceList, outPath string, opts Options) error {
	withPrices := len(prices) > 0
	rows := buildRows(res, prices, *g.cfg.Document.GroupRowsBySymbol)

	number := opts.Number
	if number == "" {
		number = utils.GenerateOutputFileName(g.cfg.Document.NumberFormat)
	}
	issueDate := opts.IssueDate
	if issueDate == "" {
		issueDate = time.Now().Format("2006-01-02")
	}
	recipient := g.cfg.Recipient
	if opts.RecipientName != "" {
		recipient.Name = opts.RecipientName
	}

	w := docx.New().WithDefaultTheme()

	// Title.
	title := w.AddParagraph()
	title.AddText(g.cfg.Document.Title).Size("36").Bold()
	title.Justification("center")

	w.AddParagraph()

	// Metadata table.
	meta := w.AddTable(2, 4, 0, nil)
	metaLabels := []string{"WZ nr:", "Data wystawienia:", "Miejsce wystawienia:", "Magazyn:"}
	metaValues := []string{number, issueDate, g.cfg.Document.Place, g.cfg.Document.Warehouse}
	for i := 0; i < 4; i++ {
		meta.TableRows[0].TableCells[i].AddParagraph().AddText(metaLabels[i]).Bold()
		meta.TableRows[1].TableCells[i].AddParagraph().AddText(metaValues[i])
	}

	w.AddParagraph()

	// Parties table.
	parties := w.AddTable(1, 2, 0, nil)
	writeParty(parties.TableRows[0].TableCells[0], "Wystawca (wydający):", g.cfg.Issuer)
	writeParty(parties.TableRows[0].TableCells[1], "Odbiorca:", recipient)

	w.AddParagraph()

	// Items table.
	headers := []string{"Lp.", "Symbol", "Nazwa towaru", "Ilość"}
	if withPrices {
		headers = append(headers, "Cena jedn. [PLN]", "Wartość [PLN]")
	}

	items := w.AddTable(len(rows)+1, len(headers), 0, nil)
	for i, h := range headers {
		items.TableRows[0].TableCells[i].AddParagraph().AddText(h).Bold()
	}
	for i, row := range rows {
		cells := items.TableRows[i+1].TableCells
		cells[0].AddParagraph().AddText(fmt.Sprintf("%d", row.LineNumber))
		cells[1].AddParagraph().AddText(row.Symbol)
		cells[2].AddParagraph().AddText(row.Name)
		cells[3].AddParagraph().AddText(formatQuantity(row.Quantity) + " " + row.Unit)
		if withPrices {
			if row.Priced {
				cells[4].AddParagraph().AddText(formatMoney(row.UnitPrice))
				cells[5].AddParagraph().AddText(formatMoney(row.LineTotal))
			} else {
				cells[4].AddParagraph().AddText("—")
				cells[5].AddParagraph().AddText("—")
			}
		}
	}

	w.AddParagraph()

	// Summary table.
	summaryCols := 2
	if withPrices {
		summaryCols = 3
	}
	summary := w.AddTable(1, summaryCols, 0, nil)
	cells := summary.TableRows[0].TableCells
	cells[0].AddParagraph().AddText(fmt.Sprintf("Razem pozycji: %d", len(rows)))
	cells[1].AddParagraph().AddText(fmt.Sprintf("Suma ilości (%s): %s", types.DefaultUnit, formatQuantity(res.TotalQuantity)))
	if withPrices {
		cells[2].AddParagraph().AddText("Wartość razem [PLN]: " + formatMoney(grandTotal(rows))).Bold()
	}

	return writeDocx(w, outPath)
}

// writeParty fills one cell of the parties table with a labeled party block.
func writeParty(cell *docx.WTableCell, label string, party config.Party) {
	cell.AddParagraph().AddText(label).Bold()
	cell.AddParagraph().AddText("Nazwa: " + party.Name)
	cell.AddParagraph().AddText("Adres: " + party.Address)
	if party.NIP != "" || party.REGON != "" || party.KRS != "" {
		cell.AddParagraph().AddText(fmt.Sprintf("NIP: %s    REGON: %s    KRS: %s",
			party.NIP, party.REGON, party.KRS))
	}
	if party.Phone != "" {
		cell.AddParagraph().AddText("Telefon: " + party.Phone)
	}
}

// writeDocx saves the document, mapping every failure to DocumentWriteError.
func writeDocx(w *docx.Docx, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return &DocumentWriteError{Path: outPath, Reason: err}
	}

	if _, err := w.WriteTo(f); err != nil {
		f.Close()
		return &DocumentWriteError{Path: outPath, Reason: err}
	}
	if err := f.Close(); err != nil {
		return &DocumentWriteError{Path: outPath, Reason: err}
	}
	return nil
}
