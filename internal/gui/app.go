// =============================================================================
// WZ Generator - Application Shell (GUI)
// =============================================================================
//
// Thin event-dispatch wrapper around the runner. The shell is the ONLY layer
// that presents UI: it collects the user-selected paths, triggers one
// synchronous run per button press and translates the typed results into
// dialogs: blocking error dialogs for run-fatal failures, an informational
// warning for the non-fatal price-list problem, and a summary dialog on
// success. The core packages never touch the toolkit.
//
// =============================================================================

package gui

import (
	"errors"
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/lpkonstal/wz-generator/internal/aggregator"
	"github.com/lpkonstal/wz-generator/internal/config"
	"github.com/lpkonstal/wz-generator/internal/docgen"
	"github.com/lpkonstal/wz-generator/internal/pricelist"
	"github.com/lpkonstal/wz-generator/internal/runner"
)

// shell holds the widgets that carry state between user actions.
type shell struct {
	runner *runner.Runner
	window fyne.Window

	folderEntry    *widget.Entry
	priceEntry     *widget.Entry
	recipientEntry *widget.Entry
	status         *widget.Label
}

// Run opens the main window and blocks until it is closed. The price-list
// cache lives for the whole session, so re-running with an unchanged price
// file does not re-read it.
func Run(cfg *config.Config) {
	a := app.New()
	w := a.NewWindow("Generator WZ – analiza XLSX")

	s := &shell{
		runner:         runner.New(cfg, pricelist.NewCache()),
		window:         w,
		folderEntry:    widget.NewEntry(),
		priceEntry:     widget.NewEntry(),
		recipientEntry: widget.NewEntry(),
		status:         widget.NewLabel(""),
	}

	s.folderEntry.SetPlaceHolder("Folder z plikami XLSX")
	s.priceEntry.SetPlaceHolder("Cennik (opcjonalnie, CSV/XLSX)")
	s.recipientEntry.SetPlaceHolder("Odbiorca (opcjonalnie)")

	form := container.NewVBox(
		widget.NewLabel("Folder z XLSX:"),
		container.NewBorder(nil, nil, nil,
			widget.NewButton("Wybierz…", s.chooseFolder), s.folderEntry),
		widget.NewLabel("Cennik (opcjonalnie):"),
		container.NewBorder(nil, nil, nil,
			widget.NewButton("Wybierz…", s.choosePriceFile), s.priceEntry),
		widget.NewLabel("Odbiorca:"),
		s.recipientEntry,
		widget.NewSeparator(),
		widget.NewButton("Analizuj i wygeneruj WZ", s.generate),
		s.status,
	)

	w.SetContent(form)
	w.Resize(fyne.NewSize(720, 400))
	w.ShowAndRun()
}

// chooseFolder opens the folder picker and stores the selection.
func (s *shell) chooseFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		s.folderEntry.SetText(uri.Path())
	}, s.window)
}

// choosePriceFile opens the file picker limited to supported price formats.
func (s *shell) choosePriceFile() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		s.priceEntry.SetText(rc.URI().Path())
		rc.Close()
	}, s.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".xlsx", ".xlsm"}))
	d.Show()
}

// generate runs the pipeline once, synchronously. All outcome presentation
// happens here.
func (s *shell) generate() {
	folder := s.folderEntry.Text
	if folder == "" {
		dialog.ShowError(fmt.Errorf("nie wybrano folderu z plikami XLSX"), s.window)
		return
	}

	s.status.SetText("Analizowanie…")

	outcome, err := s.runner.Run(runner.Request{
		Folder:        folder,
		PricePath:     s.priceEntry.Text,
		RecipientName: s.recipientEntry.Text,
	})
	if err != nil {
		s.status.SetText("Błąd.")
		dialog.ShowError(fmt.Errorf("%s", describeError(err)), s.window)
		return
	}

	// The price-list failure is a warning only: the document already
	// exists, just without price columns.
	if outcome.PriceWarning != nil {
		dialog.ShowInformation("Ostrzeżenie",
			"Nie udało się wczytać cennika – WZ wygenerowano bez cen.\n\n"+
				outcome.PriceWarning.Error(), s.window)
	}

	res := outcome.Result
	s.status.SetText(fmt.Sprintf("Gotowe: %d pozycji z %d plików.", len(res.Items), res.SourceFileCount))

	summary := fmt.Sprintf(
		"Wygenerowano WZ:\n  pozycji: %d\n  suma ilości: %g\n  plików: %d\n\nPlik: %s",
		len(res.Items), res.TotalQuantity, res.SourceFileCount, outcome.OutputPath)
	if outcome.SummaryPath != "" {
		summary += "\nRaport XLSX: " + filepath.Base(outcome.SummaryPath)
	}
	if len(res.SkippedFiles) > 0 {
		summary += fmt.Sprintf("\n\nPominięto %d plik(ów) z błędami.", len(res.SkippedFiles))
	}
	if len(res.SkippedRows) > 0 {
		summary += fmt.Sprintf("\nPominięto %d wiersz(y) z błędną ilością.", len(res.SkippedRows))
	}
	dialog.ShowInformation("Gotowe", summary, s.window)
}

// describeError maps the typed failure kinds onto user-facing messages.
// This is the adapter the core relies on to stay UI-free.
func describeError(err error) string {
	var noFiles *aggregator.NoInputFilesError
	var allFailed *aggregator.AllFilesFailedError
	var docWrite *docgen.DocumentWriteError

	switch {
	case errors.As(err, &noFiles):
		return "Brak plików XLSX w wybranym folderze."
	case errors.As(err, &allFailed):
		return fmt.Sprintf("Nie udało się odczytać pozycji z żadnego pliku XLSX (%d prób).",
			len(allFailed.Failures))
	case errors.As(err, &docWrite):
		return "Błąd zapisu dokumentu WZ:\n" + docWrite.Error()
	default:
		return err.Error()
	}
}
