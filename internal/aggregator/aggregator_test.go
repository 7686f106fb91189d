package aggregator

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/lpkonstal/wz-generator/internal/config"
)

// nopLogger silences aggregation logs in tests.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func writeXLSX(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
}

func newAnalyzer() *Analyzer {
	return New(config.Default().Parser).WithLogger(nopLogger{})
}

// Scenario A: two rows with the same symbol merge in the totals.
func TestTotalsMergeDuplicateSymbols(t *testing.T) {
	dir := t.TempDir()
	writeXLSX(t, filepath.Join(dir, "a.xlsx"), [][]interface{}{
		{"Lp", "Symbol", "Nazwa", "Ilość"},
		{1, "A1", "Widget", 5},
		{2, "A1", "Widget", 3},
	})

	result, err := newAnalyzer().AnalyzeFolder(dir)
	if err != nil {
		t.Fatalf("AnalyzeFolder: %v", err)
	}
	if got := result.TotalsBySymbol["A1"]; got != 8 {
		t.Errorf("totals[A1] = %g, want 8", got)
	}
	if result.TotalQuantity != 8 {
		t.Errorf("total quantity = %g, want 8", result.TotalQuantity)
	}
	if result.SourceFileCount != 1 {
		t.Errorf("source file count = %d, want 1", result.SourceFileCount)
	}
	if len(result.Items) != 2 {
		t.Errorf("items are concatenated, not merged: got %d, want 2", len(result.Items))
	}
}

// Scenario B: a folder with zero spreadsheets is fatal.
func TestNoInputFiles(t *testing.T) {
	_, err := newAnalyzer().AnalyzeFolder(t.TempDir())
	var noFiles *NoInputFilesError
	if !errors.As(err, &noFiles) {
		t.Fatalf("got %v, want *NoInputFilesError", err)
	}
}

// Scenario C: the only file lacks the quantity header, so the run fails with
// AllFilesFailedError carrying the underlying header failure.
func TestAllFilesFailed(t *testing.T) {
	dir := t.TempDir()
	writeXLSX(t, filepath.Join(dir, "bad.xlsx"), [][]interface{}{
		{"Lp", "Symbol", "Nazwa"},
		{1, "A1", "Widget"},
	})

	_, err := newAnalyzer().AnalyzeFolder(dir)
	var allFailed *AllFilesFailedError
	if !errors.As(err, &allFailed) {
		t.Fatalf("got %v, want *AllFilesFailedError", err)
	}
	if len(allFailed.Failures) != 1 {
		t.Errorf("got %d failures, want 1", len(allFailed.Failures))
	}
}

// A per-file failure is recorded and skipped; the run still succeeds.
func TestPartialFailureIsRecorded(t *testing.T) {
	dir := t.TempDir()
	writeXLSX(t, filepath.Join(dir, "good.xlsx"), [][]interface{}{
		{"Lp", "Symbol", "Nazwa", "Ilość"},
		{1, "A1", "Widget", 5},
	})
	writeXLSX(t, filepath.Join(dir, "bad.xlsx"), [][]interface{}{
		{"nothing", "useful"},
	})

	result, err := newAnalyzer().AnalyzeFolder(dir)
	if err != nil {
		t.Fatalf("AnalyzeFolder: %v", err)
	}
	if result.SourceFileCount != 1 {
		t.Errorf("source file count = %d, want 1", result.SourceFileCount)
	}
	if len(result.SkippedFiles) != 1 {
		t.Fatalf("got %d skipped files, want 1", len(result.SkippedFiles))
	}
	if filepath.Base(result.SkippedFiles[0].Path) != "bad.xlsx" {
		t.Errorf("skipped = %s", result.SkippedFiles[0].Path)
	}
}

// Rows dropped for a malformed quantity are carried into the result so the
// summaries can report them, not just the log.
func TestSkippedRowsAreAggregated(t *testing.T) {
	dir := t.TempDir()
	writeXLSX(t, filepath.Join(dir, "a.xlsx"), [][]interface{}{
		{"Lp", "Symbol", "Nazwa", "Ilość"},
		{1, "A1", "Widget", 5},
		{2, "B2", "Bracket", "dużo"},
		{3, "C3", "Clamp", -1},
	})

	result, err := newAnalyzer().AnalyzeFolder(dir)
	if err != nil {
		t.Fatalf("AnalyzeFolder: %v", err)
	}
	if len(result.Items) != 1 {
		t.Errorf("got %d items, want 1", len(result.Items))
	}
	if len(result.SkippedRows) != 2 {
		t.Fatalf("got %d skipped rows, want 2", len(result.SkippedRows))
	}
	for _, r := range result.SkippedRows {
		if filepath.Base(r.Path) != "a.xlsx" {
			t.Errorf("skipped row path = %s", r.Path)
		}
		if r.Row < 2 || r.Err == nil {
			t.Errorf("skipped row %d carries no usable detail: %+v", r.Row, r)
		}
	}
}

// Generated report files in the input folder are skipped when their names are
// excluded, so re-running a folder never re-reads its own outputs.
func TestExcludedFilesAreNotDiscovered(t *testing.T) {
	dir := t.TempDir()
	writeXLSX(t, filepath.Join(dir, "input.xlsx"), [][]interface{}{
		{"Lp", "Symbol", "Nazwa", "Ilość"},
		{1, "A1", "Widget", 5},
	})
	writeXLSX(t, filepath.Join(dir, "WZ_2026-08-26_summary.xlsx"), [][]interface{}{
		{"Lp", "Symbol", "Nazwa", "Ilość"},
		{1, "A1", "Widget", 5},
	})

	result, err := newAnalyzer().WithExcludes("WZ_*_summary.xlsx").AnalyzeFolder(dir)
	if err != nil {
		t.Fatalf("AnalyzeFolder: %v", err)
	}
	if result.SourceFileCount != 1 {
		t.Errorf("source file count = %d, want 1", result.SourceFileCount)
	}
	if got := result.TotalsBySymbol["A1"]; got != 5 {
		t.Errorf("totals[A1] = %g, want 5", got)
	}
}

// Totals are grouping by symbol and therefore independent of which file a
// quantity came from and of file iteration order.
func TestTotalsAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeXLSX(t, filepath.Join(dir, "one.xlsx"), [][]interface{}{
		{"Lp", "Symbol", "Nazwa", "Ilość"},
		{1, "A1", "Widget", 5},
		{2, "B2", "Bracket", 1},
	})
	writeXLSX(t, filepath.Join(dir, "two.xlsx"), [][]interface{}{
		{"Lp", "Symbol", "Nazwa", "Ilość"},
		{1, "B2", "Bracket", 4},
		{2, "A1 ", "Widget", 2}, // trailing space trims into the same symbol
	})

	result, err := newAnalyzer().AnalyzeFolder(dir)
	if err != nil {
		t.Fatalf("AnalyzeFolder: %v", err)
	}

	want := map[string]float64{"A1": 7, "B2": 5}
	for sym, qty := range want {
		if got := result.TotalsBySymbol[sym]; got != qty {
			t.Errorf("totals[%s] = %g, want %g", sym, got, qty)
		}
	}
	if len(result.TotalsBySymbol) != len(want) {
		t.Errorf("totals has %d symbols, want %d", len(result.TotalsBySymbol), len(want))
	}
	if result.SourceFileCount != 2 {
		t.Errorf("source file count = %d, want 2", result.SourceFileCount)
	}
}
