// =============================================================================
// WZ Generator - Folder Aggregator
// =============================================================================
//
// This module runs the spreadsheet parser over every candidate file in a
// folder and merges the results into one AnalysisResult.
//
// AGGREGATION PIPELINE:
//   1. Discover candidate spreadsheets by extension (non-recursive)
//   2. Parse each file; a per-file failure is logged, recorded and skipped
//   3. Concatenate items in file-iteration order
//   4. Group totals by trimmed symbol
//
// Error policy: zero candidate files and "every file failed" are fatal for
// the run; anything in between produces a result with a populated skip list.
//
// =============================================================================

package aggregator

import (
	"fmt"
	"path/filepath"

	"github.com/lpkonstal/wz-generator/internal/config"
	"github.com/lpkonstal/wz-generator/internal/types"
	"github.com/lpkonstal/wz-generator/internal/xlsxparser"
	"github.com/lpkonstal/wz-generator/pkg/utils"
)

// =============================================================================
// ERRORS
// =============================================================================

// NoInputFilesError reports that the chosen folder contains no candidate
// spreadsheet files at all. Fatal for the run.
type NoInputFilesError struct {
	// Folder is the folder that was scanned.
	Folder string

	// Extensions lists the extensions that were looked for.
	Extensions []string
}

// Error implements the error interface.
func (e *NoInputFilesError) Error() string {
	return fmt.Sprintf("no input files with extensions %v found in %s", e.Extensions, e.Folder)
}

// AllFilesFailedError reports that candidate files were found but every
// single one failed to parse. Fatal for the run.
type AllFilesFailedError struct {
	// Folder is the folder that was scanned.
	Folder string

	// Failures lists the per-file parse failures.
	Failures []types.FileFailure
}

// Error implements the error interface.
func (e *AllFilesFailedError) Error() string {
	return fmt.Sprintf("all %d input files in %s failed to parse", len(e.Failures), e.Folder)
}

// =============================================================================
// LOGGER INTERFACE
// =============================================================================

// Logger is the interface for logging during aggregation. A custom logger
// can be injected; the default writes to stdout.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// defaultLogger writes formatted messages to stdout with a level prefix.
type defaultLogger struct{}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {
	fmt.Printf("[DEBUG] "+msg+"\n", args...)
}

func (l *defaultLogger) Info(msg string, args ...interface{}) {
	fmt.Printf("[INFO] "+msg+"\n", args...)
}

func (l *defaultLogger) Warn(msg string, args ...interface{}) {
	fmt.Printf("[WARN] "+msg+"\n", args...)
}

func (l *defaultLogger) Error(msg string, args ...interface{}) {
	fmt.Printf("[ERROR] "+msg+"\n", args...)
}

// =============================================================================
// ANALYZER
// =============================================================================

// Analyzer aggregates inventory items across a folder of spreadsheets.
type Analyzer struct {
	// settings tunes the underlying spreadsheet parser and the extension
	// filter used during discovery.
	settings config.ParserSettings

	// exclude holds glob patterns for file names that must never be
	// treated as inputs, even when the extension matches. The caller
	// derives them from the output name formats so that a generated XLSX
	// summary in the input folder is not re-read as inventory.
	exclude []string

	// logger receives per-file progress and skip messages.
	logger Logger
}

// New creates an Analyzer with the given parser settings and the default
// stdout logger.
func New(settings config.ParserSettings) *Analyzer {
	return &Analyzer{settings: settings, logger: &defaultLogger{}}
}

// WithLogger replaces the logger and returns the analyzer for chaining.
func (a *Analyzer) WithLogger(logger Logger) *Analyzer {
	a.logger = logger
	return a
}

// WithExcludes adds file name globs to skip during discovery and returns the
// analyzer for chaining.
func (a *Analyzer) WithExcludes(globs ...string) *Analyzer {
	a.exclude = append(a.exclude, globs...)
	return a
}

// AnalyzeFolder parses every candidate spreadsheet in the folder and merges
// the items into one AnalysisResult.
//
// PARAMETERS:
//   - folder: the folder to scan.
//
// RETURNS:
//   - The aggregated result. Per-file failures are recorded in
//     result.SkippedFiles and do not fail the run.
//   - A *NoInputFilesError when the folder has zero candidate files, a
//     *AllFilesFailedError when every candidate failed, or a wrapped I/O
//     error if the folder itself cannot be read.
func (a *Analyzer) AnalyzeFolder(folder string) (*types.AnalysisResult, error) {
	files, err := utils.DiscoverFiles(folder, a.settings.Extensions, a.exclude)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &NoInputFilesError{Folder: folder, Extensions: a.settings.Extensions}
	}

	a.logger.Info("Analyzing %d file(s) in %s", len(files), folder)

	var (
		items       []types.Item
		parsed      []string
		skipped     []types.FileFailure
		skippedRows []types.RowFailure
	)

	for _, file := range files {
		result, err := xlsxparser.ParseFile(file, a.settings)
		if err != nil {
			a.logger.Warn("Skipping %s: %v", filepath.Base(file), err)
			skipped = append(skipped, types.FileFailure{Path: file, Err: err})
			continue
		}

		for _, rowErr := range result.SkippedRows {
			a.logger.Warn("Skipped row: %v", rowErr)
			skippedRows = append(skippedRows, types.RowFailure{
				Path: file,
				Row:  rowErr.Row,
				Err:  rowErr,
			})
		}

		a.logger.Debug("Parsed %s: %d item(s), header at row %d",
			filepath.Base(file), len(result.Items), result.HeaderRow)

		items = append(items, result.Items...)
		parsed = append(parsed, file)
	}

	if len(parsed) == 0 {
		return nil, &AllFilesFailedError{Folder: folder, Failures: skipped}
	}

	result := types.NewAnalysisResult(items, parsed, skipped, skippedRows)
	a.logger.Info("Aggregated %d item(s) across %d file(s), total quantity %g",
		len(result.Items), result.SourceFileCount, result.TotalQuantity)

	return result, nil
}
