// =============================================================================
// WZ Generator - Run Orchestration
// =============================================================================
//
// This module wires the whole pipeline for one user action:
//
//   folder -> aggregator -> AnalysisResult -> [optional] price list ->
//   document generator -> output file(s)
//
// Both front ends (the GUI shell and the headless generate command) drive
// the same Runner, so they cannot drift apart. The Runner never presents UI:
// failures come back as typed errors and the non-fatal price-list problem is
// reported in the outcome as a warning, for the shell to translate into a
// dialog or a log line.
//
// =============================================================================

package runner

import (
	"path/filepath"
	"strings"

	"github.com/lpkonstal/wz-generator/internal/aggregator"
	"github.com/lpkonstal/wz-generator/internal/config"
	"github.com/lpkonstal/wz-generator/internal/docgen"
	"github.com/lpkonstal/wz-generator/internal/pricelist"
	"github.com/lpkonstal/wz-generator/internal/types"
	"github.com/lpkonstal/wz-generator/pkg/utils"
)

// =============================================================================
// REQUEST / OUTCOME
// =============================================================================

// Request carries the user-selected inputs for one run.
type Request struct {
	// Folder is the folder with input spreadsheets. Required.
	Folder string

	// PricePath is the optional price file (.csv/.xlsx). Empty disables
	// pricing and selects the fast path without price columns.
	PricePath string

	// OutputPath is where the DOCX is written. Empty derives the name from
	// the configured file name format, inside Folder.
	OutputPath string

	// RecipientName optionally overrides the configured recipient.
	RecipientName string
}

// Outcome is the result of one successful run.
type Outcome struct {
	// Result is the folder aggregation, for summary display.
	Result *types.AnalysisResult

	// OutputPath is the DOCX that was written.
	OutputPath string

	// SummaryPath is the XLSX summary, when enabled by configuration.
	SummaryPath string

	// PriceWarning is the non-fatal price-list failure, if any. When set,
	// the document was generated without prices; the shell should surface
	// it as a warning, not an error.
	PriceWarning error

	// PricedSymbols is how many distinct price entries were loaded.
	PricedSymbols int
}

// =============================================================================
// RUNNER
// =============================================================================

// Runner executes the aggregation and generation pipeline. One Runner lives
// for the whole process so the price-list cache survives across runs.
type Runner struct {
	cfg      *config.Config
	analyzer *aggregator.Analyzer
	loader   *pricelist.Loader
	gen      *docgen.Generator
}

// New creates a Runner. A nil cache gets a fresh one.
//
// Files matching the configured output name formats are excluded from input
// discovery: the generated XLSX summary lands in the input folder by default
// and carries the same headers as an input spreadsheet, so without the
// exclusion a second run of the same folder would re-read it as inventory
// and double every quantity.
func New(cfg *config.Config, cache *pricelist.Cache) *Runner {
	return &Runner{
		cfg: cfg,
		analyzer: aggregator.New(cfg.Parser).WithExcludes(
			utils.GlobFromFormat(cfg.Output.FileNameFormat),
			utils.GlobFromFormat(cfg.Output.XLSXSummaryFormat),
		),
		loader: pricelist.NewLoader(cache),
		gen:    docgen.NewGenerator(cfg),
	}
}

// WithLogger replaces the aggregator's logger and returns the runner.
func (r *Runner) WithLogger(logger aggregator.Logger) *Runner {
	r.analyzer.WithLogger(logger)
	return r
}

// Run executes one full pipeline pass.
//
// RETURNS:
//   - The outcome, with a populated PriceWarning when the price file could
//     not be used (the run still succeeds, without prices).
//   - A run-fatal error: *aggregator.NoInputFilesError,
//     *aggregator.AllFilesFailedError or *docgen.DocumentWriteError.
func (r *Runner) Run(req Request) (*Outcome, error) {
	result, err := r.analyzer.AnalyzeFolder(req.Folder)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Result: result}

	var prices types.PriceList
	if strings.TrimSpace(req.PricePath) != "" {
		prices, err = r.loader.Load(req.PricePath)
		if err != nil {
			// Non-fatal: generate without prices, report as warning.
			outcome.PriceWarning = err
			prices = nil
		}
		outcome.PricedSymbols = len(prices)
	}

	outPath := req.OutputPath
	if outPath == "" {
		outPath = filepath.Join(req.Folder,
			utils.SanitizeFileName(utils.GenerateOutputFileName(r.cfg.Output.FileNameFormat)))
	}

	opts := docgen.Options{RecipientName: req.RecipientName}
	if err := r.gen.GenerateWZ(result, prices, outPath, opts); err != nil {
		return nil, err
	}
	outcome.OutputPath = outPath

	if r.cfg.Output.XLSXSummary {
		summaryPath := filepath.Join(filepath.Dir(outPath),
			utils.SanitizeFileName(utils.GenerateOutputFileName(r.cfg.Output.XLSXSummaryFormat)))
		if err := r.gen.GenerateXLSXSummary(result, prices, summaryPath); err != nil {
			return nil, err
		}
		outcome.SummaryPath = summaryPath
	}

	return outcome, nil
}
