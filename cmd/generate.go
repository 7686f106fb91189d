// =============================================================================
// WZ Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command: a headless run of the full
// pipeline, for scripted use or for environments without a display.
//
// COMMAND USAGE:
//   wzgen generate --folder DIR [flags]
//
// FLAGS:
//   --folder     : Folder with input XLSX files (required)
//   --price      : Optional price file (CSV or XLSX)
//   --output     : Output DOCX path (default: derived from config, in --folder)
//   --recipient  : Recipient name override
//
// Unlike the GUI path, the process exits non-zero on a run-fatal error so
// that shell scripts can detect failures. The price-list problem stays a
// warning here too: it is printed, and the run succeeds without prices.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lpkonstal/wz-generator/internal/config"
	"github.com/lpkonstal/wz-generator/internal/pricelist"
	"github.com/lpkonstal/wz-generator/internal/runner"
)

// generate command flags.
var (
	genFolder    string
	genPrice     string
	genOutput    string
	genRecipient string
)

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Analyze a folder of XLSX files and generate a WZ document",
	Long: `The generate command runs the full pipeline without the GUI: it scans the
given folder for XLSX files, aggregates their inventory items, optionally
resolves unit prices from the given price file, and writes the WZ document.

Per-file parse failures are logged and skipped; the run fails only when the
folder has no XLSX files at all, when every file fails to parse, or when the
output document cannot be written.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate()
	},
}

// init registers the generate command and its flags.
func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genFolder, "folder", "", "Folder with input XLSX files (required)")
	generateCmd.Flags().StringVar(&genPrice, "price", "", "Optional price file (CSV or XLSX)")
	generateCmd.Flags().StringVar(&genOutput, "output", "", "Output DOCX path (default: derived from config)")
	generateCmd.Flags().StringVar(&genRecipient, "recipient", "", "Recipient name override")
	generateCmd.MarkFlagRequired("folder")
}

// runGenerate executes one headless pipeline pass and prints a summary.
func runGenerate() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	r := runner.New(cfg, pricelist.NewCache())
	outcome, err := r.Run(runner.Request{
		Folder:        genFolder,
		PricePath:     genPrice,
		OutputPath:    genOutput,
		RecipientName: genRecipient,
	})
	if err != nil {
		return err
	}

	if outcome.PriceWarning != nil {
		fmt.Printf("WARNING: %v\n", outcome.PriceWarning)
		fmt.Println("Document generated without prices.")
	}

	res := outcome.Result
	fmt.Println("\n=== WZ Generated ===")
	fmt.Printf("Items:           %d\n", len(res.Items))
	fmt.Printf("Total quantity:  %g\n", res.TotalQuantity)
	fmt.Printf("Source files:    %d\n", res.SourceFileCount)
	if len(res.SkippedFiles) > 0 {
		fmt.Printf("Skipped files:   %d\n", len(res.SkippedFiles))
		for _, f := range res.SkippedFiles {
			fmt.Printf("  ✗ %s: %v\n", f.Path, f.Err)
		}
	}
	if len(res.SkippedRows) > 0 {
		fmt.Printf("Skipped rows:    %d\n", len(res.SkippedRows))
		for _, r := range res.SkippedRows {
			fmt.Printf("  ✗ %v\n", r.Err)
		}
	}
	if outcome.PricedSymbols > 0 {
		fmt.Printf("Price entries:   %d\n", outcome.PricedSymbols)
	}
	fmt.Printf("Output:          %s\n", outcome.OutputPath)
	if outcome.SummaryPath != "" {
		fmt.Printf("XLSX summary:    %s\n", outcome.SummaryPath)
	}

	return nil
}
