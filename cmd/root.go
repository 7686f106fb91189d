// =============================================================================
// WZ Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI.
//
// COBRA CLI STRUCTURE:
//   rootCmd (wzgen)          - launches the graphical shell
//   ├── generateCmd (wzgen generate) - headless run of the same pipeline
//   └── versionCmd (wzgen version)   - version information
//
// The root command launched without arguments opens the GUI, matching the
// double-click workflow the tool is built for. The --config persistent flag
// points at the YAML configuration and applies to every command.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lpkonstal/wz-generator/internal/config"
	"github.com/lpkonstal/wz-generator/internal/gui"
)

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// rootCmd represents the base command when called without any subcommands:
// it opens the graphical shell.
var rootCmd = &cobra.Command{
	Use:   "wzgen",
	Short: "WZ Generator - Analyze XLSX inventory files and generate delivery notes",
	Long: `WZ Generator reads inventory spreadsheets (XLSX) from a chosen folder,
aggregates quantities across files, optionally resolves unit prices from a
cached price list (CSV or XLSX), and emits a WZ delivery-note document (DOCX).

Launched without arguments it opens the graphical shell with folder and file
pickers. The same pipeline is available headless via 'wzgen generate'.

Example Usage:
  wzgen                                     # open the GUI
  wzgen generate --folder ./zlecenie_42     # headless run
  wzgen generate --folder ./in --price cennik.csv --output WZ.docx`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		gui.Run(cfg)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the persistent flags shared by all commands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (default is config.yaml)",
	)
}
