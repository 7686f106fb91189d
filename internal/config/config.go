// =============================================================================
// WZ Generator - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. A single YAML file (config.yaml by default, overridable with
// the --config flag) carries everything that used to be hardcoded in earlier
// versions of the tool: issuer details, the default recipient, document
// metadata, parser tuning, and output naming.
//
// ARCHITECTURE:
//   The configuration system follows three steps on load:
//   1. Read and unmarshal the YAML file
//   2. Apply defaults for every unset option
//   3. Validate the result
//
//   A missing config file is not an error: the tool then runs entirely on
//   defaults, so a bare binary works without any setup.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the complete application configuration.
type Config struct {
	// Issuer describes the party issuing the delivery note.
	Issuer Party `yaml:"issuer"`

	// Recipient is the default recipient printed on the delivery note.
	// The GUI and the generate command may override the name per run.
	Recipient Party `yaml:"recipient"`

	// Document contains delivery-note metadata and layout settings.
	Document DocumentSettings `yaml:"document"`

	// Parser contains spreadsheet parsing settings.
	Parser ParserSettings `yaml:"parser"`

	// Output contains output file settings.
	Output OutputSettings `yaml:"output"`
}

// Party identifies one party on the delivery note (issuer or recipient).
type Party struct {
	// Name is the legal or display name of the party.
	Name string `yaml:"name"`

	// Address is the full postal address, single line.
	Address string `yaml:"address"`

	// NIP is the Polish tax identification number. Optional.
	NIP string `yaml:"nip,omitempty"`

	// REGON is the Polish statistical business register number. Optional.
	REGON string `yaml:"regon,omitempty"`

	// KRS is the Polish national court register number. Optional.
	KRS string `yaml:"krs,omitempty"`

	// Phone is a contact phone number. Optional.
	Phone string `yaml:"phone,omitempty"`
}

// DocumentSettings controls the content and layout of the generated
// delivery note.
type DocumentSettings struct {
	// Title is the heading printed at the top of the document.
	// Default: "WZ – Wydanie na Zewnątrz"
	Title string `yaml:"title"`

	// NumberFormat is the template for the WZ number. Placeholders:
	//   {uuid}      - a random UUID
	//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - current date (YYYY-MM-DD)
	// Default: "WZ/{date}/{uuid}"
	NumberFormat string `yaml:"number_format"`

	// Place is the place of issue printed in the metadata table.
	Place string `yaml:"place"`

	// Warehouse is the warehouse identifier printed in the metadata table.
	Warehouse string `yaml:"warehouse"`

	// GroupRowsBySymbol selects the row policy for the items table.
	// When true (the default) the document carries one row per aggregated
	// symbol, with quantities summed and the name taken from the first
	// occurrence. When false it carries one row per parsed item.
	// The per-symbol totals of the analysis are identical either way.
	GroupRowsBySymbol *bool `yaml:"group_rows_by_symbol,omitempty"`
}

// ParserSettings tunes the spreadsheet item parser.
type ParserSettings struct {
	// HeaderScanRows is how many rows from the top of the first sheet are
	// scanned when locating the header row. Default: 20
	HeaderScanRows int `yaml:"header_scan_rows"`

	// HeaderScanCols is how many columns are scanned per row during header
	// discovery. Default: 19
	HeaderScanCols int `yaml:"header_scan_cols"`

	// Extensions lists the file extensions treated as input spreadsheets
	// when scanning a folder. Lowercase, with leading dot.
	// Default: [".xlsx"]
	Extensions []string `yaml:"extensions"`

	// HeaderSynonyms maps a canonical column key to the accepted header
	// spellings, compared after normalization (lowercase, spaces and dots
	// removed). The four canonical keys are fixed: "lp", "symbol", "name"
	// and "quantity". Extra synonyms may be added per key; removing a key
	// entirely is rejected by validation.
	HeaderSynonyms map[string][]string `yaml:"header_synonyms,omitempty"`
}

// OutputSettings controls output file placement and naming.
type OutputSettings struct {
	// FileNameFormat is the template for the generated DOCX file name when
	// the caller does not supply an explicit output path. Placeholders are
	// the same as in DocumentSettings.NumberFormat.
	// Default: "WZ_{date}.docx"
	FileNameFormat string `yaml:"file_name_format"`

	// XLSXSummary enables writing an XLSX summary report next to the DOCX.
	// Default: false
	XLSXSummary bool `yaml:"xlsx_summary"`

	// XLSXSummaryFormat is the file name template for the XLSX summary.
	// Default: "WZ_{date}_summary.xlsx"
	XLSXSummaryFormat string `yaml:"xlsx_summary_format"`
}

// =============================================================================
// CANONICAL HEADER KEYS
// =============================================================================

// Canonical column keys used by ParserSettings.HeaderSynonyms. Every input
// spreadsheet must carry a header for each of these, in any column order.
const (
	KeyLineNumber = "lp"
	KeySymbol     = "symbol"
	KeyName       = "name"
	KeyQuantity   = "quantity"
)

// defaultHeaderSynonyms returns the built-in header spellings, matching the
// Polish column names of the source spreadsheets. The "ilosc" variant covers
// files saved without diacritics.
func defaultHeaderSynonyms() map[string][]string {
	return map[string][]string{
		KeyLineNumber: {"lp"},
		KeySymbol:     {"symbol"},
		KeyName:       {"nazwa"},
		KeyQuantity:   {"ilość", "ilosc"},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from the given YAML file, applies defaults
// and validates the result.
//
// PARAMETERS:
//   - path: the path to the configuration file.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file exists but cannot be read or parsed, or if the
//     resulting configuration is invalid.
//
// A missing file is not an error; the returned configuration then consists
// entirely of defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Run on defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration consisting entirely of built-in defaults.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// applyDefaults sets default values for every unset configuration option.
func applyDefaults(cfg *Config) {
	if cfg.Issuer.Name == "" {
		cfg.Issuer.Name = "LP Konstal sp. z o.o."
	}
	if cfg.Issuer.Address == "" {
		cfg.Issuer.Address = "Pisarzowice 203b, 59-800 Lubań, PL"
	}
	if cfg.Recipient.Name == "" {
		cfg.Recipient.Name = "Odbiorca"
	}
	if cfg.Recipient.Address == "" {
		cfg.Recipient.Address = "Adres"
	}

	if cfg.Document.Title == "" {
		cfg.Document.Title = "WZ – Wydanie na Zewnątrz"
	}
	if cfg.Document.NumberFormat == "" {
		cfg.Document.NumberFormat = "WZ/{date}/{uuid}"
	}
	if cfg.Document.Place == "" {
		cfg.Document.Place = "Lubań"
	}
	if cfg.Document.Warehouse == "" {
		cfg.Document.Warehouse = "Magazyn"
	}
	if cfg.Document.GroupRowsBySymbol == nil {
		t := true
		cfg.Document.GroupRowsBySymbol = &t
	}

	if cfg.Parser.HeaderScanRows == 0 {
		cfg.Parser.HeaderScanRows = 20
	}
	if cfg.Parser.HeaderScanCols == 0 {
		cfg.Parser.HeaderScanCols = 19
	}
	if len(cfg.Parser.Extensions) == 0 {
		cfg.Parser.Extensions = []string{".xlsx"}
	}
	for i, ext := range cfg.Parser.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.Parser.Extensions[i] = ext
	}

	// Merge user synonyms over the built-in ones so that adding a spelling
	// never silently drops the defaults for the other keys.
	merged := defaultHeaderSynonyms()
	for key, extra := range cfg.Parser.HeaderSynonyms {
		merged[key] = append(merged[key], extra...)
	}
	cfg.Parser.HeaderSynonyms = merged

	if cfg.Output.FileNameFormat == "" {
		cfg.Output.FileNameFormat = "WZ_{date}.docx"
	}
	if cfg.Output.XLSXSummaryFormat == "" {
		cfg.Output.XLSXSummaryFormat = "WZ_{date}_summary.xlsx"
	}
}

// validate checks the configuration for inconsistencies that would break a
// run later on.
func validate(cfg *Config) error {
	for _, key := range []string{KeyLineNumber, KeySymbol, KeyName, KeyQuantity} {
		if len(cfg.Parser.HeaderSynonyms[key]) == 0 {
			return fmt.Errorf("header_synonyms: no spellings configured for required column %q", key)
		}
	}
	if cfg.Parser.HeaderScanRows < 1 {
		return fmt.Errorf("header_scan_rows must be positive, got %d", cfg.Parser.HeaderScanRows)
	}
	if cfg.Parser.HeaderScanCols < 1 {
		return fmt.Errorf("header_scan_cols must be positive, got %d", cfg.Parser.HeaderScanCols)
	}
	return nil
}
