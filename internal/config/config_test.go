package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Document.Title != "WZ – Wydanie na Zewnątrz" {
		t.Errorf("title = %q", cfg.Document.Title)
	}
	if cfg.Parser.HeaderScanRows != 20 || cfg.Parser.HeaderScanCols != 19 {
		t.Errorf("scan limits = %d/%d, want 20/19",
			cfg.Parser.HeaderScanRows, cfg.Parser.HeaderScanCols)
	}
	if len(cfg.Parser.Extensions) != 1 || cfg.Parser.Extensions[0] != ".xlsx" {
		t.Errorf("extensions = %v", cfg.Parser.Extensions)
	}
	if cfg.Document.GroupRowsBySymbol == nil || !*cfg.Document.GroupRowsBySymbol {
		t.Error("group_rows_by_symbol must default to true")
	}
	for _, key := range []string{KeyLineNumber, KeySymbol, KeyName, KeyQuantity} {
		if len(cfg.Parser.HeaderSynonyms[key]) == 0 {
			t.Errorf("no default synonyms for %q", key)
		}
	}
}

// A missing config file is not an error: the tool runs on defaults.
func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Document.NumberFormat == "" {
		t.Error("defaults not applied")
	}
}

func TestLoadOverridesAndSynonymMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
issuer:
  name: "Firma X"
document:
  place: "Wrocław"
  group_rows_by_symbol: false
parser:
  extensions: ["XLSX", ".xlsm"]
  header_synonyms:
    quantity: ["szt"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Issuer.Name != "Firma X" {
		t.Errorf("issuer name = %q", cfg.Issuer.Name)
	}
	if cfg.Document.Place != "Wrocław" {
		t.Errorf("place = %q", cfg.Document.Place)
	}
	if *cfg.Document.GroupRowsBySymbol {
		t.Error("group_rows_by_symbol override lost")
	}
	// Unset keys still get their defaults.
	if cfg.Document.Title == "" || cfg.Document.Warehouse == "" {
		t.Error("defaults not applied for unset document keys")
	}

	// Extensions are normalized to lowercase with a leading dot.
	if cfg.Parser.Extensions[0] != ".xlsx" || cfg.Parser.Extensions[1] != ".xlsm" {
		t.Errorf("extensions = %v", cfg.Parser.Extensions)
	}

	// User synonyms extend the defaults instead of replacing them.
	quantity := cfg.Parser.HeaderSynonyms[KeyQuantity]
	if len(quantity) != 3 {
		t.Fatalf("quantity synonyms = %v, want built-ins plus szt", quantity)
	}
	if quantity[2] != "szt" {
		t.Errorf("user synonym lost: %v", quantity)
	}
	if len(cfg.Parser.HeaderSynonyms[KeySymbol]) == 0 {
		t.Error("defaults for untouched keys lost")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("issuer: [not: a: mapping"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
