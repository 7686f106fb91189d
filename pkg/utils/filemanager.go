// =============================================================================
// WZ Generator - File Utilities
// =============================================================================
//
// Shared file-system helpers used by the aggregator, the document generator
// and the command layer: input discovery, output naming and a few small
// predicates.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// INPUT DISCOVERY
// =============================================================================

// DiscoverFiles lists the regular files in dir whose extension matches one of
// the given extensions (lowercase, with leading dot). The scan is
// non-recursive and skips Office lock files ("~$...") as well as any file
// whose name matches one of the exclude globs. The order of the returned
// paths follows the directory listing and is not specified.
//
// The exclude globs keep previously generated output files (the XLSX summary
// in particular, which carries the same headers as an input spreadsheet) from
// being discovered as inputs on the next run of the same folder.
//
// PARAMETERS:
//   - dir: the folder to scan.
//   - extensions: accepted extensions, e.g. []string{".xlsx"}.
//   - exclude: glob patterns matched case-insensitively against base names.
//
// RETURNS:
//   - The matching file paths.
//   - An error if the directory cannot be read.
func DiscoverFiles(dir string, extensions []string, exclude []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	accepted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		accepted[strings.ToLower(ext)] = true
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "~$") {
			// Lock file left behind by an open Office document.
			continue
		}
		if !accepted[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		if matchesAny(name, exclude) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}

	return files, nil
}

// matchesAny reports whether the base name matches one of the globs,
// ignoring case. Malformed globs never match.
func matchesAny(name string, globs []string) bool {
	lower := strings.ToLower(name)
	for _, glob := range globs {
		if ok, err := filepath.Match(strings.ToLower(glob), lower); err == nil && ok {
			return true
		}
	}
	return false
}

// =============================================================================
// OUTPUT NAMING
// =============================================================================

// GenerateOutputFileName expands the placeholders in a file name or document
// number format:
//
//	{uuid}      - a random UUID
//	{timestamp} - current timestamp (YYYYMMDD_HHMMSS)
//	{date}      - current date (YYYY-MM-DD)
func GenerateOutputFileName(format string) string {
	now := time.Now()

	name := format
	name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())
	name = strings.ReplaceAll(name, "{timestamp}", now.Format("20060102_150405"))
	name = strings.ReplaceAll(name, "{date}", now.Format("2006-01-02"))
	return name
}

// GlobFromFormat turns a file name format into a glob that matches every
// name the format can expand to, by widening each placeholder to "*".
// Used to recognize previously generated outputs during input discovery.
func GlobFromFormat(format string) string {
	glob := format
	glob = strings.ReplaceAll(glob, "{uuid}", "*")
	glob = strings.ReplaceAll(glob, "{timestamp}", "*")
	glob = strings.ReplaceAll(glob, "{date}", "*")
	return glob
}

// SanitizeFileName replaces the characters that are not allowed in file names
// on common filesystems with underscores.
func SanitizeFileName(name string) string {
	const forbidden = `<>:"/\|?*`
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbidden, r) {
			return '_'
		}
		return r
	}, name)
}

// =============================================================================
// SMALL PREDICATES
// =============================================================================

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates the directory (and any parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
