// Package pathutil provides collision-free naming for persisted credential
// files.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// maxSuffix bounds the numeric suffix search. Exhausting it is a documented
// degenerate case, not something callers are expected to hit.
const maxSuffix = 1000

// extensionRE matches a splittable extension at the tail of a base filename:
// alphanumerics followed by a dot and an alphabetic extension. Names without
// such a tail are treated as extensionless.
var extensionRE = regexp.MustCompile(`[[:alnum:]]+\.[[:alpha:]]+$`)

// UniquePath returns path unchanged if nothing exists there. Otherwise it
// generates candidates by inserting a numeric suffix immediately before the
// extension (token.json -> token1.json; extensionless names get the suffix
// appended) and returns the first candidate not present in the directory
// listing, hidden files included.
func UniquePath(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("listing %s: %w", dir, err)
	}
	taken := make(map[string]bool, len(entries))
	for _, e := range entries {
		taken[e.Name()] = true
	}

	stem, ext := splitExtension(filepath.Base(path))
	for i := 1; i <= maxSuffix; i++ {
		candidate := fmt.Sprintf("%s%d%s", stem, i, ext)
		if !taken[candidate] {
			return filepath.Join(dir, candidate), nil
		}
	}
	return "", fmt.Errorf("no unique name available for %s after %d attempts", path, maxSuffix)
}

// splitExtension splits a base filename into stem and extension (dot
// included), taking the extension from the last dot. Names without a
// recognizable stem.ext tail come back whole with an empty extension, so the
// numeric suffix lands at the very end.
func splitExtension(base string) (stem, ext string) {
	if !extensionRE.MatchString(base) {
		return base, ""
	}
	i := strings.LastIndex(base, ".")
	return base[:i], base[i:]
}
