// Package envfile reads and updates the line-oriented KEY=VALUE config file
// in the user's home directory. Values recorded there survive across
// sessions and are picked up by future processes before any interactive
// fallback runs.
package envfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultName is the config file name under the user's home directory.
const DefaultName = ".tweetkit.env"

// DefaultPath returns the conventional config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, DefaultName), nil
}

// Load parses the file into a key-value map. A missing file yields an empty
// map, not an error. Blank lines and #-comments are skipped; malformed lines
// are ignored.
func Load(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	vars := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		vars[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return vars, nil
}

// Set writes KEY=VALUE to the file, replacing an existing line for the same
// key and appending otherwise. The file is created with 0600 permissions if
// absent and rewritten atomically via temp file + rename.
func Set(path, key, value string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	var lines []string
	replaced := false
	if data, err := os.ReadFile(path); err == nil {
		for line := range strings.Lines(string(data)) {
			line = strings.TrimRight(line, "\n")
			k, _, ok := strings.Cut(strings.TrimSpace(line), "=")
			if ok && strings.TrimSpace(k) == key {
				if replaced {
					continue // drop duplicate entries for the same key
				}
				line = key + "=" + value
				replaced = true
			}
			lines = append(lines, line)
		}
	} else if !os.IsNotExist(err) {
		return err
	}
	if !replaced {
		lines = append(lines, key+"="+value)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()
	defer func() { _ = tmp.Close() }()

	if _, err := tmp.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	return os.Chmod(path, 0600)
}
