package repofile

import (
	"os"
	"path/filepath"
	"strings"
)

const FileName = ".focus-filter"

// Find walks up from startDir looking for a .focus-filter file.
// Returns the filter terms and the directory containing the file.
// Returns (nil, "", nil) if not found.
func Find(startDir string) (terms []string, dir string, err error) {
	dir = startDir
	for {
		terms, found, err := Read(dir)
		if err != nil {
			return nil, "", err
		}
		if found {
			return terms, dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, "", nil
		}
		dir = parent
	}
}

// Write stores terms, one per line, in dir/.focus-filter.
func Write(dir string, terms []string) error {
	return os.WriteFile(filepath.Join(dir, FileName), []byte(strings.Join(terms, "\n")+"\n"), 0644)
}

// Remove deletes dir/.focus-filter. A missing file is not an error.
func Remove(dir string) error {
	err := os.Remove(filepath.Join(dir, FileName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Read parses dir/.focus-filter. Terms are whitespace separated; lines
// starting with # are comments. found is false if the file does not exist.
func Read(dir string) (terms []string, found bool, err error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, strings.Fields(line)...)
	}
	return terms, true, nil
}
