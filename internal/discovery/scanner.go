package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/noogen-projects/md-cli-test/internal/config"
)

// Scanner scans for markdown documents in a directory
type Scanner struct {
	skipDirs map[string]bool
	pattern  string
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap, pattern: config.DefaultDocumentPattern}
}

// Collect expands the given paths into a list of documents: files are kept
// as they are and directories are scanned.
func (s *Scanner) Collect(paths []string) ([]string, error) {
	var documents []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("document path does not exist: %s", path)
		}
		if !info.IsDir() {
			documents = append(documents, path)
			continue
		}
		found, err := s.Scan(path)
		if err != nil {
			return nil, err
		}
		documents = append(documents, found...)
	}
	return documents, nil
}

// Scan finds all markdown documents in the given root directory
func (s *Scanner) Scan(root string) ([]string, error) {
	var documents []string

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("document path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("document path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			if path == root {
				return nil
			}
			// Skip hidden directories (starting with .)
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if matched, _ := filepath.Match(s.pattern, d.Name()); matched {
			documents = append(documents, path)
		}
		return nil
	})

	return documents, err
}
