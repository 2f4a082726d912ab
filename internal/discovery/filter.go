package discovery

import (
	"path/filepath"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/noogen-projects/md-cli-test/internal/domain"
)

// Filter filters documents by file name and sections by title
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters documents by name pattern using wildcard matching
// Supports patterns like "*GUIDE.md" or "*install*"
func (f *Filter) FilterByName(documents []string, pattern string) []string {
	if pattern == "" {
		return documents
	}

	var filtered []string
	for _, document := range documents {
		if matchName(filepath.Base(document), pattern) {
			filtered = append(filtered, document)
		}
	}
	return filtered
}

// FilterSections keeps the sections whose title matches pattern. Patterns
// with wildcards are matched like file names, other patterns fuzzily and
// case-insensitively, so "inst" selects "Installation".
func (f *Filter) FilterSections(sections []domain.Section, pattern string) []domain.Section {
	if pattern == "" {
		return sections
	}

	var filtered []domain.Section
	for _, section := range sections {
		if strings.ContainsAny(pattern, "*?") {
			if matchName(section.Title, pattern) {
				filtered = append(filtered, section)
			}
			continue
		}
		if fuzzy.MatchFold(pattern, section.Title) {
			filtered = append(filtered, section)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	// Try to match using filepath.Match (supports * and ? wildcards)
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.Contains(pattern, "*") {
		// If no wildcards, do a simple contains check
		return !strings.Contains(pattern, "?") && strings.Contains(name, pattern)
	}

	// Flexible substring match for patterns like "*install*": every
	// non-empty part must occur in the name
	hasPart := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		if !strings.Contains(name, part) {
			return false
		}
		hasPart = true
	}
	return hasPart
}
