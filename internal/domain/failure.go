package domain

import "fmt"

// Failure represents a failed transcript case
type Failure struct {
	Section    string   `json:"section"`
	Commands   []string `json:"commands"`
	Command    string   `json:"command,omitempty"`     // Command that failed, empty for setup failures
	SourcePath string   `json:"source_path"`
	SourceLine int      `json:"source_line"`
	Expected   string   `json:"expected,omitempty"`
	Actual     string   `json:"actual,omitempty"`
	Diff       string   `json:"diff,omitempty"`
	Message    string   `json:"message"`
	Resolved   bool     `json:"resolved,omitempty"` // Track if failure is marked as resolved
}

// Location formats the source position of the failing block.
func (f Failure) Location() string {
	return sourceLocation(f.SourcePath, f.SourceLine)
}

func sourceLocation(path string, line int) string {
	if path == "" && line == 0 {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", path, line)
}
