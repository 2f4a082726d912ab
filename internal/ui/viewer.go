package ui

import "github.com/noogen-projects/md-cli-test/internal/domain"

// Viewer displays run results in an interactive TUI
type Viewer interface {
	View(results *domain.RunOutput) error
}
