package commands

import (
	"github.com/spf13/cobra"

	"github.com/noogen-projects/md-cli-test/internal/config"
	"github.com/noogen-projects/md-cli-test/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	config  *config.Config
	session *session
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(cfg *config.Config, s *session) *FailuresCommand {
	return &FailuresCommand{
		config:  cfg,
		session: s,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	results, err := fc.session.storage.Load()
	if err != nil {
		return err
	}

	return ui.NewErrorViewer(fc.config, fc.session.storage).View(results)
}
