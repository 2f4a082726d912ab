package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/noogen-projects/md-cli-test/internal/config"
	"github.com/noogen-projects/md-cli-test/internal/execution"
	"github.com/noogen-projects/md-cli-test/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	session   *session
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, s *session, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		session:   s,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	suite := execution.NewSuite(lc.config, nil, lc.session.logger)
	documents, err := suite.Load()
	if err != nil {
		return err
	}

	if len(documents) == 0 {
		color.Yellow("No documents found")
		return nil
	}

	// Mark documents that failed in the last run, if any
	last, _ := lc.session.storage.Load()

	lc.formatter.PrintDocumentList(documents, lc.config.Flags.TestCases, ui.FailedDocuments(lc.config.ProjectPath, last))
	return nil
}
