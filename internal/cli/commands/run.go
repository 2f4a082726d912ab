package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/noogen-projects/md-cli-test/internal/config"
	"github.com/noogen-projects/md-cli-test/internal/domain"
	"github.com/noogen-projects/md-cli-test/internal/execution"
	"github.com/noogen-projects/md-cli-test/internal/ui"
	"github.com/noogen-projects/md-cli-test/internal/watch"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	session   *session
	formatter *ui.Formatter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, s *session, formatter *ui.Formatter) *RunCommand {
	return &RunCommand{
		config:    cfg,
		session:   s,
		formatter: formatter,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	report, err := rc.runOnce(ctx)
	if err != nil {
		return err
	}

	if rc.config.Flags.Watch {
		return rc.watch(ctx)
	}

	if report != nil && !report.Success() {
		return fmt.Errorf("%d case(s) failed", report.Failed())
	}
	return nil
}

// runOnce loads the documents, runs them and stores the results. The
// report is nil when there was nothing to run.
func (rc *RunCommand) runOnce(ctx context.Context) (*execution.Report, error) {
	process := execution.NewExecProcess(rc.config)
	runner := execution.NewRunner(process, rc.session.logger)
	suite := execution.NewSuite(rc.config, runner, rc.session.logger)

	documents, err := suite.Load()
	if err != nil {
		return nil, err
	}

	// Run only sections that failed in the last run
	if rc.config.Flags.OnlyFailed {
		last, err := rc.session.storage.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load last run: %w", err)
		}
		documents = execution.KeepFailedSections(documents, last.Details)
	}

	if countCases(documents) == 0 {
		color.Yellow("No cases to execute")
		return nil, nil
	}

	// Create and set progress bar
	if ui.ProgressEnabled(rc.config.Flags.NoProgress) {
		suite.SetProgress(func(total int) execution.Progress {
			return ui.NewProgressBar(total)
		})
	}

	report, err := suite.RunDocuments(ctx, documents)
	if err != nil {
		return report, err
	}

	// Save results
	output := report.Output()
	if err := rc.session.storage.Save(output); err != nil {
		return report, fmt.Errorf("failed to save results: %w", err)
	}

	// Print stats
	rc.formatter.PrintMetaStats(output)
	if report.Stopped {
		color.Yellow("Stopped after the first failure (--fail-fast)")
	}

	if !report.Success() && rc.config.Flags.OpenFailures {
		if err := ui.NewErrorViewer(rc.config, rc.session.storage).View(output); err != nil {
			return report, err
		}
	}
	return report, nil
}

// watch re-runs the documents on every change until interrupted
func (rc *RunCommand) watch(ctx context.Context) error {
	w, err := watch.New(rc.config.GetDocuments(), rc.session.logger)
	if err != nil {
		return err
	}
	defer w.Close()

	color.Cyan("Watching for changes, press Ctrl+C to stop")
	return w.Run(ctx, func(ctx context.Context) error {
		if _, err := rc.runOnce(ctx); err != nil {
			rc.session.logger.Error("run failed", "error", err)
		}
		color.Cyan("Watching for changes, press Ctrl+C to stop")
		return nil
	})
}

func countCases(documents []domain.Document) int {
	total := 0
	for _, document := range documents {
		total += document.CaseCount()
	}
	return total
}
