package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/noogen-projects/md-cli-test/internal/config"
	"github.com/noogen-projects/md-cli-test/internal/migration"
	"github.com/noogen-projects/md-cli-test/internal/ui"
)

// MigrateCommand handles the migrate command
type MigrateCommand struct {
	config *config.Config
}

// NewMigrateCommand creates a new MigrateCommand
func NewMigrateCommand(cfg *config.Config) *MigrateCommand {
	return &MigrateCommand{config: cfg}
}

// Execute runs the command
func (mc *MigrateCommand) Execute(cmd *cobra.Command, args []string) error {
	migrator := migration.NewSchemaMigrator(migration.NewDatabaseManager(mc.config.GetResultsDSN()))
	if ui.ProgressEnabled(mc.config.Flags.NoProgress) {
		migrator.SetProgress(func(total int) migration.Progress {
			return ui.NewMigrationBar(total)
		})
	}

	if err := migrator.Run(cmd.Context()); err != nil {
		return err
	}
	color.Green("✓ Results database is up to date")
	return nil
}
