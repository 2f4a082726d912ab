package commands

import (
	"github.com/spf13/cobra"

	"github.com/noogen-projects/md-cli-test/internal/cli"
	"github.com/noogen-projects/md-cli-test/internal/config"
	"github.com/noogen-projects/md-cli-test/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Migrate  *MigrateCommand
	Failures *FailuresCommand

	session *session
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	s := &session{}
	formatter := ui.NewFormatter(cfg)

	return &Commands{
		Run:      NewRunCommand(cfg, s, formatter),
		List:     NewListCommand(cfg, s, formatter),
		Migrate:  NewMigrateCommand(cfg),
		Failures: NewFailuresCommand(cfg, s),
		session:  s,
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Update config with flags after parsing
	preRun := func(cmd *cobra.Command, args []string) error {
		return c.session.prepare(cfg, flags, args)
	}
	postRun := func(cmd *cobra.Command, args []string) error {
		return c.session.close()
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn or error (default \""+config.DefaultLogLevel+"\")")
	rootCmd.PersistentFlags().StringVar(&flags.LogFile, "log-file", "", "Also write JSON logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flags.LogJournal, "log-journal", false, "Also send logs to the systemd journal")
	rootCmd.PersistentFlags().StringVar(&flags.ResultsDSN, "results-dsn", "", "MySQL DSN to also store results in (or "+config.ResultsDSNEnv+")")
	rootCmd.PersistentFlags().BoolVar(&flags.NoProgress, "no-progress", false, "Do not draw progress bars")

	// Run command
	runCmd := &cobra.Command{
		Use:   "run [document|dir]...",
		Short: "Run the shell transcripts of markdown documents",
		Long: "Replay every sh/shell code block of the given markdown documents and compare the output " +
			"with the transcript. Directories are scanned for *.md files. Defaults to " + config.DefaultDocument + ".",
		RunE:    c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.Validate(); err != nil {
				return err
			}
			return preRun(cmd, args)
		},
		PostRunE: postRun,
	}
	addDocumentFlags(runCmd, flags)
	runCmd.Flags().StringVarP(&flags.BinaryAlias, "alias", "a", "", "Name used in transcripts for the program under test")
	runCmd.Flags().StringVarP(&flags.BinaryName, "bin", "b", "", "Program the alias runs (required with --alias)")
	runCmd.Flags().StringArrayVar(&flags.BinDirs, "bin-dir", nil, "Directory searched for programs before PATH (repeatable)")
	runCmd.Flags().StringArrayVarP(&flags.Envs, "env", "e", nil, "Environment override KEY=VALUE for programs (repeatable)")
	runCmd.Flags().StringVar(&flags.EnvFile, "env-file", "", "Read environment overrides from a dotenv file")
	runCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Timeout for each external command (0 disables)")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first failed case")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only sections that failed in the last run")
	runCmd.Flags().BoolVarP(&flags.Watch, "watch", "w", false, "Run again whenever a document changes")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:      "list [document|dir]...",
		Short:    "List discovered transcripts",
		Long:     "Scan and list markdown documents and their sections without executing them",
		RunE:     c.List.Execute,
		PreRunE:  preRun,
		PostRunE: postRun,
	}
	addDocumentFlags(listCmd, flags)
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List the cases of every section")
	rootCmd.AddCommand(listCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:      "migrate",
		Short:    "Create or update the results database schema",
		Long:     "Create the MySQL results database and apply pending schema migrations",
		Args:     cobra.NoArgs,
		RunE:     c.Migrate.Execute,
		PreRunE:  preRun,
		PostRunE: postRun,
	}
	rootCmd.AddCommand(migrateCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:      "failures",
		Short:    "View failed cases interactively",
		Long:     "Display the failed cases of the last run in an interactive viewer",
		Args:     cobra.NoArgs,
		RunE:     c.Failures.Execute,
		PreRunE:  preRun,
		PostRunE: postRun,
	}
	rootCmd.AddCommand(failuresCmd)
}

func addDocumentFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter documents by name pattern (supports wildcards, e.g., '*GUIDE.md' or '*install*')")
	cmd.Flags().StringVarP(&flags.Section, "section", "s", "", "Filter sections by title (wildcards, or a fuzzy match)")
}
