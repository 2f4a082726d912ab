package cli

import (
	"errors"
	"time"

	"github.com/noogen-projects/md-cli-test/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	BinaryAlias  string
	BinaryName   string
	BinDirs      []string
	Envs         []string
	EnvFile      string
	Timeout      time.Duration
	ResultsDSN   string
	LogLevel     string
	LogFile      string
	LogJournal   bool
	NameFilter   string
	Section      string
	FailFast     bool
	Watch        bool
	TestCases    bool
	NoProgress   bool
	OpenFailures bool
	OnlyFailed   bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		BinaryAlias:  f.BinaryAlias,
		BinaryName:   f.BinaryName,
		BinDirs:      f.BinDirs,
		Envs:         f.Envs,
		EnvFile:      f.EnvFile,
		Timeout:      f.Timeout,
		ResultsDSN:   f.ResultsDSN,
		LogLevel:     f.LogLevel,
		LogFile:      f.LogFile,
		LogJournal:   f.LogJournal,
		NameFilter:   f.NameFilter,
		Section:      f.Section,
		FailFast:     f.FailFast,
		Watch:        f.Watch,
		TestCases:    f.TestCases,
		NoProgress:   f.NoProgress,
		OpenFailures: f.OpenFailures,
		OnlyFailed:   f.OnlyFailed,
	}
}

// Validate checks flag combinations of the run command. The CLI is built from
// this module, so the build's main module never names the program under test.
func (f *Flags) Validate() error {
	if f.BinaryAlias != "" && f.BinaryName == "" {
		return errors.New("--alias requires --bin to name the program under test")
	}
	return nil
}
