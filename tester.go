// Package mdtest runs the shell transcripts of markdown documents as tests.
//
// Every fenced code block tagged sh or shell is a transcript: lines starting
// with $ are commands and the lines after the first command are the output
// they are expected to print. A small set of commands (cd, ls, mkdir, rm,
// echo and cat) is built in, anything else starts a program. All cases under
// one top-level heading share a fresh temporary directory.
//
//	func TestReadme(t *testing.T) {
//		mdtest.New("README.md").WithBinaryAlias("todo").Test(t)
//	}
package mdtest

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/noogen-projects/md-cli-test/internal/config"
	"github.com/noogen-projects/md-cli-test/internal/domain"
	"github.com/noogen-projects/md-cli-test/internal/execution"
)

// Tester runs the transcripts of one document or directory.
type Tester struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Tester for the markdown document or directory at path.
func New(path string) *Tester {
	cfg := config.New()
	cfg.Documents = []string{path}
	return &Tester{cfg: cfg, logger: slog.Default()}
}

// WithBinaryAlias sets the name transcripts use for the program under test.
// Without WithBinaryName the alias runs the binary named after the main
// module of the build.
func (t *Tester) WithBinaryAlias(alias string) *Tester {
	t.cfg.BinaryAlias = alias
	return t
}

// WithBinaryName sets the program the alias runs.
func (t *Tester) WithBinaryName(name string) *Tester {
	t.cfg.BinaryName = name
	return t
}

// WithBinDir adds a directory searched for programs before PATH.
func (t *Tester) WithBinDir(dir string) *Tester {
	t.cfg.BinDirs = append(t.cfg.BinDirs, dir)
	return t
}

// WithEnv adds an environment override for started programs.
func (t *Tester) WithEnv(key, value string) *Tester {
	t.cfg.Envs = append(t.cfg.Envs, domain.EnvVar{Key: key, Value: value})
	return t
}

// WithEnvs adds environment overrides in key order.
func (t *Tester) WithEnvs(envs map[string]string) *Tester {
	keys := make([]string, 0, len(envs))
	for key := range envs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		t.WithEnv(key, envs[key])
	}
	return t
}

// WithTimeout bounds every started program.
func (t *Tester) WithTimeout(timeout time.Duration) *Tester {
	t.cfg.Timeout = timeout
	return t
}

// WithLogger sets the logger receiving the [log] lines of programs.
func (t *Tester) WithLogger(logger *slog.Logger) *Tester {
	t.logger = logger
	return t
}

func (t *Tester) run(ctx context.Context) (*execution.Report, error) {
	runner := execution.NewRunner(execution.NewExecProcess(t.cfg), t.logger)
	return execution.NewSuite(t.cfg, runner, t.logger).Run(ctx)
}

// Run replays every transcript and returns the failures joined together.
func (t *Tester) Run(ctx context.Context) error {
	report, err := t.run(ctx)
	if err != nil {
		return err
	}
	return errors.Join(report.Errors()...)
}

// Test replays every transcript and reports each failed case on tb.
func (t *Tester) Test(tb testing.TB) {
	tb.Helper()

	report, err := t.run(context.Background())
	if err != nil {
		tb.Fatal(err)
	}
	for _, err := range report.Errors() {
		tb.Error(err)
	}
}
