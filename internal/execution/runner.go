package execution

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/noogen-projects/md-cli-test/internal/config"
	"github.com/noogen-projects/md-cli-test/internal/domain"
	"github.com/noogen-projects/md-cli-test/internal/output"
	"github.com/noogen-projects/md-cli-test/internal/shell"
)

// Runner replays the commands of a single transcript case
type Runner struct {
	process       Process
	logger        *slog.Logger
	defaultBinary func() (string, error)
}

// NewRunner creates a new Runner
func NewRunner(process Process, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		process:       process,
		logger:        logger,
		defaultBinary: config.PackageBinaryName,
	}
}

// Run executes every command of the case in order and asserts each printed
// output against the expected text of the case. It returns the working root
// after the last command, which differs from the case's root after a cd.
func (r *Runner) Run(ctx context.Context, tc domain.TestCase) (string, error) {
	root := tc.WorkingRoot
	info, err := os.Stat(root)
	if err != nil {
		return root, &SetupError{Root: root, Err: err}
	}
	if !info.IsDir() {
		return root, &SetupError{Root: root}
	}

	for _, line := range tc.Commands {
		if err := ctx.Err(); err != nil {
			return root, err
		}

		command, tokens := shell.Parse(root, line)
		if command != nil {
			response, err := command.Run()
			if err != nil {
				return root, &CommandFailure{Command: line, Location: tc.Expected.Location(), Err: err}
			}
			switch response.Kind {
			case shell.ChangeDirTo:
				root = response.Path
			case shell.Output:
				if err := r.assert(tc, root, line, response.Output); err != nil {
					return root, err
				}
			}
			continue
		}

		if len(tokens) == 0 || tokens[0] == "" {
			return root, &MalformedError{Command: line, Location: tc.Expected.Location()}
		}

		program, err := r.program(tc, tokens[0])
		if err != nil {
			return root, err
		}

		r.logger.Debug("running program", "program", program, "args", tokens[1:], "dir", root)
		result, err := r.process.Run(ctx, Invocation{
			Program: program,
			Args:    tokens[1:],
			Dir:     root,
			Env:     tc.Envs,
		})
		if err != nil {
			if errors.Is(err, ErrEnvironment) {
				return root, err
			}
			return root, &CommandFailure{Command: line, Location: tc.Expected.Location(), Err: err}
		}

		actual := output.SeparateLogs(result.Stdout, r.logger) + output.SeparateLogs(result.Stderr, r.logger)
		if err := r.assert(tc, root, line, actual); err != nil {
			return root, err
		}
	}

	return root, nil
}

// program maps the first token to the program to start.
func (r *Runner) program(tc domain.TestCase, name string) (string, error) {
	if tc.BinaryAlias == "" || name != tc.BinaryAlias {
		return name, nil
	}
	if tc.BinaryName != "" {
		return tc.BinaryName, nil
	}
	binary, err := r.defaultBinary()
	if err != nil {
		return "", errors.Join(ErrEnvironment, err)
	}
	return binary, nil
}

func (r *Runner) assert(tc domain.TestCase, root, command, actual string) error {
	expected := output.ExpandPlaceholders(tc.Expected.Text, root)
	actual = output.NormalizePaths(actual)
	if actual == expected {
		return nil
	}
	return newMismatchError(command, tc.Expected.SourcePath, tc.Expected.SourceLine, expected, actual)
}
