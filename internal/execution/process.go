package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/noogen-projects/md-cli-test/internal/config"
	"github.com/noogen-projects/md-cli-test/internal/domain"
)

// Invocation describes one external program run.
type Invocation struct {
	Program string
	Args    []string
	Dir     string
	Env     []domain.EnvVar
}

// ProcessResult holds the captured output of a finished program.
type ProcessResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Process starts external programs on behalf of the runner
type Process interface {
	Run(ctx context.Context, inv Invocation) (ProcessResult, error)
}

// ExecProcess runs programs with os/exec
type ExecProcess struct {
	binDirs []string
	timeout time.Duration
}

// NewExecProcess creates a new ExecProcess
func NewExecProcess(cfg *config.Config) *ExecProcess {
	return &ExecProcess{
		binDirs: cfg.BinDirs,
		timeout: cfg.Timeout,
	}
}

// Resolve finds the executable for program, first in the configured bin
// directories and then in PATH.
func (p *ExecProcess) Resolve(program string) (string, error) {
	if strings.ContainsRune(program, os.PathSeparator) {
		return program, nil
	}

	for _, dir := range p.binDirs {
		candidate := filepath.Join(dir, program)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() && info.Mode()&0111 != 0 {
			return candidate, nil
		}
	}

	path, err := exec.LookPath(program)
	if err != nil {
		return "", fmt.Errorf("%w: program `%s` not found: %v", ErrEnvironment, program, err)
	}
	return path, nil
}

// Run executes the program and captures its output. A non-zero exit status
// is not an error, the transcript decides whether the output is right.
func (p *ExecProcess) Run(ctx context.Context, inv Invocation) (ProcessResult, error) {
	path, err := p.Resolve(inv.Program)
	if err != nil {
		return ProcessResult{}, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, path, inv.Args...)

	// Set environment variables
	cmd.Env = os.Environ() // Start with current environment
	for _, env := range inv.Env {
		cmd.Env = append(cmd.Env, env.String())
	}

	// Set working directory
	cmd.Dir = inv.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	result := ProcessResult{
		Stdout: strings.ToValidUTF8(stdout.String(), "�"),
		Stderr: strings.ToValidUTF8(stderr.String(), "�"),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) && p.timeout > 0 {
			return result, fmt.Errorf("timed out after %s: %w", p.timeout, ctxErr)
		}
		return result, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("%w: failed to start `%s`: %v", ErrEnvironment, path, err)
	}
	return result, nil
}
