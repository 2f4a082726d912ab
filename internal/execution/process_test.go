package execution

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noogen-projects/md-cli-test/internal/config"
	"github.com/noogen-projects/md-cli-test/internal/domain"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExecProcess_Run(t *testing.T) {
	skipWithoutShell(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.txt"), nil, 0644))
	process := NewExecProcess(config.New())

	result, err := process.Run(context.Background(), Invocation{
		Program: "sh",
		Args:    []string{"-c", `echo "$GREETING"; ls; echo oops >&2; exit 3`},
		Dir:     dir,
		Env:     []domain.EnvVar{{Key: "GREETING", Value: "hello"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "hello\nmarker.txt\n", result.Stdout)
	assert.Equal(t, "oops\n", result.Stderr)
	assert.Equal(t, 3, result.ExitCode)
}

func TestExecProcess_Resolve(t *testing.T) {
	skipWithoutShell(t)
	binDir := t.TempDir()
	script := filepath.Join(binDir, "mdtest-fixture")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho from bin dir\n"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "not-executable"), nil, 0644))

	cfg := config.New()
	cfg.BinDirs = []string{binDir}
	process := NewExecProcess(cfg)

	path, err := process.Resolve("mdtest-fixture")
	require.NoError(t, err)
	assert.Equal(t, script, path)

	result, err := process.Run(context.Background(), Invocation{Program: "mdtest-fixture", Dir: binDir})
	require.NoError(t, err)
	assert.Equal(t, "from bin dir\n", result.Stdout)

	_, err = process.Resolve("not-executable")
	assert.ErrorIs(t, err, ErrEnvironment)

	_, err = process.Resolve("mdtest-definitely-missing-program")
	assert.ErrorIs(t, err, ErrEnvironment)
}

func TestExecProcess_Timeout(t *testing.T) {
	skipWithoutShell(t)
	cfg := config.New()
	cfg.Timeout = 50 * time.Millisecond
	process := NewExecProcess(cfg)

	_, err := process.Run(context.Background(), Invocation{Program: "sleep", Args: []string{"5"}, Dir: t.TempDir()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.False(t, errors.Is(err, ErrEnvironment))
}
