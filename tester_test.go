package mdtest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noogen-projects/md-cli-test/internal/domain"
	"github.com/noogen-projects/md-cli-test/internal/execution"
)

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadme(t *testing.T) {
	New("README.md").Test(t)
}

func TestTester_Run(t *testing.T) {
	t.Run("passing transcript", func(t *testing.T) {
		path := writeDocument(t, "# Dirs\n\n```sh\n$ mkdir \"d\"\n$ ls .\nd\n```\n")
		assert.NoError(t, New(path).Run(context.Background()))
	})

	t.Run("mismatch names command and line", func(t *testing.T) {
		path := writeDocument(t, "# Dirs\n\n```sh\n$ mkdir \"d\"\n$ ls .\nx\n```\n")

		err := New(path).Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ls .")
		assert.Contains(t, err.Error(), path+":3")

		var mismatch *execution.MismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "x\n", mismatch.Expected)
		assert.Equal(t, "d\n", mismatch.Actual)
	})

	t.Run("missing document", func(t *testing.T) {
		err := New(filepath.Join(t.TempDir(), "missing.md")).Run(context.Background())
		assert.Error(t, err)
	})
}

func TestTester_Builder(t *testing.T) {
	tester := New("docs").
		WithBinaryAlias("todo").
		WithBinaryName("todo-cli").
		WithBinDir("bin").
		WithEnv("Z", "1").
		WithEnvs(map[string]string{"B": "2", "A": "3"})

	assert.Equal(t, []string{"docs"}, tester.cfg.Documents)
	assert.Equal(t, "todo", tester.cfg.BinaryAlias)
	assert.Equal(t, "todo-cli", tester.cfg.BinaryName)
	assert.Equal(t, []string{"bin"}, tester.cfg.BinDirs)
	assert.Equal(t, []domain.EnvVar{{Key: "Z", Value: "1"}, {Key: "A", Value: "3"}, {Key: "B", Value: "2"}}, tester.cfg.Envs)
}
