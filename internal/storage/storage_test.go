package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noogen-projects/md-cli-test/internal/config"
	"github.com/noogen-projects/md-cli-test/internal/domain"
)

func sampleOutput() *domain.RunOutput {
	return &domain.RunOutput{
		Meta: domain.RunMeta{Documents: 1, Sections: 2, TotalCases: 3, PassedCases: 2, FailedCases: 1},
		Details: []domain.Failure{{
			Section:    "Usage",
			Commands:   []string{"ls ."},
			Command:    "ls .",
			SourcePath: "README.md",
			SourceLine: 12,
			Expected:   "x",
			Actual:     "d\n",
			Message:    "mismatch",
		}},
	}
}

func TestJSONStorage(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	s := NewJSONStorage(cfg)

	_, err := s.Load()
	assert.Error(t, err, "nothing saved yet")

	require.NoError(t, s.Save(sampleOutput()))
	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleOutput(), loaded)

	loaded.Details[0].Resolved = true
	require.NoError(t, s.SaveOutput(loaded))
	reloaded, err := s.Load()
	require.NoError(t, err)
	assert.True(t, reloaded.Details[0].Resolved)
}

type failingStorage struct {
	saved int
}

func (f *failingStorage) Save(*domain.RunOutput) error {
	f.saved++
	return errors.New("unavailable")
}

func (f *failingStorage) Load() (*domain.RunOutput, error) {
	return nil, errors.New("unavailable")
}

func (f *failingStorage) SaveOutput(*domain.RunOutput) error {
	return errors.New("unavailable")
}

func TestMultiStorage(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	secondary := &failingStorage{}
	s := MultiStorage{NewJSONStorage(cfg), secondary}

	err := s.Save(sampleOutput())
	assert.ErrorContains(t, err, "unavailable")
	assert.Equal(t, 1, secondary.saved)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Meta.TotalCases)

	_, err = MultiStorage{}.Load()
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	t.Setenv(config.ResultsDSNEnv, "")
	cfg := config.New()
	assert.IsType(t, &JSONStorage{}, New(cfg))

	cfg.ResultsDSN = "root@tcp(127.0.0.1:3306)/mdtest"
	s, ok := New(cfg).(MultiStorage)
	require.True(t, ok)
	assert.Len(t, s, 2)
	assert.IsType(t, &MySQLStorage{}, s[1])
}

type fakeTx struct {
	err        error
	rolledBack bool
}

func (tx *fakeTx) Rollback() error {
	tx.rolledBack = true
	return tx.err
}

func TestRollback(t *testing.T) {
	cause := errors.New("insert failed")

	t.Run("keeps the cause", func(t *testing.T) {
		tx := &fakeTx{}
		err := rollback(tx, cause)
		assert.True(t, tx.rolledBack)
		assert.Same(t, cause, err)
	})

	t.Run("joins the rollback error", func(t *testing.T) {
		rbErr := errors.New("connection lost")
		err := rollback(&fakeTx{err: rbErr}, cause)
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, rbErr)
		assert.Contains(t, err.Error(), "rollback transaction: connection lost")
	})
}
