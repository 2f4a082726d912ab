package storage

import (
	"errors"

	"github.com/noogen-projects/md-cli-test/internal/config"
	"github.com/noogen-projects/md-cli-test/internal/domain"
)

// Storage persists and loads suite run results (e.g. for the failures viewer).
type Storage interface {
	// Save stores the outcome of a new run.
	Save(output *domain.RunOutput) error
	Load() (*domain.RunOutput, error)
	// SaveOutput rewrites the last run (e.g. after marking failures resolved).
	SaveOutput(output *domain.RunOutput) error
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// MultiStorage writes to every storage and reads from the first one.
type MultiStorage []Storage

// Save stores the run in every storage and joins their errors.
func (m MultiStorage) Save(output *domain.RunOutput) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Save(output))
	}
	return errors.Join(errs...)
}

// Load reads the last run from the first storage.
func (m MultiStorage) Load() (*domain.RunOutput, error) {
	if len(m) == 0 {
		return nil, errors.New("no storage configured")
	}
	return m[0].Load()
}

// SaveOutput rewrites the last run in every storage.
func (m MultiStorage) SaveOutput(output *domain.RunOutput) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.SaveOutput(output))
	}
	return errors.Join(errs...)
}

// New returns the JSON storage, fanned out to MySQL when a results DSN is
// configured.
func New(cfg *config.Config) Storage {
	jsonStorage := NewJSONStorage(cfg)
	dsn := cfg.GetResultsDSN()
	if dsn == "" {
		return jsonStorage
	}
	return MultiStorage{jsonStorage, NewMySQLStorage(dsn)}
}
