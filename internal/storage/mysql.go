package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/noogen-projects/md-cli-test/internal/domain"
	"github.com/noogen-projects/md-cli-test/internal/migration"
)

// MySQLStorage keeps the history of runs in a MySQL database whose schema
// is created by the migrate command.
type MySQLStorage struct {
	dbManager *migration.DatabaseManager
}

// NewMySQLStorage creates a new MySQLStorage for the given DSN
func NewMySQLStorage(dsn string) *MySQLStorage {
	return &MySQLStorage{dbManager: migration.NewDatabaseManager(dsn)}
}

// Save inserts the run and its failures.
func (s *MySQLStorage) Save(output *domain.RunOutput) error {
	return s.withTx(func(ctx context.Context, tx *sql.Tx) error {
		meta := output.Meta
		res, err := tx.ExecContext(ctx,
			"INSERT INTO runs (documents, sections, total_cases, passed_cases, failed_cases, duration, duration_seconds, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			meta.Documents, meta.Sections, meta.TotalCases, meta.PassedCases, meta.FailedCases, meta.Duration, meta.DurationSeconds, meta.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}
		runID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		for i, failure := range output.Details {
			commands, err := json.Marshal(failure.Commands)
			if err != nil {
				return fmt.Errorf("marshal commands: %w", err)
			}
			_, err = tx.ExecContext(ctx,
				"INSERT INTO failures (run_id, position, section, commands, command, source_path, source_line, expected, actual, diff, message, resolved) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
				runID, i, failure.Section, string(commands), failure.Command, failure.SourcePath, failure.SourceLine,
				failure.Expected, failure.Actual, failure.Diff, failure.Message, failure.Resolved,
			)
			if err != nil {
				return fmt.Errorf("insert failure: %w", err)
			}
		}
		return nil
	})
}

// Load reads the most recent run.
func (s *MySQLStorage) Load() (*domain.RunOutput, error) {
	var output domain.RunOutput
	err := s.withTx(func(ctx context.Context, tx *sql.Tx) error {
		runID, err := latestRun(ctx, tx, &output.Meta)
		if err != nil {
			return err
		}

		rows, err := tx.QueryContext(ctx,
			"SELECT section, commands, command, source_path, source_line, expected, actual, diff, message, resolved FROM failures WHERE run_id = ? ORDER BY position",
			runID,
		)
		if err != nil {
			return fmt.Errorf("read failures: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var failure domain.Failure
			var commands string
			if err := rows.Scan(&failure.Section, &commands, &failure.Command, &failure.SourcePath, &failure.SourceLine,
				&failure.Expected, &failure.Actual, &failure.Diff, &failure.Message, &failure.Resolved); err != nil {
				return fmt.Errorf("read failures: %w", err)
			}
			if err := json.Unmarshal([]byte(commands), &failure.Commands); err != nil {
				return fmt.Errorf("parse commands: %w", err)
			}
			output.Details = append(output.Details, failure)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return &output, nil
}

// SaveOutput updates the resolved marks of the most recent run.
func (s *MySQLStorage) SaveOutput(output *domain.RunOutput) error {
	return s.withTx(func(ctx context.Context, tx *sql.Tx) error {
		var meta domain.RunMeta
		runID, err := latestRun(ctx, tx, &meta)
		if err != nil {
			return err
		}
		for i, failure := range output.Details {
			if _, err := tx.ExecContext(ctx, "UPDATE failures SET resolved = ? WHERE run_id = ? AND position = ?", failure.Resolved, runID, i); err != nil {
				return fmt.Errorf("update failure: %w", err)
			}
		}
		return nil
	})
}

func latestRun(ctx context.Context, tx *sql.Tx, meta *domain.RunMeta) (int64, error) {
	var runID int64
	err := tx.QueryRowContext(ctx,
		"SELECT id, documents, sections, total_cases, passed_cases, failed_cases, duration, duration_seconds, created_at FROM runs ORDER BY id DESC LIMIT 1",
	).Scan(&runID, &meta.Documents, &meta.Sections, &meta.TotalCases, &meta.PassedCases, &meta.FailedCases,
		&meta.Duration, &meta.DurationSeconds, &meta.Timestamp)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("no runs recorded yet")
	}
	if err != nil {
		return 0, fmt.Errorf("read run: %w", err)
	}
	return runID, nil
}

func (s *MySQLStorage) withTx(fn func(ctx context.Context, tx *sql.Tx) error) error {
	ctx := context.Background()
	db, err := s.dbManager.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(ctx, tx); err != nil {
		return rollback(tx, err)
	}
	return tx.Commit()
}

type rollbacker interface {
	Rollback() error
}

// rollback aborts tx after err and keeps both errors.
func rollback(tx rollbacker, err error) error {
	if rbErr := tx.Rollback(); rbErr != nil {
		return errors.Join(err, fmt.Errorf("rollback transaction: %w", rbErr))
	}
	return err
}
