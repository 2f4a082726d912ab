package migration

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrator prepares the results database schema
type Migrator interface {
	Run(ctx context.Context) error
}

// Migration is one schema change, applied at most once
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Migrations lists the schema of the results database in order
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "create_runs_table",
		SQL: "CREATE TABLE IF NOT EXISTS runs (" +
			"id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY, " +
			"documents INT NOT NULL, " +
			"sections INT NOT NULL, " +
			"total_cases INT NOT NULL, " +
			"passed_cases INT NOT NULL, " +
			"failed_cases INT NOT NULL, " +
			"duration VARCHAR(64) NOT NULL, " +
			"duration_seconds DOUBLE NOT NULL, " +
			"created_at VARCHAR(64) NOT NULL" +
			") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	},
	{
		Version: 2,
		Name:    "create_failures_table",
		SQL: "CREATE TABLE IF NOT EXISTS failures (" +
			"run_id BIGINT UNSIGNED NOT NULL, " +
			"position INT NOT NULL, " +
			"section VARCHAR(255) NOT NULL, " +
			"commands TEXT NOT NULL, " +
			"command TEXT NOT NULL, " +
			"source_path VARCHAR(1024) NOT NULL, " +
			"source_line INT NOT NULL, " +
			"expected MEDIUMTEXT NOT NULL, " +
			"actual MEDIUMTEXT NOT NULL, " +
			"diff MEDIUMTEXT NOT NULL, " +
			"message MEDIUMTEXT NOT NULL, " +
			"resolved BOOLEAN NOT NULL DEFAULT FALSE, " +
			"PRIMARY KEY (run_id, position), " +
			"CONSTRAINT fk_failures_run FOREIGN KEY (run_id) REFERENCES runs (id) ON DELETE CASCADE" +
			") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	},
}

const createMigrationsTable = "CREATE TABLE IF NOT EXISTS schema_migrations (" +
	"version INT NOT NULL PRIMARY KEY, " +
	"name VARCHAR(255) NOT NULL" +
	")"

// SchemaMigrator applies Migrations that are not recorded yet
type SchemaMigrator struct {
	databaseManager *DatabaseManager
	migrations      []Migration
	progress        func(total int) Progress
}

// Progress reports applied migrations
type Progress interface {
	Add(n int) error
	Finish() error
}

// NewSchemaMigrator creates a new SchemaMigrator
func NewSchemaMigrator(dbManager *DatabaseManager) *SchemaMigrator {
	return &SchemaMigrator{
		databaseManager: dbManager,
		migrations:      Migrations,
	}
}

// SetProgress sets the progress reporter factory
func (sm *SchemaMigrator) SetProgress(factory func(total int) Progress) {
	sm.progress = factory
}

// Run executes all pending migrations
func (sm *SchemaMigrator) Run(ctx context.Context) error {
	db, err := sm.databaseManager.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	return sm.Apply(ctx, db)
}

// Apply executes all pending migrations on an open database
func (sm *SchemaMigrator) Apply(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}
	pending := Pending(sm.migrations, applied)
	if len(pending) == 0 {
		return nil
	}

	var progress Progress
	if sm.progress != nil {
		progress = sm.progress(len(pending))
		defer progress.Finish()
	}

	for _, m := range pending {
		if _, err := db.ExecContext(ctx, m.SQL); err != nil {
			return fmt.Errorf("migration %d_%s failed: %w", m.Version, m.Name, err)
		}
		if _, err := db.ExecContext(ctx, "INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d_%s: %w", m.Version, m.Name, err)
		}
		if progress != nil {
			progress.Add(1)
		}
	}
	return nil
}

// Pending returns the migrations whose version is not in applied, in order
func Pending(migrations []Migration, applied map[int]bool) []Migration {
	var pending []Migration
	for _, m := range migrations {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}
	return pending
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}
