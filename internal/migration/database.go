package migration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// DatabaseManager manages the results database
type DatabaseManager struct {
	dsn string
}

// NewDatabaseManager creates a new DatabaseManager for the given DSN
func NewDatabaseManager(dsn string) *DatabaseManager {
	return &DatabaseManager{dsn: dsn}
}

// Open connects to the results database, creating it first when the server
// does not have it yet.
func (dm *DatabaseManager) Open(ctx context.Context) (*sql.DB, error) {
	cfg, err := ParseDSN(dm.dsn)
	if err != nil {
		return nil, err
	}
	if err := dm.ensureDatabase(ctx, cfg); err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", cfg.DBName, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", cfg.DBName, err)
	}
	return db, nil
}

// ParseDSN parses a MySQL DSN and checks that it names a usable database.
func ParseDSN(dsn string) (*mysql.Config, error) {
	if dsn == "" {
		return nil, fmt.Errorf("results database is not configured")
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid results DSN: %w", err)
	}
	if !isValidDatabaseName(cfg.DBName) {
		return nil, fmt.Errorf("invalid database name: %q", cfg.DBName)
	}
	// Timestamps are scanned into time.Time
	cfg.ParseTime = true
	return cfg, nil
}

func (dm *DatabaseManager) ensureDatabase(ctx context.Context, cfg *mysql.Config) error {
	// Connect to MySQL server (without specifying database)
	server := cfg.Clone()
	server.DBName = ""
	db, err := sql.Open("mysql", server.FormatDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	// Test connection
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database server: %w", err)
	}

	exists, err := databaseExists(ctx, db, cfg.DBName)
	if err != nil {
		return fmt.Errorf("failed to check database %s: %w", cfg.DBName, err)
	}
	if exists {
		return nil
	}
	if err := createDatabase(ctx, db, cfg.DBName); err != nil {
		return fmt.Errorf("failed to create database %s: %w", cfg.DBName, err)
	}
	return nil
}

// databaseExists checks if a database exists
func databaseExists(ctx context.Context, db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRowContext(ctx, query, dbName).Scan(&exists)
	return exists, err
}

// createDatabase creates a new database
func createDatabase(ctx context.Context, db *sql.DB, dbName string) error {
	// Sanitize database name to prevent SQL injection
	if !isValidDatabaseName(dbName) {
		return fmt.Errorf("invalid database name: %s", dbName)
	}

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbName)
	_, err := db.ExecContext(ctx, query)
	return err
}

// isValidDatabaseName validates database name (basic check)
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	// Check for SQL injection patterns
	invalidChars := []string{"'", "\"", "`", ";", "--", "/*", "*/", "DROP", "DELETE", "TRUNCATE"}
	upperName := strings.ToUpper(name)
	for _, char := range invalidChars {
		if strings.Contains(upperName, char) {
			return false
		}
	}
	return true
}
