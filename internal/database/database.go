// Package database sets up/opens the program database.
package database

import (
	"database/sql"
	"fmt"

	"grabarr/internal/domain/logger"

	// Package sqlite3 provides interface to SQLite3 databases.
	_ "github.com/mattn/go-sqlite3"
)

const (
	dbDriver = "sqlite3"
)

// Database holds the download history database.
type Database struct {
	DB *sql.DB
}

// InitDB opens (or creates) the database at path and makes sure the tables exist.
func InitDB(path string) (d *Database, err error) {
	d = new(Database)
	d.DB, err = sql.Open(dbDriver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at path %q: %w", path, err)
	}
	defer func() {
		if err != nil {
			if cErr := d.DB.Close(); cErr != nil {
				logger.Pl.E("Failed to close database after error %v: %v", err, cErr)
			}
		}
	}()

	pragmas := []struct{ stmt, what string }{
		{`PRAGMA journal_mode = WAL;`, "enable WAL mode"},
		{`PRAGMA busy_timeout = 5000;`, "set busy_timeout"},
		{`PRAGMA synchronous = NORMAL;`, "set synchronous mode"},
	}
	for _, p := range pragmas {
		if _, err = d.DB.Exec(p.stmt); err != nil {
			return nil, fmt.Errorf("failed to %s: %w", p.what, err)
		}
	}

	if err = d.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}
	return d, nil
}

// Close closes the underlying database.
func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// initTables initializes the SQL tables.
func (d *Database) initTables() (err error) {
	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Pl.E("Panic rollback failed for table creation: %v", rbErr)
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Pl.E("transaction rollback failed after original error %v: %v", err, rbErr)
			}
		}
	}()

	if err = initDownloadsTable(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
