package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"depwarn/internal/warning"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS deprecations (
			file TEXT NOT NULL,
			seq INTEGER NOT NULL,
			function_name TEXT,
			message TEXT,
			package_name TEXT,
			package_version TEXT,
			script_column INTEGER,
			script_line INTEGER,
			script_path TEXT,
			PRIMARY KEY (file, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_deprecations_package ON deprecations(package_name);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) ReplaceFile(ctx context.Context, file string, locs []warning.SourceLocation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM deprecations WHERE file = ?`, file); err != nil {
		return fmt.Errorf("failed to clear %s: %w", file, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO deprecations (file, seq, function_name, message, package_name, package_version, script_column, script_line, script_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, loc := range locs {
		var msg sql.NullString
		if loc.Message != nil {
			msg = sql.NullString{String: *loc.Message, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, file, i, loc.FunctionName, msg, loc.PackageName, loc.PackageVersion, loc.ScriptColumn, loc.ScriptLine, loc.ScriptPath); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]Record, error) {
	query := `SELECT file, function_name, message, package_name, package_version, script_column, script_line, script_path FROM deprecations`
	var where []string
	var args []any
	if filter.PackageName != "" {
		where = append(where, "package_name = ?")
		args = append(args, filter.PackageName)
	}
	if filter.File != "" {
		where = append(where, "file = ?")
		args = append(args, filter.File)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY package_name, script_path, script_line, seq"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query deprecations: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var msg sql.NullString
		if err := rows.Scan(&r.File, &r.FunctionName, &msg, &r.PackageName, &r.PackageVersion, &r.ScriptColumn, &r.ScriptLine, &r.ScriptPath); err != nil {
			return nil, fmt.Errorf("failed to scan deprecation: %w", err)
		}
		if msg.Valid {
			m := msg.String
			r.Message = &m
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
