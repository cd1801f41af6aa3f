// Package postgres mirrors generated tables into a Postgres database, keeping
// parity with the sqlite sink: one TEXT column per CSV column, full replace
// per run.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"plantforge/internal/core"
	"plantforge/pkg/domain"
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/plantforge?sslmode=disable"
)

// Store is the Postgres sink.
type Store struct {
	db *sql.DB
}

// New opens a Postgres sink using the provided DSN (falls back to defaultDSN)
// and verifies connectivity.
func New(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open(defaultDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{db: db}, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func createStmt(name string, columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c) + " TEXT"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quoteIdent(name), strings.Join(quoted, ", "))
}

func insertStmt(name string, columns []string) string {
	quoted := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
		marks[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(name), strings.Join(quoted, ", "), strings.Join(marks, ", "))
}

func (s *Store) reset(ctx context.Context, name string, columns []string) error {
	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(name)); err != nil {
		return fmt.Errorf("drop %s: %w", name, err)
	}
	if _, err := s.db.ExecContext(ctx, createStmt(name, columns)); err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	return nil
}

// WriteTable replaces the SQL table with the generated rows in one transaction.
func (s *Store) WriteTable(ctx context.Context, table *domain.Table) error {
	if err := s.reset(ctx, table.Name, table.Columns); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, insertStmt(table.Name, table.Columns))
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, row := range table.Rows {
		args := make([]any, len(row))
		for i, cell := range row {
			args[i] = cell
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("insert into %s: %w", table.Name, err)
		}
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type tableWriter struct {
	ctx  context.Context
	tx   *sql.Tx
	stmt *sql.Stmt
	name string
}

func (w *tableWriter) Append(row []string) error {
	args := make([]any, len(row))
	for i, cell := range row {
		args[i] = cell
	}
	if _, err := w.stmt.ExecContext(w.ctx, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", w.name, err)
	}
	return nil
}

func (w *tableWriter) Close() error {
	if err := w.stmt.Close(); err != nil {
		_ = w.tx.Rollback()
		return err
	}
	return w.tx.Commit()
}

// OpenTable starts a transaction inserting streamed rows, committed on Close.
func (s *Store) OpenTable(ctx context.Context, name string, columns []string) (core.TableWriter, error) {
	if err := s.reset(ctx, name, columns); err != nil {
		return nil, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	stmt, err := tx.PrepareContext(ctx, insertStmt(name, columns))
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	return &tableWriter{ctx: ctx, tx: tx, stmt: stmt, name: name}, nil
}

// DB exposes the underlying handle for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
