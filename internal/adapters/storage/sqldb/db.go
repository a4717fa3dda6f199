// Package sqldb implementa los repositorios sobre database/sql.
// El mismo SQL corre en Postgres (pgx) y en SQLite (modernc); solo cambian
// los placeholders y el DDL.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"pawcare/internal/platform/apperr"
)

var (
	ErrNotFound = apperr.ErrNotFound
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

type DB struct {
	db      *sql.DB
	dialect Dialect
}

// OpenPostgres abre una conexión pool a Postgres usando pgx (database/sql).
func OpenPostgres(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	return open(ctx, db, Postgres)
}

// OpenSQLite abre (o crea) el archivo en path.
func OpenSQLite(ctx context.Context, path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// un solo writer; evita SQLITE_BUSY entre conexiones del pool
	db.SetMaxOpenConns(1)

	return open(ctx, db, SQLite)
}

func open(ctx context.Context, db *sql.DB, dialect Dialect) (*DB, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	out := &DB{db: db, dialect: dialect}
	if err := out.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return out, nil
}

func (d *DB) Dialect() Dialect { return d.dialect }

func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// PingContext lo usa /health.
func (d *DB) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Migrate crea las tablas si no existen. No hay versionado de esquema.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema(d.dialect) {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", d.dialect, err)
		}
	}
	return nil
}

var placeholder = regexp.MustCompile(`\$(\d+)`)

// rebind pasa $N a ?N para SQLite.
func (d *DB) rebind(q string) string {
	if d.dialect != SQLite {
		return q
	}
	return placeholder.ReplaceAllString(q, "?$1")
}

func (d *DB) exec(ctx context.Context, q string, args ...any) (sql.Result, error) {
	return d.db.ExecContext(ctx, d.rebind(q), args...)
}

func (d *DB) query(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	return d.db.QueryContext(ctx, d.rebind(q), args...)
}

func (d *DB) queryRow(ctx context.Context, q string, args ...any) *sql.Row {
	return d.db.QueryRowContext(ctx, d.rebind(q), args...)
}

// execAffecting trata 0 filas afectadas como ErrNotFound (UPDATE/DELETE por id).
func (d *DB) execAffecting(ctx context.Context, q string, args ...any) error {
	res, err := d.exec(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
