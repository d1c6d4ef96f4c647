/*
Package sqlite implementa los repositorios del ledger sobre SQLite (database/sql + go-sqlite3).

Es el motor del sistema de referencia y sirve para instalaciones de un solo proceso.
La base se abre con una única conexión: SQLite admite un solo escritor y ":memory:"
crea una base distinta por conexión.

Uso:

	store, err := sqlite.New(ctx, "./inventory.db")
	if err != nil {
		return err
	}
	defer store.Close()
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// querier lo cumplen *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store conexión SQLite y fábrica de repositorios.
type Store struct {
	db *sql.DB
}

// New abre (o crea) la base en path y aplica el esquema. Usar ":memory:" para tests.
func New(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close cierra la conexión.
func (s *Store) Close() error {
	return s.db.Close()
}

// Entities repositorio de entidades fuera de transacción.
func (s *Store) Entities() *EntityRepo { return &EntityRepo{q: s.db} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{q: s.db} }

// Run ejecuta fn dentro de una transacción y hace Commit o Rollback.
func (s *Store) Run(ctx context.Context, fn func(
	entityRepo repository.EntityRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", domain.ErrStorage, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&EntityRepo{q: tx}, &MovementRepo{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit transaction: %v", domain.ErrStorage, err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS products (
	product_id   TEXT PRIMARY KEY,
	date_created DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS locations (
	location_id  TEXT PRIMARY KEY,
	date_created DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS customers (
	customer_id  TEXT PRIMARY KEY,
	date_created DATETIME NOT NULL
);

-- AUTOINCREMENT evita reutilizar IDs de movimientos borrados.
CREATE TABLE IF NOT EXISTS product_movements (
	movement_id   INTEGER PRIMARY KEY AUTOINCREMENT,
	product_id    TEXT NOT NULL,
	category      TEXT NOT NULL DEFAULT '',
	from_location TEXT,
	to_location   TEXT,
	movement_time DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_product_movements_product ON product_movements (product_id, movement_id);
CREATE INDEX IF NOT EXISTS idx_product_movements_time ON product_movements (movement_time, movement_id);
`
