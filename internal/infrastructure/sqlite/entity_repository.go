package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.EntityRepository = (*EntityRepo)(nil)

// EntityRepo implementación de EntityRepository sobre SQLite.
type EntityRepo struct {
	q querier
}

// Create persiste una entidad nueva.
func (r *EntityRepo) Create(ctx context.Context, e *entity.Entity) error {
	tbl, key, err := table(e.Kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %s (%s, date_created) VALUES (?, ?)`, tbl, key)
	if _, err := r.q.ExecContext(ctx, query, e.ID, e.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storageErr("insert "+string(e.Kind), err)
	}
	return nil
}

// GetByID obtiene una entidad por identificador.
func (r *EntityRepo) GetByID(ctx context.Context, kind entity.Kind, id string) (*entity.Entity, error) {
	tbl, key, err := table(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s, date_created FROM %s WHERE %s = ?`, key, tbl, key)
	e := entity.Entity{Kind: kind}
	if err := r.q.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("get "+string(kind), err)
	}
	return &e, nil
}

// Exists consulta si el identificador está en uso.
func (r *EntityRepo) Exists(ctx context.Context, kind entity.Kind, id string) (bool, error) {
	tbl, key, err := table(kind)
	if err != nil {
		return false, err
	}
	var n int
	query := fmt.Sprintf(`SELECT COUNT(1) FROM %s WHERE %s = ?`, tbl, key)
	if err := r.q.QueryRowContext(ctx, query, id).Scan(&n); err != nil {
		return false, storageErr("exists "+string(kind), err)
	}
	return n > 0, nil
}

// Rename actualiza la llave primaria en sitio.
func (r *EntityRepo) Rename(ctx context.Context, kind entity.Kind, oldID, newID string) error {
	tbl, key, err := table(kind)
	if err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx, fmt.Sprintf(`UPDATE %s SET %s = ? WHERE %s = ?`, tbl, key, key), newID, oldID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storageErr("rename "+string(kind), err)
	}
	return requireAffected(res, "rename "+string(kind))
}

// Delete elimina por identificador sin revisar movimientos.
func (r *EntityRepo) Delete(ctx context.Context, kind entity.Kind, id string) error {
	tbl, key, err := table(kind)
	if err != nil {
		return err
	}
	res, err := r.q.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, tbl, key), id)
	if err != nil {
		return storageErr("delete "+string(kind), err)
	}
	return requireAffected(res, "delete "+string(kind))
}

// List lista por fecha de creación ascendente; a igual fecha, orden de inserción.
func (r *EntityRepo) List(ctx context.Context, kind entity.Kind) ([]*entity.Entity, error) {
	tbl, key, err := table(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.QueryContext(ctx, fmt.Sprintf(`SELECT %s, date_created FROM %s ORDER BY date_created, rowid`, key, tbl))
	if err != nil {
		return nil, storageErr("list "+string(kind), err)
	}
	defer rows.Close()
	list := make([]*entity.Entity, 0)
	for rows.Next() {
		e := entity.Entity{Kind: kind}
		if err := rows.Scan(&e.ID, &e.CreatedAt); err != nil {
			return nil, storageErr("scan "+string(kind), err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list "+string(kind), err)
	}
	return list, nil
}

// requireAffected convierte cero filas afectadas en domain.ErrNotFound.
func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr(op, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
