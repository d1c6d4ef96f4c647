package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.EntityRepository = (*EntityRepo)(nil)

// EntityRepo implementación de EntityRepository sobre PostgreSQL (usable con pool o tx).
type EntityRepo struct {
	q Querier
}

// NewEntityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEntityRepository(q Querier) *EntityRepo {
	return &EntityRepo{q: q}
}

// Create persiste una entidad nueva.
func (r *EntityRepo) Create(ctx context.Context, e *entity.Entity) error {
	tbl, key, err := table(e.Kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %s (%s, date_created) VALUES ($1, $2)`, tbl, key)
	if _, err := r.q.Exec(ctx, query, e.ID, e.CreatedAt); err != nil {
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
	query := fmt.Sprintf(`SELECT %s, date_created FROM %s WHERE %s = $1`, key, tbl, key)
	e := entity.Entity{Kind: kind}
	if err := r.q.QueryRow(ctx, query, id).Scan(&e.ID, &e.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, tbl, key)
	if err := r.q.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, storageErr("exists "+string(kind), err)
	}
	return exists, nil
}

// Rename actualiza la llave primaria en sitio.
func (r *EntityRepo) Rename(ctx context.Context, kind entity.Kind, oldID, newID string) error {
	tbl, key, err := table(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, tbl, key, key)
	cmd, err := r.q.Exec(ctx, query, oldID, newID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storageErr("rename "+string(kind), err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina por identificador sin revisar movimientos.
func (r *EntityRepo) Delete(ctx context.Context, kind entity.Kind, id string) error {
	tbl, key, err := table(kind)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, tbl, key), id)
	if err != nil {
		return storageErr("delete "+string(kind), err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista por fecha de creación ascendente; los empates siguen el orden de inserción.
func (r *EntityRepo) List(ctx context.Context, kind entity.Kind) ([]*entity.Entity, error) {
	tbl, key, err := table(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s, date_created FROM %s ORDER BY date_created, seq`, key, tbl)
	rows, err := r.q.Query(ctx, query)
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
