package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `m.movement_id, m.product_id, m.category, m.from_location, m.to_location, m.movement_time`

// MovementRepo implementación del ledger sobre SQLite.
type MovementRepo struct {
	q querier
}

// Create inserta el movimiento y toma el ID asignado por AUTOINCREMENT.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO product_movements (product_id, category, from_location, to_location, movement_time)
		VALUES (?, ?, ?, ?, ?)`,
		movement.ProductID, movement.Category,
		nullable(movement.FromLocation), nullable(movement.ToLocation),
		movement.MovedAt,
	)
	if err != nil {
		return storageErr("insert movement", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storageErr("insert movement", err)
	}
	movement.ID = id
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+movementColumns+` FROM product_movements m WHERE m.movement_id = ?`, id)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("get movement", err)
	}
	return m, nil
}

// Update sobrescribe producto, categoría, origen y destino.
func (r *MovementRepo) Update(ctx context.Context, movement *entity.Movement) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE product_movements
		SET product_id = ?, category = ?, from_location = ?, to_location = ?
		WHERE movement_id = ?`,
		movement.ProductID, movement.Category,
		nullable(movement.FromLocation), nullable(movement.ToLocation),
		movement.ID,
	)
	if err != nil {
		return storageErr("update movement", err)
	}
	return requireAffected(res, "update movement")
}

// Delete elimina un movimiento por ID.
func (r *MovementRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM product_movements WHERE movement_id = ?`, id)
	if err != nil {
		return storageErr("delete movement", err)
	}
	return requireAffected(res, "delete movement")
}

// ListAll lista por fecha ascendente.
func (r *MovementRepo) ListAll(ctx context.Context) ([]*entity.Movement, error) {
	return r.list(ctx, "list movements",
		`SELECT `+movementColumns+` FROM product_movements m ORDER BY m.movement_time, m.movement_id`)
}

// ListByProduct lista los movimientos de un producto en orden de inserción.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	return r.list(ctx, "list by product",
		`SELECT `+movementColumns+` FROM product_movements m WHERE m.product_id = ? ORDER BY m.movement_id`, productID)
}

// ListForBalance une con products y ordena por producto y ID.
func (r *MovementRepo) ListForBalance(ctx context.Context) ([]*entity.Movement, error) {
	return r.list(ctx, "list for balance", `
		SELECT `+movementColumns+`
		FROM product_movements m
		JOIN products p ON p.product_id = m.product_id
		ORDER BY m.product_id, m.movement_id`)
}

// TotalsByLocation suma en Go: SQLite no tiene un tipo decimal exacto.
func (r *MovementRepo) TotalsByLocation(ctx context.Context, productID string) (entity.LocationTotals, []int64, error) {
	movs, err := r.ListByProduct(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	totals, skipped := inventory.SumByLocation(movs)
	return totals, skipped, nil
}

// ReplaceProduct reescribe el producto de los movimientos que usan oldID.
func (r *MovementRepo) ReplaceProduct(ctx context.Context, oldID, newID string) (int64, error) {
	res, err := r.q.ExecContext(ctx, `UPDATE product_movements SET product_id = ? WHERE product_id = ?`, newID, oldID)
	if err != nil {
		return 0, storageErr("propagate product rename", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// ReplaceLocation reescribe origen y destino con dos sentencias independientes.
func (r *MovementRepo) ReplaceLocation(ctx context.Context, oldID, newID string) (int64, error) {
	var total int64
	for _, col := range []string{"from_location", "to_location"} {
		res, err := r.q.ExecContext(ctx, `UPDATE product_movements SET `+col+` = ? WHERE `+col+` = ?`, newID, oldID)
		if err != nil {
			return 0, storageErr("propagate "+col+" rename", err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	return total, nil
}

func (r *MovementRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()
	list := make([]*entity.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, storageErr(op, err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return list, nil
}

// scanner lo cumplen *sql.Row y *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMovement(row scanner) (*entity.Movement, error) {
	var m entity.Movement
	var from, to sql.NullString
	if err := row.Scan(&m.ID, &m.ProductID, &m.Category, &from, &to, &m.MovedAt); err != nil {
		return nil, err
	}
	m.FromLocation = from.String
	m.ToLocation = to.String
	return &m, nil
}
