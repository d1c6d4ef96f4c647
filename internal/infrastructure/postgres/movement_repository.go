package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `m.movement_id, m.product_id, m.category, m.from_location, m.to_location, m.movement_time`

// numericCategory categorías que decimal.NewFromString acepta tras recortar espacios.
const numericCategory = `^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`

// trimmedCategory recorta los mismos espacios que strings.TrimSpace en ASCII.
const trimmedCategory = `btrim(m.category, E' \t\n\r\f\v')`

// MovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento; el ID lo asigna la columna identity.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	query := `
		INSERT INTO product_movements (product_id, category, from_location, to_location, movement_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING movement_id`
	err := r.q.QueryRow(ctx, query,
		movement.ProductID, movement.Category,
		nullable(movement.FromLocation), nullable(movement.ToLocation),
		movement.MovedAt,
	).Scan(&movement.ID)
	if err != nil {
		return storageErr("insert movement", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM product_movements m WHERE m.movement_id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("get movement", err)
	}
	return m, nil
}

// Update sobrescribe producto, categoría, origen y destino.
func (r *MovementRepo) Update(ctx context.Context, movement *entity.Movement) error {
	query := `
		UPDATE product_movements
		SET product_id = $2, category = $3, from_location = $4, to_location = $5
		WHERE movement_id = $1`
	cmd, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.Category,
		nullable(movement.FromLocation), nullable(movement.ToLocation),
	)
	if err != nil {
		return storageErr("update movement", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un movimiento por ID.
func (r *MovementRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM product_movements WHERE movement_id = $1`, id)
	if err != nil {
		return storageErr("delete movement", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAll lista por fecha ascendente.
func (r *MovementRepo) ListAll(ctx context.Context) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM product_movements m ORDER BY m.movement_time, m.movement_id`
	return r.list(ctx, "list movements", query)
}

// ListByProduct lista los movimientos de un producto en orden de inserción.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM product_movements m WHERE m.product_id = $1 ORDER BY m.movement_id`
	return r.list(ctx, "list by product", query, productID)
}

// ListForBalance une con products y ordena por producto (collation binaria) y ID.
func (r *MovementRepo) ListForBalance(ctx context.Context) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM product_movements m
		JOIN products p ON p.product_id = m.product_id
		ORDER BY m.product_id COLLATE "C", m.movement_id`
	return r.list(ctx, "list for balance", query)
}

// TotalsByLocation suma en el servidor con NUMERIC; el códec de shopspring decodifica cada SUM.
func (r *MovementRepo) TotalsByLocation(ctx context.Context, productID string) (entity.LocationTotals, []int64, error) {
	query := `
		SELECT m.to_location, SUM(` + trimmedCategory + `::numeric)
		FROM product_movements m
		WHERE m.product_id = $1 AND m.to_location IS NOT NULL AND ` + trimmedCategory + ` ~ $2
		GROUP BY m.to_location`
	rows, err := r.q.Query(ctx, query, productID, numericCategory)
	if err != nil {
		return nil, nil, storageErr("sum by location", err)
	}
	defer rows.Close()
	totals := make(entity.LocationTotals)
	for rows.Next() {
		var location string
		var sum decimal.Decimal
		if err := rows.Scan(&location, &sum); err != nil {
			return nil, nil, storageErr("sum by location", err)
		}
		totals[location] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, nil, storageErr("sum by location", err)
	}

	skipped, err := r.nonNumeric(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	return totals, skipped, nil
}

func (r *MovementRepo) nonNumeric(ctx context.Context, productID string) ([]int64, error) {
	query := `
		SELECT m.movement_id
		FROM product_movements m
		WHERE m.product_id = $1 AND m.to_location IS NOT NULL AND ` + trimmedCategory + ` !~ $2
		ORDER BY m.movement_id`
	rows, err := r.q.Query(ctx, query, productID, numericCategory)
	if err != nil {
		return nil, storageErr("list non-numeric", err)
	}
	defer rows.Close()
	var skipped []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, storageErr("list non-numeric", err)
		}
		skipped = append(skipped, id)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list non-numeric", err)
	}
	return skipped, nil
}

// ReplaceProduct reescribe el producto de los movimientos que usan oldID.
func (r *MovementRepo) ReplaceProduct(ctx context.Context, oldID, newID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE product_movements SET product_id = $2 WHERE product_id = $1`, oldID, newID)
	if err != nil {
		return 0, storageErr("propagate product rename", err)
	}
	return cmd.RowsAffected(), nil
}

// ReplaceLocation reescribe origen y destino con dos sentencias independientes.
func (r *MovementRepo) ReplaceLocation(ctx context.Context, oldID, newID string) (int64, error) {
	from, err := r.q.Exec(ctx, `UPDATE product_movements SET from_location = $2 WHERE from_location = $1`, oldID, newID)
	if err != nil {
		return 0, storageErr("propagate from_location rename", err)
	}
	to, err := r.q.Exec(ctx, `UPDATE product_movements SET to_location = $2 WHERE to_location = $1`, oldID, newID)
	if err != nil {
		return 0, storageErr("propagate to_location rename", err)
	}
	return from.RowsAffected() + to.RowsAffected(), nil
}

func (r *MovementRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
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

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var from, to *string
	if err := row.Scan(&m.ID, &m.ProductID, &m.Category, &from, &to, &m.MovedAt); err != nil {
		return nil, err
	}
	m.FromLocation = deref(from)
	m.ToLocation = deref(to)
	return &m, nil
}
