package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del ledger de movimientos (DIP).
type MovementRepository interface {
	// Create asigna ID (estrictamente creciente, nunca reutilizado) y lo escribe en movement.ID.
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id int64) (*entity.Movement, error)
	// Update sobrescribe producto, categoría, origen y destino; ID y fecha no cambian.
	Update(ctx context.Context, movement *entity.Movement) error
	Delete(ctx context.Context, id int64) error
	// ListAll ordena por fecha ascendente.
	ListAll(ctx context.Context) ([]*entity.Movement, error)
	// ListByProduct ordena por ID ascendente (orden de inserción).
	ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error)
	// ListForBalance devuelve los movimientos cuyo producto existe, ordenados por producto y ID.
	ListForBalance(ctx context.Context) ([]*entity.Movement, error)
	// TotalsByLocation suma las categorías numéricas del producto por ubicación destino.
	// Devuelve además, en orden de ID, los movimientos con destino cuya categoría no es numérica.
	TotalsByLocation(ctx context.Context, productID string) (entity.LocationTotals, []int64, error)

	// ReplaceProduct y ReplaceLocation reescriben las copias de un identificador renombrado.
	// Devuelven cuántas columnas se actualizaron.
	ReplaceProduct(ctx context.Context, oldID, newID string) (int64, error)
	ReplaceLocation(ctx context.Context, oldID, newID string) (int64, error)
}
