package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// EntityRepository define el puerto de persistencia para productos, ubicaciones y clientes (DIP).
// Cada tipo vive en su propia tabla con el identificador como llave primaria.
type EntityRepository interface {
	// Create devuelve domain.ErrDuplicate si el identificador ya existe para ese tipo.
	Create(ctx context.Context, e *entity.Entity) error
	// GetByID devuelve domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, kind entity.Kind, id string) (*entity.Entity, error)
	Exists(ctx context.Context, kind entity.Kind, id string) (bool, error)
	// Rename reemplaza el identificador en sitio. domain.ErrNotFound si oldID no existe,
	// domain.ErrDuplicate si newID ya está tomado.
	Rename(ctx context.Context, kind entity.Kind, oldID, newID string) error
	// Delete no verifica referencias desde movimientos.
	Delete(ctx context.Context, kind entity.Kind, id string) error
	// List ordena por fecha de creación ascendente.
	List(ctx context.Context, kind entity.Kind) ([]*entity.Entity, error)
}
