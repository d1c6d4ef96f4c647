package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// Los movimientos guardan los identificadores por valor, así que un renombre de producto o
// ubicación debe reescribir el ledger completo. movRepo debe estar atado a la misma transacción
// que el renombre de la entidad.

// OnProductRenamed reemplaza oldID por newID en el producto de cada movimiento.
func OnProductRenamed(ctx context.Context, movRepo repository.MovementRepository, oldID, newID string) (int64, error) {
	return movRepo.ReplaceProduct(ctx, oldID, newID)
}

// OnLocationRenamed reemplaza oldID por newID en origen y destino, de forma independiente:
// un movimiento con oldID en ambos lados queda actualizado en ambos.
func OnLocationRenamed(ctx context.Context, movRepo repository.MovementRepository, oldID, newID string) (int64, error) {
	return movRepo.ReplaceLocation(ctx, oldID, newID)
}

// PropagateRename despacha según el tipo. Los clientes no aparecen en el ledger.
func PropagateRename(ctx context.Context, movRepo repository.MovementRepository, kind entity.Kind, oldID, newID string) (int64, error) {
	switch kind {
	case entity.KindProduct:
		return OnProductRenamed(ctx, movRepo, oldID, newID)
	case entity.KindLocation:
		return OnLocationRenamed(ctx, movRepo, oldID, newID)
	}
	return 0, nil
}
