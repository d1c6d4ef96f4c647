package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// SumByLocation suma la categoría de cada movimiento con destino, agrupando por ubicación destino.
// Las categorías que no son numéricas no se suman; se devuelven los IDs de esos movimientos.
func SumByLocation(movs []*entity.Movement) (entity.LocationTotals, []int64) {
	totals := make(entity.LocationTotals)
	var skipped []int64
	for _, m := range movs {
		if !m.HasTo() {
			continue
		}
		qty, err := decimal.NewFromString(strings.TrimSpace(m.Category))
		if err != nil {
			skipped = append(skipped, m.ID)
			continue
		}
		totals[m.ToLocation] = totals[m.ToLocation].Add(qty)
	}
	return totals, skipped
}
