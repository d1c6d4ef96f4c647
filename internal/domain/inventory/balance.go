package inventory

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// zeroCategory valor con el que se inicializa una ubicación antes de sobrescribirla.
const zeroCategory = "0"

// ReduceBalances recorre el ledger y devuelve la última categoría vista por producto y ubicación
// (servicio de dominio).
//
// movs debe venir ordenado por producto y luego por ID de movimiento. No acumula cantidades:
// cada fila sobrescribe la categoría de las ubicaciones que toca. La primera fila de cada producto
// solo registra algo si tiene destino y no tiene origen; en las filas siguientes se inicializa a lo
// sumo una ubicación nueva (destino antes que origen) y luego se sobrescriben las que ya existan.
func ReduceBalances(movs []*entity.Movement) entity.BalanceReport {
	report := make(entity.BalanceReport)
	current := ""
	for _, m := range movs {
		p := m.ProductID
		if p == current {
			if m.HasTo() && !report.Has(p, m.ToLocation) {
				report.Set(p, m.ToLocation, zeroCategory)
			} else if m.HasFrom() && !report.Has(p, m.FromLocation) {
				report.Set(p, m.FromLocation, zeroCategory)
			}
			if m.HasTo() && report.Has(p, m.ToLocation) {
				report.Set(p, m.ToLocation, m.Category)
			}
			if m.HasFrom() && report.Has(p, m.FromLocation) {
				report.Set(p, m.FromLocation, m.Category)
			}
			continue
		}
		current = p
		if m.HasTo() && !m.HasFrom() {
			report.Set(p, m.ToLocation, m.Category)
		}
	}
	return report
}
