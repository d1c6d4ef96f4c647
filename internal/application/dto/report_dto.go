package dto

import "github.com/shopspring/decimal"

// BalanceRowDTO una fila del reporte de balance.
type BalanceRowDTO struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Category   string `json:"category"`
}

// BalanceReportResponse reporte de balance: mapa anidado y filas ordenadas para la vista.
// Las filas siguen el orden de creación de productos y ubicaciones; los identificadores
// que ya no existen van al final en orden alfabético.
type BalanceReportResponse struct {
	Products map[string]map[string]string `json:"products"`
	Rows     []BalanceRowDTO              `json:"rows"`
}

// LocationTotalsResponse totales por ubicación destino de un producto.
// Skipped lista los movimientos cuya categoría no es numérica.
type LocationTotalsResponse struct {
	ProductID string                     `json:"product_id"`
	Totals    map[string]decimal.Decimal `json:"totals"`
	Skipped   []int64                    `json:"skipped,omitempty"`
}
