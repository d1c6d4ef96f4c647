package entity

import "github.com/shopspring/decimal"

// BalanceReport producto -> ubicación -> última categoría observada.
// Se recalcula en cada consulta; nunca se persiste.
type BalanceReport map[string]map[string]string

// Category devuelve la categoría registrada para (producto, ubicación).
func (r BalanceReport) Category(productID, locationID string) (string, bool) {
	locs, ok := r[productID]
	if !ok {
		return "", false
	}
	c, ok := locs[locationID]
	return c, ok
}

// Has indica si (producto, ubicación) ya tiene categoría.
func (r BalanceReport) Has(productID, locationID string) bool {
	_, ok := r.Category(productID, locationID)
	return ok
}

// Set registra la categoría de (producto, ubicación).
func (r BalanceReport) Set(productID, locationID, category string) {
	locs, ok := r[productID]
	if !ok {
		locs = make(map[string]string)
		r[productID] = locs
	}
	locs[locationID] = category
}

// LocationTotals ubicación destino -> suma de categorías numéricas.
type LocationTotals map[string]decimal.Decimal
