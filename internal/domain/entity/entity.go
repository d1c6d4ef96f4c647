package entity

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifica el tipo de entidad de referencia (producto, ubicación o cliente).
type Kind string

const (
	KindProduct  Kind = "product"
	KindLocation Kind = "location"
	KindCustomer Kind = "customer"
)

// Kinds en el orden en que se muestran en listados.
var Kinds = []Kind{KindProduct, KindLocation, KindCustomer}

// ParseKind acepta el nombre singular o plural ("product", "products").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "product", "products":
		return KindProduct, nil
	case "location", "locations":
		return KindLocation, nil
	case "customer", "customers":
		return KindCustomer, nil
	}
	return "", fmt.Errorf("tipo de entidad desconocido: %q", s)
}

// Plural nombre usado en rutas y archivos ("products").
func (k Kind) Plural() string {
	return string(k) + "s"
}

// Propagates indica si los movimientos guardan copias del identificador de este tipo.
// Los clientes no aparecen en el ledger.
func (k Kind) Propagates() bool {
	return k == KindProduct || k == KindLocation
}

// Entity representa un producto, ubicación o cliente. El ID lo elige el usuario,
// es único por tipo y puede renombrarse.
type Entity struct {
	Kind      Kind
	ID        string
	CreatedAt time.Time
}
