package entity

import "time"

// Movement es un movimiento direccional de un producto entre ubicaciones.
// ProductID, FromLocation y ToLocation son copias por valor del identificador vigente;
// un renombre las reescribe (ver inventory.Propagator). Cadena vacía = ubicación ausente.
type Movement struct {
	ID           int64
	ProductID    string
	Category     string // etiqueta libre de cantidad/categoría
	FromLocation string
	ToLocation   string
	MovedAt      time.Time
}

// HasFrom indica si el movimiento tiene ubicación de origen.
func (m *Movement) HasFrom() bool { return m.FromLocation != "" }

// HasTo indica si el movimiento tiene ubicación de destino.
func (m *Movement) HasTo() bool { return m.ToLocation != "" }
