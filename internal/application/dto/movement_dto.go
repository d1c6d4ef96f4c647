package dto

import "time"

// RecordMovementRequest body para POST /api/movements. Origen y destino son opcionales.
type RecordMovementRequest struct {
	ProductID    string `json:"product_id" validate:"required,max=200"`
	Category     string `json:"category"`
	FromLocation string `json:"from_location,omitempty" validate:"max=200"`
	ToLocation   string `json:"to_location,omitempty" validate:"max=200"`
}

// UpdateMovementRequest body para PUT /api/movements/:id; reemplaza todos los campos.
type UpdateMovementRequest struct {
	ProductID    string `json:"product_id" validate:"required,max=200"`
	Category     string `json:"category"`
	FromLocation string `json:"from_location,omitempty" validate:"max=200"`
	ToLocation   string `json:"to_location,omitempty" validate:"max=200"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID           int64     `json:"id"`
	ProductID    string    `json:"product_id"`
	Category     string    `json:"category"`
	FromLocation string    `json:"from_location"`
	ToLocation   string    `json:"to_location"`
	MovedAt      time.Time `json:"moved_at"`
}

// MovementListResponse listado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}
