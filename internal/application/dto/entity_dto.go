package dto

import "time"

// CreateEntityRequest entrada para crear un producto, ubicación o cliente.
type CreateEntityRequest struct {
	ID string `json:"id" validate:"required,max=200"`
}

// RenameEntityRequest entrada para renombrar una entidad.
type RenameEntityRequest struct {
	NewID string `json:"new_id" validate:"required,max=200"`
}

// EntityResponse salida de una entidad de referencia.
type EntityResponse struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// EntityListResponse listado ordenado por fecha de creación.
type EntityListResponse struct {
	Items []EntityResponse `json:"items"`
	Total int              `json:"total"`
}

// ExistsResponse resultado de la verificación de duplicados.
type ExistsResponse struct {
	ID     string `json:"id"`
	Exists bool   `json:"exists"`
}
