package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrDuplicate    = errors.New("identificador duplicado")
	ErrInvalidInput = errors.New("entrada inválida")
	// ErrStorage agrupa cualquier fallo del motor de persistencia. Los repositorios lo envuelven
	// con el mensaje original pero sin exponer los tipos del driver.
	ErrStorage = errors.New("fallo de almacenamiento")
)
