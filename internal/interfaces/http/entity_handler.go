package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// EntityHandler maneja las peticiones HTTP de un tipo de entidad (products, locations o customers).
type EntityHandler struct {
	kind entity.Kind
	uc   *usecase.EntityUseCase
}

// NewEntityHandler construye el handler para kind.
func NewEntityHandler(kind entity.Kind, uc *usecase.EntityUseCase) *EntityHandler {
	return &EntityHandler{kind: kind, uc: uc}
}

func (h *EntityHandler) notFound() string {
	return string(h.kind) + " no encontrado"
}

// Create godoc
// @Summary      Crear producto, ubicación o cliente
// @Tags         entities
// @Accept       json
// @Produce      json
// @Param        kind  path  string                   true  "Tipo"  Enums(products, locations, customers)
// @Param        body  body  dto.CreateEntityRequest  true  "Identificador"
// @Success      201   {object}  dto.EntityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/{kind} [post]
func (h *EntityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEntityRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Add(c.UserContext(), h.kind, in)
	if err != nil {
		return respondError(c, err, h.notFound())
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener entidad por identificador
// @Tags         entities
// @Produce      json
// @Param        kind  path  string  true  "Tipo"  Enums(products, locations, customers)
// @Param        id    path  string  true  "Identificador (URL-encoded)"
// @Success      200   {object}  dto.EntityResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id} [get]
func (h *EntityHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.Get(c.UserContext(), h.kind, id)
	if err != nil {
		return respondError(c, err, h.notFound())
	}
	return c.JSON(out)
}

// Exists godoc
// @Summary      Verificar si un identificador ya está en uso
// @Tags         entities
// @Produce      json
// @Param        kind  path  string  true  "Tipo"  Enums(products, locations, customers)
// @Param        id    path  string  true  "Identificador (URL-encoded)"
// @Success      200   {object}  dto.ExistsResponse
// @Router       /api/{kind}/{id}/exists [get]
func (h *EntityHandler) Exists(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	exists, err := h.uc.Exists(c.UserContext(), h.kind, id)
	if err != nil {
		return respondError(c, err, h.notFound())
	}
	return c.JSON(dto.ExistsResponse{ID: id, Exists: exists})
}

// List godoc
// @Summary      Listar entidades por fecha de creación
// @Tags         entities
// @Produce      json
// @Param        kind  path  string  true  "Tipo"  Enums(products, locations, customers)
// @Success      200   {object}  dto.EntityListResponse
// @Router       /api/{kind} [get]
func (h *EntityHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), h.kind)
	if err != nil {
		return respondError(c, err, h.notFound())
	}
	return c.JSON(out)
}

// Rename godoc
// @Summary      Renombrar entidad
// @Description  Para productos y ubicaciones reescribe también los movimientos que usan el identificador.
// @Tags         entities
// @Accept       json
// @Produce      json
// @Param        kind  path  string                   true  "Tipo"  Enums(products, locations, customers)
// @Param        id    path  string                   true  "Identificador actual (URL-encoded)"
// @Param        body  body  dto.RenameEntityRequest  true  "Nuevo identificador"
// @Success      200   {object}  dto.EntityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id} [put]
func (h *EntityHandler) Rename(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.RenameEntityRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Rename(c.UserContext(), h.kind, id, in)
	if err != nil {
		return respondError(c, err, h.notFound())
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar entidad
// @Description  Los movimientos que la referencian se conservan.
// @Tags         entities
// @Param        kind  path  string  true  "Tipo"  Enums(products, locations, customers)
// @Param        id    path  string  true  "Identificador (URL-encoded)"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id} [delete]
func (h *EntityHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.UserContext(), h.kind, id); err != nil {
		return respondError(c, err, h.notFound())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
