package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

const movementNotFound = "movimiento no encontrado"

// MovementHandler maneja las peticiones HTTP del ledger de movimientos.
type MovementHandler struct {
	uc *inventory.LedgerUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.LedgerUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

func badMovementID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de movimiento inválido"})
}

// Record godoc
// @Summary      Registrar movimiento
// @Description  Origen vacío = entrada; destino vacío = salida. No se valida que producto o ubicaciones existan.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Record(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, movementNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         movements
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, ok := movementID(c)
	if !ok {
		return badMovementID(c)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, movementNotFound)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Description  Sin filtro ordena por fecha; con product_id devuelve solo ese producto en orden de registro.
// @Tags         movements
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var (
		out *dto.MovementListResponse
		err error
	)
	if productID := strings.TrimSpace(c.Query("product_id")); productID != "" {
		out, err = h.uc.ListByProduct(c.UserContext(), productID)
	} else {
		out, err = h.uc.ListAll(c.UserContext())
	}
	if err != nil {
		return respondError(c, err, movementNotFound)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Corregir movimiento
// @Description  Reemplaza producto, categoría, origen y destino. ID y fecha se conservan.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementRequest  true  "Campos nuevos"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	id, ok := movementID(c)
	if !ok {
		return badMovementID(c)
	}
	var in dto.UpdateMovementRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err, movementNotFound)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Tags         movements
// @Param        id   path  int  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id, ok := movementID(c)
	if !ok {
		return badMovementID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err, movementNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
