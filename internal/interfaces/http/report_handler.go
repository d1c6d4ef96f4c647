package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

// ReportHandler expone los reportes derivados del ledger.
type ReportHandler struct {
	uc    *inventory.ReportUseCase
	pdfUC *inventory.BalancePDFUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *inventory.ReportUseCase, pdfUC *inventory.BalancePDFUseCase) *ReportHandler {
	return &ReportHandler{uc: uc, pdfUC: pdfUC}
}

// Balance godoc
// @Summary      Reporte de balance
// @Description  Última categoría conocida por producto y ubicación, recalculada desde el ledger completo.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.BalanceReportResponse
// @Router       /api/reports/balance [get]
func (h *ReportHandler) Balance(c *fiber.Ctx) error {
	out, err := h.uc.BalanceReport(c.UserContext())
	if err != nil {
		return respondError(c, err, "reporte no disponible")
	}
	return c.JSON(out)
}

// BalancePDF godoc
// @Summary      Reporte de balance en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/balance/pdf [get]
func (h *ReportHandler) BalancePDF(c *fiber.Ctx) error {
	out, err := h.pdfUC.Generate(c.UserContext())
	if err != nil {
		return respondError(c, err, "reporte no disponible")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="balance.pdf"`)
	return c.Send(out)
}

// LocationTotals godoc
// @Summary      Totales por ubicación de un producto
// @Description  Suma numérica de la categoría por ubicación destino. Las categorías no numéricas se listan en skipped.
// @Tags         reports
// @Produce      json
// @Param        product_id  path  string  true  "Producto (URL-encoded)"
// @Success      200  {object}  dto.LocationTotalsResponse
// @Router       /api/reports/location-totals/{product_id} [get]
func (h *ReportHandler) LocationTotals(c *fiber.Ctx) error {
	productID, ok := paramID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "product_id es requerido"})
	}
	out, err := h.uc.LocationTotals(c.UserContext(), productID)
	if err != nil {
		return respondError(c, err, "producto no encontrado")
	}
	return c.JSON(out)
}
