package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/inventario-ledger/internal/interfaces/http"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// buildTestApp arma la API completa sobre el store en memoria.
func buildTestApp() *fiber.App {
	store := memory.New()
	log := logger.Nop()
	reportUC := inventory.NewReportUseCase(store.Entities(), store.Movements(), log)
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		EntityUC: usecase.NewEntityUseCase(store.Entities(), store, log),
		LedgerUC: inventory.NewLedgerUseCase(store.Movements(), log),
		ReportUC: reportUC,
		PDFUC:    inventory.NewBalancePDFUseCase(reportUC, pdf.NewMarotoPDFGenerator("test"), log),
	})
	return app
}

// doJSON lanza la petición y decodifica el cuerpo en out (si no es nil).
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, out any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestEntities_CrearDuplicadoYListar(t *testing.T) {
	app := buildTestApp()

	var created dto.EntityResponse
	resp := doJSON(t, app, http.MethodPost, "/api/products", dto.CreateEntityRequest{ID: "Tornillo"}, &created)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Tornillo", created.ID)

	var errResp dto.ErrorResponse
	resp = doJSON(t, app, http.MethodPost, "/api/products", dto.CreateEntityRequest{ID: "Tornillo"}, &errResp)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", errResp.Code)

	resp = doJSON(t, app, http.MethodPost, "/api/products", dto.CreateEntityRequest{}, &errResp)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errResp.Code)

	var list dto.EntityListResponse
	resp = doJSON(t, app, http.MethodGet, "/api/products", nil, &list)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, list.Total)
}

func TestEntities_IdentificadorConBarra(t *testing.T) {
	app := buildTestApp()
	doJSON(t, app, http.MethodPost, "/api/locations", dto.CreateEntityRequest{ID: "Estante 3/B"}, nil)

	var exists dto.ExistsResponse
	resp := doJSON(t, app, http.MethodGet, "/api/locations/"+url.PathEscape("Estante 3/B")+"/exists", nil, &exists)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, exists.Exists)
	assert.Equal(t, "Estante 3/B", exists.ID)
}

func TestEntities_RenombrarPropagaYBorrar(t *testing.T) {
	app := buildTestApp()
	doJSON(t, app, http.MethodPost, "/api/locations", dto.CreateEntityRequest{ID: "L1"}, nil)
	var mov dto.MovementResponse
	doJSON(t, app, http.MethodPost, "/api/movements",
		dto.RecordMovementRequest{ProductID: "P1", Category: "5", FromLocation: "L1", ToLocation: "L1"}, &mov)

	var renamed dto.EntityResponse
	resp := doJSON(t, app, http.MethodPut, "/api/locations/L1", dto.RenameEntityRequest{NewID: "Bodega"}, &renamed)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bodega", renamed.ID)

	var got dto.MovementResponse
	doJSON(t, app, http.MethodGet, "/api/movements/"+itoa(mov.ID), nil, &got)
	assert.Equal(t, "Bodega", got.FromLocation)
	assert.Equal(t, "Bodega", got.ToLocation)

	resp = doJSON(t, app, http.MethodDelete, "/api/locations/Bodega", nil, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	var errResp dto.ErrorResponse
	resp = doJSON(t, app, http.MethodDelete, "/api/locations/Bodega", nil, &errResp)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errResp.Code)
}

func TestMovements_CRUD(t *testing.T) {
	app := buildTestApp()

	var created dto.MovementResponse
	resp := doJSON(t, app, http.MethodPost, "/api/movements",
		dto.RecordMovementRequest{ProductID: "P1", Category: "5", ToLocation: "L1"}, &created)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Positive(t, created.ID)

	var updated dto.MovementResponse
	resp = doJSON(t, app, http.MethodPut, "/api/movements/"+itoa(created.ID),
		dto.UpdateMovementRequest{ProductID: "P1", Category: "6", ToLocation: "L2"}, &updated)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "6", updated.Category)
	assert.Equal(t, created.ID, updated.ID)

	var list dto.MovementListResponse
	doJSON(t, app, http.MethodGet, "/api/movements?product_id=P1", nil, &list)
	assert.Equal(t, 1, list.Total)

	resp = doJSON(t, app, http.MethodDelete, "/api/movements/"+itoa(created.ID), nil, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	var errResp dto.ErrorResponse
	resp = doJSON(t, app, http.MethodGet, "/api/movements/"+itoa(created.ID), nil, &errResp)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/movements/abc", nil, &errResp)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", errResp.Code)

	resp = doJSON(t, app, http.MethodPost, "/api/movements", dto.RecordMovementRequest{Category: "1"}, &errResp)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMovements_FiltroProductoRecortaEspacios(t *testing.T) {
	app := buildTestApp()
	doJSON(t, app, http.MethodPost, "/api/movements", dto.RecordMovementRequest{ProductID: "P1", Category: "5", ToLocation: "L1"}, nil)
	doJSON(t, app, http.MethodPost, "/api/movements", dto.RecordMovementRequest{ProductID: "P2", Category: "1", ToLocation: "L1"}, nil)

	var list dto.MovementListResponse
	resp := doJSON(t, app, http.MethodGet, "/api/movements?product_id=%20P1%20", nil, &list)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "P1", list.Items[0].ProductID)

	doJSON(t, app, http.MethodGet, "/api/movements?product_id=%20", nil, &list)
	assert.Equal(t, 2, list.Total, "un filtro vacío lista todos los movimientos")
}

func TestReports_BalanceYTotales(t *testing.T) {
	app := buildTestApp()
	doJSON(t, app, http.MethodPost, "/api/products", dto.CreateEntityRequest{ID: "P1"}, nil)
	doJSON(t, app, http.MethodPost, "/api/movements", dto.RecordMovementRequest{ProductID: "P1", Category: "3", ToLocation: "L1"}, nil)
	doJSON(t, app, http.MethodPost, "/api/movements", dto.RecordMovementRequest{ProductID: "P1", Category: "4", FromLocation: "L2", ToLocation: "L1"}, nil)

	var balance dto.BalanceReportResponse
	resp := doJSON(t, app, http.MethodGet, "/api/reports/balance", nil, &balance)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]map[string]string{"P1": {"L1": "4", "L2": "4"}}, balance.Products)

	var totals struct {
		ProductID string            `json:"product_id"`
		Totals    map[string]string `json:"totals"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/reports/location-totals/P1", nil, &totals)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{"L1": "7"}, totals.Totals)
}

func TestReports_BalancePDF(t *testing.T) {
	app := buildTestApp()
	doJSON(t, app, http.MethodPost, "/api/products", dto.CreateEntityRequest{ID: "P1"}, nil)
	doJSON(t, app, http.MethodPost, "/api/movements", dto.RecordMovementRequest{ProductID: "P1", Category: "3", ToLocation: "L1"}, nil)

	resp := doJSON(t, app, http.MethodGet, "/api/reports/balance/pdf", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestRequestLogger_RequestID(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/products", nil), -1)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
}

func TestRutaInexistente(t *testing.T) {
	app := buildTestApp()
	var errResp dto.ErrorResponse
	resp := doJSON(t, app, http.MethodGet, "/api/nope/x/y", nil, &errResp)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errResp.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
