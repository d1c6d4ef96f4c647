package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

type fixture struct {
	entities *usecase.EntityUseCase
	ledger   *inventory.LedgerUseCase
	reports  *inventory.ReportUseCase
}

func newFixture() fixture {
	store := memory.New()
	log := logger.Nop()
	return fixture{
		entities: usecase.NewEntityUseCase(store.Entities(), store, log),
		ledger:   inventory.NewLedgerUseCase(store.Movements(), log),
		reports:  inventory.NewReportUseCase(store.Entities(), store.Movements(), log),
	}
}

func (f fixture) add(t *testing.T, kind entity.Kind, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := f.entities.Add(context.Background(), kind, dto.CreateEntityRequest{ID: id})
		require.NoError(t, err)
	}
}

func (f fixture) move(t *testing.T, product, category, from, to string) int64 {
	t.Helper()
	out, err := f.ledger.Record(context.Background(), dto.RecordMovementRequest{
		ProductID: product, Category: category, FromLocation: from, ToLocation: to,
	})
	require.NoError(t, err)
	return out.ID
}

func TestReportUseCase_BalanceTraslado(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.add(t, entity.KindProduct, "P1")
	f.add(t, entity.KindLocation, "L2", "L1")
	f.move(t, "P1", "5", "", "L1")
	f.move(t, "P1", "7", "L1", "L2")

	out, err := f.reports.BalanceReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]map[string]string{"P1": {"L1": "7", "L2": "7"}}, out.Products)
	// Filas en orden de creación de ubicaciones.
	assert.Equal(t, []dto.BalanceRowDTO{
		{ProductID: "P1", LocationID: "L2", Category: "7"},
		{ProductID: "P1", LocationID: "L1", Category: "7"},
	}, out.Rows)
}

func TestReportUseCase_BalanceIgnoraProductosBorrados(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.add(t, entity.KindProduct, "P1", "P2")
	f.move(t, "P1", "1", "", "L1")
	f.move(t, "P2", "2", "", "L1")
	require.NoError(t, f.entities.Delete(ctx, entity.KindProduct, "P2"))

	out, err := f.reports.BalanceReport(ctx)
	require.NoError(t, err)
	assert.Contains(t, out.Products, "P1")
	assert.NotContains(t, out.Products, "P2")
}

func TestReportUseCase_BalanceUbicacionesDesconocidasAlFinal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.add(t, entity.KindProduct, "P1")
	f.add(t, entity.KindLocation, "L9")
	f.move(t, "P1", "1", "", "zeta")
	f.move(t, "P1", "1", "", "alfa")
	f.move(t, "P1", "1", "", "L9")

	out, err := f.reports.BalanceReport(ctx)
	require.NoError(t, err)
	locs := make([]string, 0, len(out.Rows))
	for _, r := range out.Rows {
		locs = append(locs, r.LocationID)
	}
	assert.Equal(t, []string{"L9", "alfa", "zeta"}, locs)
}

func TestReportUseCase_BalanceTrasRenombre(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.add(t, entity.KindProduct, "P1")
	f.add(t, entity.KindLocation, "L1")
	f.move(t, "P1", "5", "", "L1")

	_, err := f.entities.Rename(ctx, entity.KindLocation, "L1", dto.RenameEntityRequest{NewID: "Bodega"})
	require.NoError(t, err)
	_, err = f.entities.Rename(ctx, entity.KindProduct, "P1", dto.RenameEntityRequest{NewID: "Tornillo"})
	require.NoError(t, err)

	out, err := f.reports.BalanceReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]map[string]string{"Tornillo": {"Bodega": "5"}}, out.Products)
}

func TestReportUseCase_LocationTotals(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.move(t, "P1", "3", "", "L1")
	f.move(t, "P1", "4", "L2", "L1")
	f.move(t, "P1", "9", "L1", "")
	bad := f.move(t, "P1", "caja", "", "L2")
	f.move(t, "P2", "100", "", "L1")

	out, err := f.reports.LocationTotals(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, "P1", out.ProductID)
	require.Len(t, out.Totals, 1)
	assert.True(t, decimal.NewFromInt(7).Equal(out.Totals["L1"]))
	assert.Equal(t, []int64{bad}, out.Skipped)
}

func TestReportUseCase_LocationTotalsProductoSinMovimientos(t *testing.T) {
	f := newFixture()
	out, err := f.reports.LocationTotals(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, out.Totals)
	assert.Empty(t, out.Skipped)
}
