package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

func newImporter() (*importer, *memory.Store) {
	store := memory.New()
	log := logger.Nop()
	return &importer{
		entities: usecase.NewEntityUseCase(store.Entities(), store, log),
		ledger:   inventory.NewLedgerUseCase(store.Movements(), log),
		log:      log,
	}, store
}

func TestImport_EntidadesYMovimientos(t *testing.T) {
	ctx := context.Background()
	imp, store := newImporter()

	csvData := strings.Join([]string{
		"# catálogo inicial",
		"product,Tornillo 3/8",
		"locations,Bodega",
		"customer,ACME",
		"product,Tornillo 3/8",
		"movement,Tornillo 3/8,5,,Bodega",
		"movement,Tornillo 3/8,2,Bodega",
	}, "\n")

	stats, err := imp.Import(ctx, strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, importStats{Entities: 3, Movements: 2, Skipped: 1}, stats)

	movs, err := store.Movements().ListByProduct(ctx, "Tornillo 3/8")
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, "Bodega", movs[0].ToLocation)
	assert.Equal(t, "Bodega", movs[1].FromLocation)
	assert.False(t, movs[1].HasTo())
}

func TestImport_Latin1(t *testing.T) {
	ctx := context.Background()
	imp, store := newImporter()

	var buf bytes.Buffer
	w := transform.NewWriter(&buf, charmap.ISO8859_1.NewEncoder())
	_, err := w.Write([]byte("location,Almacén Año\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = imp.Import(ctx, transform.NewReader(&buf, charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)

	ok, err := store.Entities().Exists(ctx, entity.KindLocation, "Almacén Año")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestImport_ErroresDeFormato(t *testing.T) {
	ctx := context.Background()
	imp, _ := newImporter()

	_, err := imp.Import(ctx, strings.NewReader("warehouse,W1\n"))
	assert.ErrorContains(t, err, "línea 1")

	_, err = imp.Import(ctx, strings.NewReader("product,P1\nmovement,P1\n"))
	assert.ErrorContains(t, err, "línea 2")
}
