package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

func newEntityUC(t *testing.T) (*usecase.EntityUseCase, *memory.Store) {
	t.Helper()
	store := memory.New()
	return usecase.NewEntityUseCase(store.Entities(), store, logger.Nop()), store
}

func TestEntityUseCase_AddDuplicado(t *testing.T) {
	ctx := context.Background()
	uc, _ := newEntityUC(t)

	out, err := uc.Add(ctx, entity.KindProduct, dto.CreateEntityRequest{ID: "  Tornillo  "})
	require.NoError(t, err)
	assert.Equal(t, "Tornillo", out.ID)
	assert.Equal(t, "product", out.Kind)
	assert.False(t, out.CreatedAt.IsZero())

	_, err = uc.Add(ctx, entity.KindProduct, dto.CreateEntityRequest{ID: "Tornillo"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Add(ctx, entity.KindProduct, dto.CreateEntityRequest{ID: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEntityUseCase_RenameProductoPropaga(t *testing.T) {
	ctx := context.Background()
	uc, store := newEntityUC(t)
	_, err := uc.Add(ctx, entity.KindProduct, dto.CreateEntityRequest{ID: "P1"})
	require.NoError(t, err)
	require.NoError(t, store.Movements().Create(ctx, &entity.Movement{ProductID: "P1", Category: "5", ToLocation: "L1"}))
	require.NoError(t, store.Movements().Create(ctx, &entity.Movement{ProductID: "P2", Category: "1", ToLocation: "L1"}))

	out, err := uc.Rename(ctx, entity.KindProduct, "P1", dto.RenameEntityRequest{NewID: "P9"})
	require.NoError(t, err)
	assert.Equal(t, "P9", out.ID)

	movs, err := store.Movements().ListByProduct(ctx, "P9")
	require.NoError(t, err)
	assert.Len(t, movs, 1)
	left, err := store.Movements().ListByProduct(ctx, "P1")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestEntityUseCase_RenameUbicacionOrigenYDestino(t *testing.T) {
	ctx := context.Background()
	uc, store := newEntityUC(t)
	_, err := uc.Add(ctx, entity.KindLocation, dto.CreateEntityRequest{ID: "L1"})
	require.NoError(t, err)
	m := &entity.Movement{ProductID: "P1", FromLocation: "L1", ToLocation: "L1"}
	require.NoError(t, store.Movements().Create(ctx, m))

	_, err = uc.Rename(ctx, entity.KindLocation, "L1", dto.RenameEntityRequest{NewID: "Bodega"})
	require.NoError(t, err)

	got, err := store.Movements().GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bodega", got.FromLocation)
	assert.Equal(t, "Bodega", got.ToLocation)
}

func TestEntityUseCase_RenameClienteNoTocaMovimientos(t *testing.T) {
	ctx := context.Background()
	uc, store := newEntityUC(t)
	_, err := uc.Add(ctx, entity.KindCustomer, dto.CreateEntityRequest{ID: "C1"})
	require.NoError(t, err)
	// Un movimiento con el mismo texto en sus campos no se ve afectado.
	m := &entity.Movement{ProductID: "C1", ToLocation: "C1"}
	require.NoError(t, store.Movements().Create(ctx, m))

	_, err = uc.Rename(ctx, entity.KindCustomer, "C1", dto.RenameEntityRequest{NewID: "C2"})
	require.NoError(t, err)

	got, err := store.Movements().GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "C1", got.ProductID)
	assert.Equal(t, "C1", got.ToLocation)
}

func TestEntityUseCase_RenameErrores(t *testing.T) {
	ctx := context.Background()
	uc, store := newEntityUC(t)
	for _, id := range []string{"L1", "L2"} {
		_, err := uc.Add(ctx, entity.KindLocation, dto.CreateEntityRequest{ID: id})
		require.NoError(t, err)
	}
	require.NoError(t, store.Movements().Create(ctx, &entity.Movement{ProductID: "P1", ToLocation: "L1"}))

	_, err := uc.Rename(ctx, entity.KindLocation, "nope", dto.RenameEntityRequest{NewID: "L3"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Rename(ctx, entity.KindLocation, "L1", dto.RenameEntityRequest{NewID: "L2"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Rename(ctx, entity.KindLocation, "L1", dto.RenameEntityRequest{NewID: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Ningún intento fallido reescribió el ledger.
	movs, err := store.Movements().ListByProduct(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, "L1", movs[0].ToLocation)
}

func TestEntityUseCase_RenameMismoIDEsNoOp(t *testing.T) {
	ctx := context.Background()
	uc, _ := newEntityUC(t)
	_, err := uc.Add(ctx, entity.KindProduct, dto.CreateEntityRequest{ID: "P1"})
	require.NoError(t, err)

	out, err := uc.Rename(ctx, entity.KindProduct, "P1", dto.RenameEntityRequest{NewID: "P1"})
	require.NoError(t, err)
	assert.Equal(t, "P1", out.ID)
}

func TestEntityUseCase_DeleteConservaMovimientos(t *testing.T) {
	ctx := context.Background()
	uc, store := newEntityUC(t)
	_, err := uc.Add(ctx, entity.KindProduct, dto.CreateEntityRequest{ID: "P1"})
	require.NoError(t, err)
	require.NoError(t, store.Movements().Create(ctx, &entity.Movement{ProductID: "P1"}))

	require.NoError(t, uc.Delete(ctx, entity.KindProduct, "P1"))
	assert.ErrorIs(t, uc.Delete(ctx, entity.KindProduct, "P1"), domain.ErrNotFound)

	exists, err := uc.Exists(ctx, entity.KindProduct, "P1")
	require.NoError(t, err)
	assert.False(t, exists)

	movs, err := store.Movements().ListByProduct(ctx, "P1")
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestEntityUseCase_ListOrdenCreacion(t *testing.T) {
	ctx := context.Background()
	uc, _ := newEntityUC(t)
	for _, id := range []string{"Z", "A", "M"} {
		_, err := uc.Add(ctx, entity.KindLocation, dto.CreateEntityRequest{ID: id})
		require.NoError(t, err)
	}

	out, err := uc.List(ctx, entity.KindLocation)
	require.NoError(t, err)
	require.Equal(t, 3, out.Total)
	assert.Equal(t, "Z", out.Items[0].ID)
	assert.Equal(t, "A", out.Items[1].ID)
	assert.Equal(t, "M", out.Items[2].ID)
}
