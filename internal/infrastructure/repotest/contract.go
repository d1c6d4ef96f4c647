// Package repotest contiene la batería de pruebas común a todos los backends de repositorios.
// Cada backend la ejecuta desde su propio _test.go con una fábrica que entrega un estado vacío.
package repotest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// Backend repositorios y runner transaccional que comparten el mismo almacenamiento.
type Backend struct {
	Entities  repository.EntityRepository
	Movements repository.MovementRepository
	Tx        inventory.TxRunner
}

// Factory devuelve un backend vacío para cada subtest.
type Factory func(t *testing.T) Backend

var base = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

// Run ejecuta todos los casos contra el backend.
func Run(t *testing.T, newBackend Factory) {
	cases := []struct {
		name string
		fn   func(*testing.T, Backend)
	}{
		{"EntidadCrearObtenerExiste", entityCreateGet},
		{"EntidadDuplicadoPorTipo", entityDuplicate},
		{"EntidadRenombreConservaFechaYOrden", entityRename},
		{"EntidadBorrar", entityDelete},
		{"EntidadEmpateFechaSigueInsercion", entityListTies},
		{"MovimientoCrearAsignaID", movementCreate},
		{"MovimientoOrigenDestinoOpcionales", movementOptionalSides},
		{"MovimientoActualizar", movementUpdate},
		{"MovimientoIDsNoSeReutilizan", movementIDsNotReused},
		{"MovimientoListados", movementLists},
		{"MovimientoListForBalanceJoin", movementBalanceJoin},
		{"TotalesPorUbicacion", totalsByLocation},
		{"ReemplazoProducto", replaceProduct},
		{"ReemplazoUbicacionAmbosLados", replaceLocation},
		{"TransaccionConfirma", txCommit},
		{"TransaccionRevierte", txRollback},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, newBackend(t))
		})
	}
}

func addEntity(t *testing.T, b Backend, kind entity.Kind, id string, at time.Time) {
	t.Helper()
	require.NoError(t, b.Entities.Create(context.Background(), &entity.Entity{Kind: kind, ID: id, CreatedAt: at}))
}

func addMovement(t *testing.T, b Backend, m *entity.Movement) *entity.Movement {
	t.Helper()
	if m.MovedAt.IsZero() {
		m.MovedAt = base
	}
	require.NoError(t, b.Movements.Create(context.Background(), m))
	return m
}

func entityIDs(list []*entity.Entity) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, e.ID)
	}
	return out
}

func movementIDs(list []*entity.Movement) []int64 {
	out := make([]int64, 0, len(list))
	for _, m := range list {
		out = append(out, m.ID)
	}
	return out
}

func entityCreateGet(t *testing.T, b Backend) {
	ctx := context.Background()
	addEntity(t, b, entity.KindProduct, "Tornillo 3/8", base)

	got, err := b.Entities.GetByID(ctx, entity.KindProduct, "Tornillo 3/8")
	require.NoError(t, err)
	assert.Equal(t, "Tornillo 3/8", got.ID)
	assert.Equal(t, entity.KindProduct, got.Kind)
	assert.True(t, base.Equal(got.CreatedAt))

	ok, err := b.Entities.Exists(ctx, entity.KindProduct, "Tornillo 3/8")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.Entities.Exists(ctx, entity.KindLocation, "Tornillo 3/8")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = b.Entities.GetByID(ctx, entity.KindProduct, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func entityDuplicate(t *testing.T, b Backend) {
	ctx := context.Background()
	addEntity(t, b, entity.KindCustomer, "ACME", base)

	err := b.Entities.Create(ctx, &entity.Entity{Kind: entity.KindCustomer, ID: "ACME", CreatedAt: base})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	assert.NoError(t, b.Entities.Create(ctx, &entity.Entity{Kind: entity.KindLocation, ID: "ACME", CreatedAt: base}))
}

func entityRename(t *testing.T, b Backend) {
	ctx := context.Background()
	for i, id := range []string{"A", "B", "C"} {
		addEntity(t, b, entity.KindLocation, id, base.Add(time.Duration(i)*time.Minute))
	}

	require.NoError(t, b.Entities.Rename(ctx, entity.KindLocation, "B", "Z"))
	assert.ErrorIs(t, b.Entities.Rename(ctx, entity.KindLocation, "nope", "X"), domain.ErrNotFound)
	assert.ErrorIs(t, b.Entities.Rename(ctx, entity.KindLocation, "A", "C"), domain.ErrDuplicate)

	list, err := b.Entities.List(ctx, entity.KindLocation)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "Z", "C"}, entityIDs(list))

	got, err := b.Entities.GetByID(ctx, entity.KindLocation, "Z")
	require.NoError(t, err)
	assert.True(t, base.Add(time.Minute).Equal(got.CreatedAt))
}

func entityDelete(t *testing.T, b Backend) {
	ctx := context.Background()
	addEntity(t, b, entity.KindProduct, "P1", base)
	addMovement(t, b, &entity.Movement{ProductID: "P1", Category: "3", ToLocation: "L1"})

	require.NoError(t, b.Entities.Delete(ctx, entity.KindProduct, "P1"))
	assert.ErrorIs(t, b.Entities.Delete(ctx, entity.KindProduct, "P1"), domain.ErrNotFound)

	// Los movimientos que lo referencian siguen en el ledger.
	movs, err := b.Movements.ListByProduct(ctx, "P1")
	require.NoError(t, err)
	assert.Len(t, movs, 1)

	list, err := b.Entities.List(ctx, entity.KindProduct)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func entityListTies(t *testing.T, b Backend) {
	ctx := context.Background()
	for _, id := range []string{"Tuerca", "Arandela", "Perno"} {
		addEntity(t, b, entity.KindProduct, id, base)
	}

	list, err := b.Entities.List(ctx, entity.KindProduct)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tuerca", "Arandela", "Perno"}, entityIDs(list))
}

func movementCreate(t *testing.T, b Backend) {
	ctx := context.Background()
	first := addMovement(t, b, &entity.Movement{ProductID: "P1", Category: "5", ToLocation: "L1"})
	second := addMovement(t, b, &entity.Movement{ProductID: "P1", Category: "7", FromLocation: "L1", ToLocation: "L2"})

	assert.Positive(t, first.ID)
	assert.Greater(t, second.ID, first.ID)

	got, err := b.Movements.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "P1", got.ProductID)
	assert.Equal(t, "7", got.Category)
	assert.Equal(t, "L1", got.FromLocation)
	assert.Equal(t, "L2", got.ToLocation)
	assert.True(t, base.Equal(got.MovedAt))

	_, err = b.Movements.GetByID(ctx, 999999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func movementOptionalSides(t *testing.T, b Backend) {
	ctx := context.Background()
	m := addMovement(t, b, &entity.Movement{ProductID: "P1", Category: "1"})

	got, err := b.Movements.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, got.HasFrom())
	assert.False(t, got.HasTo())
}

func movementUpdate(t *testing.T, b Backend) {
	ctx := context.Background()
	m := addMovement(t, b, &entity.Movement{ProductID: "P1", Category: "1", ToLocation: "L1"})

	upd := &entity.Movement{ID: m.ID, ProductID: "P2", Category: "9", FromLocation: "L1"}
	require.NoError(t, b.Movements.Update(ctx, upd))

	got, err := b.Movements.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "P2", got.ProductID)
	assert.Equal(t, "9", got.Category)
	assert.Equal(t, "L1", got.FromLocation)
	assert.Equal(t, "", got.ToLocation)
	assert.True(t, base.Equal(got.MovedAt), "la fecha no cambia al actualizar")

	assert.ErrorIs(t, b.Movements.Update(ctx, &entity.Movement{ID: 999999, ProductID: "P1"}), domain.ErrNotFound)
}

func movementIDsNotReused(t *testing.T, b Backend) {
	ctx := context.Background()
	addMovement(t, b, &entity.Movement{ProductID: "P1"})
	second := addMovement(t, b, &entity.Movement{ProductID: "P1"})
	require.NoError(t, b.Movements.Delete(ctx, second.ID))

	third := addMovement(t, b, &entity.Movement{ProductID: "P1"})
	assert.Greater(t, third.ID, second.ID)

	_, err := b.Movements.GetByID(ctx, second.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, b.Movements.Delete(ctx, second.ID), domain.ErrNotFound)
}

func movementLists(t *testing.T, b Backend) {
	ctx := context.Background()
	late := addMovement(t, b, &entity.Movement{ProductID: "P1", MovedAt: base.Add(time.Hour)})
	early := addMovement(t, b, &entity.Movement{ProductID: "P2", MovedAt: base})
	other := addMovement(t, b, &entity.Movement{ProductID: "P1", MovedAt: base.Add(time.Minute)})

	all, err := b.Movements.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{early.ID, other.ID, late.ID}, movementIDs(all))

	byProduct, err := b.Movements.ListByProduct(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, []int64{late.ID, other.ID}, movementIDs(byProduct))

	none, err := b.Movements.ListByProduct(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func movementBalanceJoin(t *testing.T, b Backend) {
	ctx := context.Background()
	addEntity(t, b, entity.KindProduct, "P2", base)
	addEntity(t, b, entity.KindProduct, "P1", base.Add(time.Minute))

	a := addMovement(t, b, &entity.Movement{ProductID: "P2"})
	c := addMovement(t, b, &entity.Movement{ProductID: "P1"})
	addMovement(t, b, &entity.Movement{ProductID: "GONE"})
	d := addMovement(t, b, &entity.Movement{ProductID: "P2"})

	list, err := b.Movements.ListForBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{c.ID, a.ID, d.ID}, movementIDs(list))
}

func totalsByLocation(t *testing.T, b Backend) {
	ctx := context.Background()
	addMovement(t, b, &entity.Movement{ProductID: "P1", Category: "3", ToLocation: "L1"})
	addMovement(t, b, &entity.Movement{ProductID: "P1", Category: " 4 ", FromLocation: "L2", ToLocation: "L1"})
	addMovement(t, b, &entity.Movement{ProductID: "P1", Category: "1.5", ToLocation: "L2"})
	addMovement(t, b, &entity.Movement{ProductID: "P1", Category: "2.25", ToLocation: "L2"})
	caja := addMovement(t, b, &entity.Movement{ProductID: "P1", Category: "caja", ToLocation: "L1"})
	addMovement(t, b, &entity.Movement{ProductID: "P1", Category: "9", FromLocation: "L1"})
	addMovement(t, b, &entity.Movement{ProductID: "P2", Category: "100", ToLocation: "L1"})
	vacia := addMovement(t, b, &entity.Movement{ProductID: "P1", Category: "", ToLocation: "L3"})

	totals, skipped, err := b.Movements.TotalsByLocation(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.True(t, decimal.NewFromInt(7).Equal(totals["L1"]), "L1 = %s", totals["L1"])
	assert.True(t, decimal.RequireFromString("3.75").Equal(totals["L2"]), "L2 = %s", totals["L2"])
	assert.Equal(t, []int64{caja.ID, vacia.ID}, skipped)

	totals, skipped, err = b.Movements.TotalsByLocation(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, totals)
	assert.Empty(t, skipped)
}

func replaceProduct(t *testing.T, b Backend) {
	ctx := context.Background()
	addMovement(t, b, &entity.Movement{ProductID: "P1"})
	addMovement(t, b, &entity.Movement{ProductID: "P1"})
	addMovement(t, b, &entity.Movement{ProductID: "P2"})

	n, err := b.Movements.ReplaceProduct(ctx, "P1", "P9")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	moved, err := b.Movements.ListByProduct(ctx, "P9")
	require.NoError(t, err)
	assert.Len(t, moved, 2)
	left, err := b.Movements.ListByProduct(ctx, "P1")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func replaceLocation(t *testing.T, b Backend) {
	ctx := context.Background()
	both := addMovement(t, b, &entity.Movement{ProductID: "P1", FromLocation: "L1", ToLocation: "L1"})
	in := addMovement(t, b, &entity.Movement{ProductID: "P1", FromLocation: "L2", ToLocation: "L1"})
	untouched := addMovement(t, b, &entity.Movement{ProductID: "P1", FromLocation: "L2", ToLocation: "L3"})

	n, err := b.Movements.ReplaceLocation(ctx, "L1", "L9")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	got, err := b.Movements.GetByID(ctx, both.ID)
	require.NoError(t, err)
	assert.Equal(t, "L9", got.FromLocation)
	assert.Equal(t, "L9", got.ToLocation)

	got, err = b.Movements.GetByID(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, "L2", got.FromLocation)
	assert.Equal(t, "L9", got.ToLocation)

	got, err = b.Movements.GetByID(ctx, untouched.ID)
	require.NoError(t, err)
	assert.Equal(t, "L3", got.ToLocation)
}

func txCommit(t *testing.T, b Backend) {
	ctx := context.Background()
	addEntity(t, b, entity.KindProduct, "A", base)
	addMovement(t, b, &entity.Movement{ProductID: "A"})

	err := b.Tx.Run(ctx, func(er repository.EntityRepository, mr repository.MovementRepository) error {
		if err := er.Rename(ctx, entity.KindProduct, "A", "B"); err != nil {
			return err
		}
		_, err := mr.ReplaceProduct(ctx, "A", "B")
		return err
	})
	require.NoError(t, err)

	_, err = b.Entities.GetByID(ctx, entity.KindProduct, "B")
	assert.NoError(t, err)
	movs, err := b.Movements.ListByProduct(ctx, "B")
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func txRollback(t *testing.T, b Backend) {
	ctx := context.Background()
	addEntity(t, b, entity.KindLocation, "L1", base)
	addMovement(t, b, &entity.Movement{ProductID: "P1", ToLocation: "L1"})

	boom := errors.New("falla a mitad de la propagación")
	err := b.Tx.Run(ctx, func(er repository.EntityRepository, mr repository.MovementRepository) error {
		if err := er.Rename(ctx, entity.KindLocation, "L1", "L9"); err != nil {
			return err
		}
		if _, err := mr.ReplaceLocation(ctx, "L1", "L9"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	ok, err := b.Entities.Exists(ctx, entity.KindLocation, "L1")
	require.NoError(t, err)
	assert.True(t, ok, "el renombre debe revertirse")

	movs, err := b.Movements.ListByProduct(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "L1", movs[0].ToLocation, "la propagación debe revertirse")
}
