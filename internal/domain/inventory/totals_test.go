package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

func TestSumByLocation_SumaPorDestino(t *testing.T) {
	totals, skipped := inventory.SumByLocation([]*entity.Movement{
		mov(1, "P1", "3", "", "L1"),
		mov(2, "P1", "4", "", "L1"),
		mov(3, "P1", "9", "L1", ""),
	})

	require.Len(t, totals, 1)
	assert.True(t, decimal.NewFromInt(7).Equal(totals["L1"]), "L1 debe sumar 7, obtuvo %s", totals["L1"])
	assert.Empty(t, skipped)
}

func TestSumByLocation_Decimales(t *testing.T) {
	totals, _ := inventory.SumByLocation([]*entity.Movement{
		mov(1, "P1", "1.25", "", "L1"),
		mov(2, "P1", " 2.5 ", "X", "L1"),
		mov(3, "P1", "-1", "", "L2"),
	})

	assert.Equal(t, "3.75", totals["L1"].String())
	assert.Equal(t, "-1", totals["L2"].String())
}

func TestSumByLocation_CategoriaNoNumericaSeOmite(t *testing.T) {
	totals, skipped := inventory.SumByLocation([]*entity.Movement{
		mov(1, "P1", "2", "", "L1"),
		mov(2, "P1", "caja", "", "L1"),
		mov(3, "P1", "", "", "L2"),
	})

	assert.Equal(t, "2", totals["L1"].String())
	assert.NotContains(t, totals, "L2")
	assert.Equal(t, []int64{2, 3}, skipped)
}
