package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/repotest"
)

func TestStore_Contrato(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repotest.Backend {
		store := memory.New()
		return repotest.Backend{Entities: store.Entities(), Movements: store.Movements(), Tx: store}
	})
}

func TestMovementRepo_CreateConcurrenteIDsUnicos(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().Movements()

	const n = 50
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m := &entity.Movement{ProductID: "P1"}
			if err := repo.Create(ctx, m); err == nil {
				ids <- m.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "ID repetido %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)

	list, err := repo.ListByProduct(ctx, "P1")
	require.NoError(t, err)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
}

func TestEntityRepo_ListDevuelveCopias(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().Entities()
	require.NoError(t, repo.Create(ctx, &entity.Entity{Kind: entity.KindProduct, ID: "A"}))

	list, err := repo.List(ctx, entity.KindProduct)
	require.NoError(t, err)
	list[0].ID = "mutado"

	_, err = repo.GetByID(ctx, entity.KindProduct, "A")
	assert.NoError(t, err)
}
