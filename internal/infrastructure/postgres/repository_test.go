package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/repotest"
	"github.com/jhoicas/inventario-ledger/pkg/config"
)

// Requiere TEST_DATABASE_URL apuntando a una base desechable: cada caso vacía las tablas.
func TestRepositories_Contrato(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repotest.Run(t, func(t *testing.T) repotest.Backend {
		_, err := pool.Exec(ctx, `TRUNCATE products, locations, customers, product_movements`)
		require.NoError(t, err)
		return repotest.Backend{
			Entities:  postgres.NewEntityRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
		}
	})
}
