// Package backend elige la implementación de persistencia según DB_DRIVER.
package backend

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// Backend repositorios y runner transaccional sobre el mismo almacenamiento.
type Backend struct {
	Entities  repository.EntityRepository
	Movements repository.MovementRepository
	Tx        inventory.TxRunner
	close     func()
}

// Close libera conexiones. Seguro de llamar más de una vez.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
		b.close = nil
	}
}

// Open abre el backend configurado y aplica el esquema si corresponde.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		log.Info().Str("driver", cfg.Driver).Msg("persistencia lista")
		return &Backend{
			Entities:  postgres.NewEntityRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
			close:     pool.Close,
		}, nil

	case config.DriverSQLite:
		store, err := sqlite.New(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("abrir SQLite %s: %w", cfg.SQLitePath, err)
		}
		log.Info().Str("driver", cfg.Driver).Str("path", cfg.SQLitePath).Msg("persistencia lista")
		return &Backend{
			Entities:  store.Entities(),
			Movements: store.Movements(),
			Tx:        store,
			close: func() {
				if err := store.Close(); err != nil {
					log.Error().Err(err).Msg("cerrar SQLite")
				}
			},
		}, nil

	case config.DriverMemory:
		store := memory.New()
		log.Warn().Str("driver", cfg.Driver).Msg("persistencia en memoria: los datos se pierden al reiniciar")
		return &Backend{Entities: store.Entities(), Movements: store.Movements(), Tx: store}, nil
	}
	return nil, fmt.Errorf("DB_DRIVER no soportado: %q", cfg.Driver)
}
