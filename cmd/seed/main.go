// seed carga productos, ubicaciones, clientes y movimientos desde un CSV usando los mismos
// casos de uso que la API, contra el backend configurado (DB_DRIVER).
//
// Uso: go run ./cmd/seed [-latin1] datos.csv
//
// Formato, una fila por registro (las líneas que empiezan con # se ignoran):
//
//	product,Tornillo 3/8
//	location,Bodega
//	customer,ACME
//	movement,Tornillo 3/8,5,,Bodega
//
// Los identificadores que ya existen se reportan y se omiten, así que el archivo puede
// cargarse más de una vez sin fallar (los movimientos sí se duplican).
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/backend"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

func main() {
	latin1 := flag.Bool("latin1", false, "el archivo viene en ISO-8859-1 (exportes de Excel)")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed [-latin1] archivo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	var r io.Reader = f
	if *latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	ctx := context.Background()
	store, err := backend.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir persistencia")
	}
	defer store.Close()

	imp := &importer{
		entities: usecase.NewEntityUseCase(store.Entities, store.Tx, log),
		ledger:   inventory.NewLedgerUseCase(store.Movements, log),
		log:      log.Named("seed"),
	}
	stats, err := imp.Import(ctx, r)
	if err != nil {
		log.Error().Err(err).Msg("importación interrumpida")
		store.Close()
		os.Exit(1)
	}
	log.Info().
		Int("entities", stats.Entities).
		Int("movements", stats.Movements).
		Int("skipped", stats.Skipped).
		Msg("importación terminada")
}

// importStats conteo de filas aplicadas y omitidas.
type importStats struct {
	Entities  int
	Movements int
	Skipped   int
}

type importer struct {
	entities *usecase.EntityUseCase
	ledger   *inventory.LedgerUseCase
	log      *logger.Logger
}

// Import aplica cada fila. Un duplicado se omite; cualquier otro error detiene la carga.
func (imp *importer) Import(ctx context.Context, r io.Reader) (importStats, error) {
	var stats importStats
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, fmt.Errorf("leer CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}

		if strings.EqualFold(strings.TrimSpace(rec[0]), "movement") {
			if len(rec) < 3 {
				return stats, fmt.Errorf("línea %d: movement requiere al menos producto y categoría", line)
			}
			in := dto.RecordMovementRequest{ProductID: rec[1], Category: strings.TrimSpace(rec[2])}
			if len(rec) > 3 {
				in.FromLocation = rec[3]
			}
			if len(rec) > 4 {
				in.ToLocation = rec[4]
			}
			if _, err := imp.ledger.Record(ctx, in); err != nil {
				return stats, fmt.Errorf("línea %d: %w", line, err)
			}
			stats.Movements++
			continue
		}

		kind, err := entity.ParseKind(rec[0])
		if err != nil {
			return stats, fmt.Errorf("línea %d: %w", line, err)
		}
		if len(rec) < 2 {
			return stats, fmt.Errorf("línea %d: falta el identificador", line)
		}
		_, err = imp.entities.Add(ctx, kind, dto.CreateEntityRequest{ID: rec[1]})
		if errors.Is(err, domain.ErrDuplicate) {
			imp.log.Warn().Int("line", line).Str("kind", string(kind)).Str("id", rec[1]).Msg("identificador existente, se omite")
			stats.Skipped++
			continue
		}
		if err != nil {
			return stats, fmt.Errorf("línea %d: %w", line, err)
		}
		stats.Entities++
	}
}
