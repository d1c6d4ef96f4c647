package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// ReportUseCase calcula los reportes derivados del ledger. Solo lectura; nada se persiste.
type ReportUseCase struct {
	entityRepo repository.EntityRepository
	movRepo    repository.MovementRepository
	log        *logger.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(entityRepo repository.EntityRepository, movRepo repository.MovementRepository, log *logger.Logger) *ReportUseCase {
	return &ReportUseCase{entityRepo: entityRepo, movRepo: movRepo, log: log.Named("reports")}
}

// BalanceReport recorre el ledger completo y devuelve la última categoría por producto y ubicación.
func (uc *ReportUseCase) BalanceReport(ctx context.Context) (*dto.BalanceReportResponse, error) {
	movs, err := uc.movRepo.ListForBalance(ctx)
	if err != nil {
		return nil, err
	}
	report := inventory.ReduceBalances(movs)

	products, err := uc.entityRepo.List(ctx, entity.KindProduct)
	if err != nil {
		return nil, err
	}
	locations, err := uc.entityRepo.List(ctx, entity.KindLocation)
	if err != nil {
		return nil, err
	}
	productOrder := creationOrder(products)
	locationOrder := creationOrder(locations)

	rows := make([]dto.BalanceRowDTO, 0)
	for _, p := range sortedKeys(report, productOrder) {
		for _, l := range sortedKeys(report[p], locationOrder) {
			rows = append(rows, dto.BalanceRowDTO{ProductID: p, LocationID: l, Category: report[p][l]})
		}
	}
	uc.log.Debug().Int("movements", len(movs)).Int("rows", len(rows)).Msg("reporte de balance calculado")
	return &dto.BalanceReportResponse{Products: report, Rows: rows}, nil
}

// LocationTotals suma las categorías de los movimientos del producto con destino, por ubicación destino.
func (uc *ReportUseCase) LocationTotals(ctx context.Context, productID string) (*dto.LocationTotalsResponse, error) {
	totals, skipped, err := uc.movRepo.TotalsByLocation(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(skipped) > 0 {
		uc.log.Warn().
			Str("product_id", productID).
			Ints64("movement_ids", skipped).
			Msg("categorías no numéricas omitidas en totales")
	}
	return &dto.LocationTotalsResponse{
		ProductID: productID,
		Totals:    map[string]decimal.Decimal(totals),
		Skipped:   skipped,
	}, nil
}

// creationOrder posición de cada identificador en el listado por fecha de creación.
func creationOrder(list []*entity.Entity) map[string]int {
	order := make(map[string]int, len(list))
	for i, e := range list {
		order[e.ID] = i
	}
	return order
}

// sortedKeys ordena primero los identificadores conocidos por creación y luego el resto alfabéticamente.
func sortedKeys[V any](m map[string]V, order map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, iKnown := order[keys[i]]
		oj, jKnown := order[keys[j]]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown != jKnown:
			return iKnown
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
