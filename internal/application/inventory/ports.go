package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Garantiza que el renombre de una entidad y la reescritura del ledger sean atómicos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		entityRepo repository.EntityRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// BalancePDFGenerator genera la versión imprimible del reporte de balance.
type BalancePDFGenerator interface {
	GenerateBalancePDF(ctx context.Context, report *dto.BalanceReportResponse, generatedAt time.Time) ([]byte, error)
}
