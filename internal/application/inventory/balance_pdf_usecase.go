package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// BalancePDFUseCase arma el reporte de balance y lo entrega como PDF.
type BalancePDFUseCase struct {
	reports   *ReportUseCase
	generator BalancePDFGenerator
	log       *logger.Logger
	now       func() time.Time
}

// NewBalancePDFUseCase construye el caso de uso.
func NewBalancePDFUseCase(reports *ReportUseCase, generator BalancePDFGenerator, log *logger.Logger) *BalancePDFUseCase {
	return &BalancePDFUseCase{
		reports:   reports,
		generator: generator,
		log:       log.Named("reports"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Generate calcula el balance actual y lo renderiza.
func (uc *BalancePDFUseCase) Generate(ctx context.Context) ([]byte, error) {
	report, err := uc.reports.BalanceReport(ctx)
	if err != nil {
		return nil, err
	}
	out, err := uc.generator.GenerateBalancePDF(ctx, report, uc.now())
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Int("bytes", len(out)).Int("rows", len(report.Rows)).Msg("PDF de balance generado")
	return out, nil
}
