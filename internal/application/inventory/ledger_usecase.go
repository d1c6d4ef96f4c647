package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// LedgerUseCase registra, corrige y lista movimientos del ledger.
// No valida que el producto o las ubicaciones existan: el registro es deliberadamente laxo.
type LedgerUseCase struct {
	movRepo repository.MovementRepository
	log     *logger.Logger
	now     func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(movRepo repository.MovementRepository, log *logger.Logger) *LedgerUseCase {
	return &LedgerUseCase{
		movRepo: movRepo,
		log:     log.Named("ledger"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Record agrega un movimiento con ID nuevo y la fecha actual.
func (uc *LedgerUseCase) Record(ctx context.Context, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	mov := &entity.Movement{
		ProductID:    productID,
		Category:     in.Category,
		FromLocation: strings.TrimSpace(in.FromLocation),
		ToLocation:   strings.TrimSpace(in.ToLocation),
		MovedAt:      uc.now(),
	}
	if err := uc.movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	uc.log.Info().
		Int64("movement_id", mov.ID).
		Str("product_id", mov.ProductID).
		Str("from", mov.FromLocation).
		Str("to", mov.ToLocation).
		Msg("movimiento registrado")
	return toMovementResponse(mov), nil
}

// Update sobrescribe todos los campos editables; ID y fecha se conservan.
func (uc *LedgerUseCase) Update(ctx context.Context, id int64, in dto.UpdateMovementRequest) (*dto.MovementResponse, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	mov, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	mov.ProductID = productID
	mov.Category = in.Category
	mov.FromLocation = strings.TrimSpace(in.FromLocation)
	mov.ToLocation = strings.TrimSpace(in.ToLocation)
	if err := uc.movRepo.Update(ctx, mov); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("movement_id", id).Msg("movimiento actualizado")
	return toMovementResponse(mov), nil
}

// Delete elimina un movimiento. Su ID no se vuelve a asignar.
func (uc *LedgerUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.movRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("movement_id", id).Msg("movimiento eliminado")
	return nil
}

// Get obtiene un movimiento por ID.
func (uc *LedgerUseCase) Get(ctx context.Context, id int64) (*dto.MovementResponse, error) {
	mov, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// ListAll lista todos los movimientos por fecha ascendente.
func (uc *LedgerUseCase) ListAll(ctx context.Context) (*dto.MovementListResponse, error) {
	list, err := uc.movRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toMovementList(list), nil
}

// ListByProduct lista los movimientos de un producto en orden de inserción.
func (uc *LedgerUseCase) ListByProduct(ctx context.Context, productID string) (*dto.MovementListResponse, error) {
	list, err := uc.movRepo.ListByProduct(ctx, strings.TrimSpace(productID))
	if err != nil {
		return nil, err
	}
	return toMovementList(list), nil
}

func toMovementList(list []*entity.Movement) *dto.MovementListResponse {
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{Items: items, Total: len(items)}
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Category:     m.Category,
		FromLocation: m.FromLocation,
		ToLocation:   m.ToLocation,
		MovedAt:      m.MovedAt,
	}
}
