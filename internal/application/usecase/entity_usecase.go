package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// EntityUseCase casos de uso CRUD para productos, ubicaciones y clientes.
// El renombre de productos y ubicaciones reescribe el ledger en la misma transacción.
type EntityUseCase struct {
	repo     repository.EntityRepository
	txRunner inventory.TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewEntityUseCase construye el caso de uso.
func NewEntityUseCase(repo repository.EntityRepository, txRunner inventory.TxRunner, log *logger.Logger) *EntityUseCase {
	return &EntityUseCase{
		repo:     repo,
		txRunner: txRunner,
		log:      log.Named("entities"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Add crea una entidad. domain.ErrDuplicate si el identificador ya existe.
func (uc *EntityUseCase) Add(ctx context.Context, kind entity.Kind, in dto.CreateEntityRequest) (*dto.EntityResponse, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	e := &entity.Entity{Kind: kind, ID: id, CreatedAt: uc.now()}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	uc.log.Info().Str("kind", string(kind)).Str("id", id).Msg("entidad creada")
	return toEntityResponse(e), nil
}

// Get obtiene una entidad por identificador.
func (uc *EntityUseCase) Get(ctx context.Context, kind entity.Kind, id string) (*dto.EntityResponse, error) {
	e, err := uc.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return toEntityResponse(e), nil
}

// Exists verifica si el identificador ya está en uso (validación previa del formulario).
func (uc *EntityUseCase) Exists(ctx context.Context, kind entity.Kind, id string) (bool, error) {
	return uc.repo.Exists(ctx, kind, strings.TrimSpace(id))
}

// Rename cambia el identificador. Para productos y ubicaciones también reescribe los
// movimientos que lo referencian; si algo falla se revierte todo.
func (uc *EntityUseCase) Rename(ctx context.Context, kind entity.Kind, oldID string, in dto.RenameEntityRequest) (*dto.EntityResponse, error) {
	newID := strings.TrimSpace(in.NewID)
	if newID == "" {
		return nil, domain.ErrInvalidInput
	}
	if newID == oldID {
		return uc.Get(ctx, kind, oldID)
	}

	var rewritten int64
	if kind.Propagates() {
		err := uc.txRunner.Run(ctx, func(entityRepo repository.EntityRepository, movRepo repository.MovementRepository) error {
			if err := entityRepo.Rename(ctx, kind, oldID, newID); err != nil {
				return err
			}
			n, err := inventory.PropagateRename(ctx, movRepo, kind, oldID, newID)
			rewritten = n
			return err
		})
		if err != nil {
			return nil, err
		}
	} else if err := uc.repo.Rename(ctx, kind, oldID, newID); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("kind", string(kind)).
		Str("old_id", oldID).
		Str("new_id", newID).
		Int64("movements_rewritten", rewritten).
		Msg("entidad renombrada")
	return uc.Get(ctx, kind, newID)
}

// Delete elimina la entidad sin tocar los movimientos que la referencian.
func (uc *EntityUseCase) Delete(ctx context.Context, kind entity.Kind, id string) error {
	if err := uc.repo.Delete(ctx, kind, id); err != nil {
		return err
	}
	uc.log.Info().Str("kind", string(kind)).Str("id", id).Msg("entidad eliminada")
	return nil
}

// List lista las entidades del tipo por fecha de creación.
func (uc *EntityUseCase) List(ctx context.Context, kind entity.Kind) (*dto.EntityListResponse, error) {
	list, err := uc.repo.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EntityResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEntityResponse(e))
	}
	return &dto.EntityListResponse{Items: items, Total: len(items)}, nil
}

func toEntityResponse(e *entity.Entity) *dto.EntityResponse {
	if e == nil {
		return nil
	}
	return &dto.EntityResponse{
		Kind:      string(e.Kind),
		ID:        e.ID,
		CreatedAt: e.CreatedAt,
	}
}
