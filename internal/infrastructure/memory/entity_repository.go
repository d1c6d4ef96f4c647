package memory

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.EntityRepository = (*EntityRepo)(nil)

// EntityRepo implementación en memoria de EntityRepository.
type EntityRepo struct {
	store *Store
	tx    *state
}

func (st *state) indexOf(kind entity.Kind, id string) int {
	for i, e := range st.entities[kind] {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Create agrega la entidad al final del listado de su tipo.
func (r *EntityRepo) Create(_ context.Context, e *entity.Entity) error {
	return r.store.write(r.tx, func(st *state) error {
		if st.indexOf(e.Kind, e.ID) >= 0 {
			return domain.ErrDuplicate
		}
		v := *e
		st.entities[e.Kind] = append(st.entities[e.Kind], &v)
		return nil
	})
}

// GetByID obtiene una entidad por identificador.
func (r *EntityRepo) GetByID(_ context.Context, kind entity.Kind, id string) (*entity.Entity, error) {
	var out *entity.Entity
	err := r.store.read(r.tx, func(st *state) error {
		i := st.indexOf(kind, id)
		if i < 0 {
			return domain.ErrNotFound
		}
		v := *st.entities[kind][i]
		out = &v
		return nil
	})
	return out, err
}

// Exists indica si el identificador está en uso.
func (r *EntityRepo) Exists(_ context.Context, kind entity.Kind, id string) (bool, error) {
	var found bool
	err := r.store.read(r.tx, func(st *state) error {
		found = st.indexOf(kind, id) >= 0
		return nil
	})
	return found, err
}

// Rename reemplaza el identificador conservando la posición y la fecha de creación.
func (r *EntityRepo) Rename(_ context.Context, kind entity.Kind, oldID, newID string) error {
	return r.store.write(r.tx, func(st *state) error {
		i := st.indexOf(kind, oldID)
		if i < 0 {
			return domain.ErrNotFound
		}
		if j := st.indexOf(kind, newID); j >= 0 && j != i {
			return domain.ErrDuplicate
		}
		st.entities[kind][i].ID = newID
		return nil
	})
}

// Delete elimina la entidad; los movimientos no se revisan.
func (r *EntityRepo) Delete(_ context.Context, kind entity.Kind, id string) error {
	return r.store.write(r.tx, func(st *state) error {
		i := st.indexOf(kind, id)
		if i < 0 {
			return domain.ErrNotFound
		}
		list := st.entities[kind]
		st.entities[kind] = append(list[:i:i], list[i+1:]...)
		return nil
	})
}

// List devuelve copias en orden de creación.
func (r *EntityRepo) List(_ context.Context, kind entity.Kind) ([]*entity.Entity, error) {
	var out []*entity.Entity
	err := r.store.read(r.tx, func(st *state) error {
		out = make([]*entity.Entity, 0, len(st.entities[kind]))
		for _, e := range st.entities[kind] {
			v := *e
			out = append(out, &v)
		}
		return nil
	})
	return out, err
}
