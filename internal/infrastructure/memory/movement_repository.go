package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación en memoria del ledger.
type MovementRepo struct {
	store *Store
	tx    *state
}

func (st *state) movementIndex(id int64) int {
	i := sort.Search(len(st.movements), func(i int) bool { return st.movements[i].ID >= id })
	if i < len(st.movements) && st.movements[i].ID == id {
		return i
	}
	return -1
}

// Create asigna el siguiente ID; el contador nunca retrocede aunque se borren movimientos.
func (r *MovementRepo) Create(_ context.Context, movement *entity.Movement) error {
	return r.store.write(r.tx, func(st *state) error {
		st.nextMovementID++
		movement.ID = st.nextMovementID
		v := *movement
		st.movements = append(st.movements, &v)
		return nil
	})
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(_ context.Context, id int64) (*entity.Movement, error) {
	var out *entity.Movement
	err := r.store.read(r.tx, func(st *state) error {
		i := st.movementIndex(id)
		if i < 0 {
			return domain.ErrNotFound
		}
		v := *st.movements[i]
		out = &v
		return nil
	})
	return out, err
}

// Update sobrescribe producto, categoría, origen y destino.
func (r *MovementRepo) Update(_ context.Context, movement *entity.Movement) error {
	return r.store.write(r.tx, func(st *state) error {
		i := st.movementIndex(movement.ID)
		if i < 0 {
			return domain.ErrNotFound
		}
		m := st.movements[i]
		m.ProductID = movement.ProductID
		m.Category = movement.Category
		m.FromLocation = movement.FromLocation
		m.ToLocation = movement.ToLocation
		return nil
	})
}

// Delete elimina un movimiento por ID.
func (r *MovementRepo) Delete(_ context.Context, id int64) error {
	return r.store.write(r.tx, func(st *state) error {
		i := st.movementIndex(id)
		if i < 0 {
			return domain.ErrNotFound
		}
		st.movements = append(st.movements[:i:i], st.movements[i+1:]...)
		return nil
	})
}

// ListAll ordena por fecha y, a igual fecha, por ID.
func (r *MovementRepo) ListAll(_ context.Context) ([]*entity.Movement, error) {
	out := r.filter(func(*state, *entity.Movement) bool { return true })
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MovedAt.Before(out[j].MovedAt)
	})
	return out, nil
}

// ListByProduct devuelve los movimientos del producto por ID ascendente.
func (r *MovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Movement, error) {
	return r.filter(func(_ *state, m *entity.Movement) bool { return m.ProductID == productID }), nil
}

// ListForBalance equivale al join con products: excluye movimientos de productos inexistentes.
func (r *MovementRepo) ListForBalance(_ context.Context) ([]*entity.Movement, error) {
	out := r.filter(func(st *state, m *entity.Movement) bool {
		return st.indexOf(entity.KindProduct, m.ProductID) >= 0
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ProductID < out[j].ProductID
	})
	return out, nil
}

// TotalsByLocation suma sobre los movimientos del producto.
func (r *MovementRepo) TotalsByLocation(ctx context.Context, productID string) (entity.LocationTotals, []int64, error) {
	movs, err := r.ListByProduct(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	totals, skipped := inventory.SumByLocation(movs)
	return totals, skipped, nil
}

// ReplaceProduct reescribe el producto de los movimientos que usan oldID.
func (r *MovementRepo) ReplaceProduct(_ context.Context, oldID, newID string) (int64, error) {
	var n int64
	err := r.store.write(r.tx, func(st *state) error {
		for _, m := range st.movements {
			if m.ProductID == oldID {
				m.ProductID = newID
				n++
			}
		}
		return nil
	})
	return n, err
}

// ReplaceLocation reescribe origen y destino por separado.
func (r *MovementRepo) ReplaceLocation(_ context.Context, oldID, newID string) (int64, error) {
	var n int64
	err := r.store.write(r.tx, func(st *state) error {
		for _, m := range st.movements {
			if m.FromLocation == oldID {
				m.FromLocation = newID
				n++
			}
			if m.ToLocation == oldID {
				m.ToLocation = newID
				n++
			}
		}
		return nil
	})
	return n, err
}

// filter copia, en orden de ID, los movimientos que cumplen keep.
func (r *MovementRepo) filter(keep func(*state, *entity.Movement) bool) []*entity.Movement {
	var out []*entity.Movement
	_ = r.store.read(r.tx, func(st *state) error {
		out = make([]*entity.Movement, 0, len(st.movements))
		for _, m := range st.movements {
			if keep(st, m) {
				v := *m
				out = append(out, &v)
			}
		}
		return nil
	})
	return out
}
