// Package memory implementa los repositorios en memoria (tests y desarrollo local).
//
// Todas las operaciones se serializan con un sync.RWMutex. Las transacciones trabajan sobre una
// copia del estado y la publican solo si la función termina sin error.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu   sync.RWMutex
	data *state
}

type state struct {
	entities       map[entity.Kind][]*entity.Entity // orden de inserción
	movements      []*entity.Movement               // ID ascendente
	nextMovementID int64
}

// New crea un store vacío.
func New() *Store {
	return &Store{data: &state{entities: make(map[entity.Kind][]*entity.Entity)}}
}

// Entities devuelve el repositorio de entidades fuera de transacción.
func (s *Store) Entities() *EntityRepo { return &EntityRepo{store: s} }

// Movements devuelve el repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{store: s} }

// Run ejecuta fn sobre una copia del estado y la confirma si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(
	entityRepo repository.EntityRepository,
	movRepo repository.MovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(&EntityRepo{store: s, tx: work}, &MovementRepo{store: s, tx: work}); err != nil {
		return err
	}
	s.data = work
	return nil
}

// read ejecuta fn con el estado de la tx si existe; si no, toma el lock de lectura.
func (s *Store) read(tx *state, fn func(*state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

func (s *Store) write(tx *state, fn func(*state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func (st *state) clone() *state {
	out := &state{
		entities:       make(map[entity.Kind][]*entity.Entity, len(st.entities)),
		movements:      make([]*entity.Movement, len(st.movements)),
		nextMovementID: st.nextMovementID,
	}
	for k, list := range st.entities {
		cp := make([]*entity.Entity, len(list))
		for i, e := range list {
			v := *e
			cp[i] = &v
		}
		out.entities[k] = cp
	}
	for i, m := range st.movements {
		v := *m
		out.movements[i] = &v
	}
	return out
}
