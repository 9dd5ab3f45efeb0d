// Package memory implementa los repositorios y el TxRunner en memoria. Cada transacción trabaja
// sobre una copia del estado y solo la publica al confirmar, de modo que un error no deja escrituras parciales.
// Se usa en pruebas y con APP_STORAGE=memory.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/Personal-api/internal/application/ports"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	positions  map[string]*entity.Position
	personnel  map[string]*entity.Personnel
	structures map[string]*entity.Structure
	movements  map[string]*entity.CareerMovement
	history    map[string]*entity.AssignmentHistory
	audit      []*entity.AuditLog
}

func newState() *state {
	return &state{
		positions:  make(map[string]*entity.Position),
		personnel:  make(map[string]*entity.Personnel),
		structures: make(map[string]*entity.Structure),
		movements:  make(map[string]*entity.CareerMovement),
		history:    make(map[string]*entity.AssignmentHistory),
	}
}

// clone copia los mapas; las entidades se guardan como copias inmutables, así que basta copiar punteros.
func (s *state) clone() *state {
	return &state{
		positions:  maps.Clone(s.positions),
		personnel:  maps.Clone(s.personnel),
		structures: maps.Clone(s.structures),
		movements:  maps.Clone(s.movements),
		history:    maps.Clone(s.history),
		audit:      slices.Clone(s.audit),
	}
}

// Store estado en memoria protegido por un único mutex: una transacción a la vez.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn sobre una copia del estado; si fn no falla la copia reemplaza al estado confirmado.
func (s *Store) Run(ctx context.Context, fn func(repos ports.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(s.repositories(work)); err != nil {
		return err
	}
	s.st = work
	return nil
}

func (s *Store) repositories(work *state) ports.Repositories {
	b := base{store: s, work: work}
	return ports.Repositories{
		Positions:  &PositionRepo{b},
		Personnel:  &PersonnelRepo{b},
		Structures: &StructureRepo{b},
		Movements:  &CareerMovementRepo{b},
		History:    &AssignmentHistoryRepo{b},
		Audit:      &AuditLogRepo{b},
	}
}

// Accesos fuera de transacción: cada llamada se confirma de inmediato.

func (s *Store) Positions() *PositionRepo        { return &PositionRepo{base{store: s}} }
func (s *Store) Personnel() *PersonnelRepo       { return &PersonnelRepo{base{store: s}} }
func (s *Store) Structures() *StructureRepo      { return &StructureRepo{base{store: s}} }
func (s *Store) Movements() *CareerMovementRepo  { return &CareerMovementRepo{base{store: s}} }
func (s *Store) History() *AssignmentHistoryRepo { return &AssignmentHistoryRepo{base{store: s}} }
func (s *Store) AuditLogs() *AuditLogRepo        { return &AuditLogRepo{base{store: s}} }

type base struct {
	store *Store
	work  *state
}

func (b base) with(fn func(st *state) error) error {
	if b.work != nil {
		return fn(b.work)
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	return fn(b.store.st)
}
