// Package movement orquesta el ciclo de vida de los movimientos de carrera: valida las solicitudes
// contra el registro de puestos y el directorio de personal y, al ejecutar, aplica en una sola
// transacción los cambios sobre puestos, personal, historial y bitácora.
package movement

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Personal-api/internal/application/audit"
	"github.com/jhoicas/Personal-api/internal/application/history"
	"github.com/jhoicas/Personal-api/internal/application/personnel"
	"github.com/jhoicas/Personal-api/internal/application/ports"
	"github.com/jhoicas/Personal-api/internal/application/registry"
	"github.com/jhoicas/Personal-api/internal/domain"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
	domainmov "github.com/jhoicas/Personal-api/internal/domain/movement"
)

// Mensajes de InvalidOperation de la validación de create.
const (
	MsgPositionNotAvailable       = registry.MsgPositionNotAvailable
	MsgCumulAuthorizationRequired = "se requiere autorización de cumul"
	MsgCumulIncompatibleType      = "tipo de movimiento incompatible con cumul"
)

// Engine motor del ciclo de vida: PENDING → APPROVED → EXECUTED, PENDING/APPROVED → CANCELLED | REJECTED.
type Engine struct {
	tx        ports.TxRunner
	identity  ports.IdentityProvider
	registry  *registry.PositionRegistry
	directory *personnel.Directory
	ledger    *history.Ledger
	publisher ports.AuditPublisher
	metrics   ports.TransitionRecorder
	log       zerolog.Logger
	now       func() time.Time
}

// NewEngine construye el motor. publisher y metrics son opcionales (WithPublisher, WithMetrics).
func NewEngine(tx ports.TxRunner, identity ports.IdentityProvider, log zerolog.Logger) *Engine {
	return &Engine{
		tx:        tx,
		identity:  identity,
		registry:  registry.NewPositionRegistry(),
		directory: personnel.NewDirectory(),
		ledger:    history.NewLedger(),
		metrics:   ports.NopTransitionRecorder{},
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithPublisher difunde las entradas de bitácora tras cada Commit.
func (e *Engine) WithPublisher(p ports.AuditPublisher) *Engine {
	e.publisher = p
	return e
}

// WithMetrics registra transiciones y fallos.
func (e *Engine) WithMetrics(m ports.TransitionRecorder) *Engine {
	if m != nil {
		e.metrics = m
	}
	return e
}

// WithClock reemplaza el reloj (pruebas).
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// unit ejecuta una operación de estado como una unidad de trabajo con su bitácora. Los errores de la
// máquina de estados se convierten en InvalidOperation conservando el mensaje de origen.
func (e *Engine) unit(
	ctx context.Context,
	action entity.AuditAction,
	fn func(repos ports.Repositories, trail *audit.Trail, actor string, now time.Time) (*entity.CareerMovement, error),
) (*entity.CareerMovement, error) {
	actor, err := e.identity.CurrentActor(ctx)
	if err != nil {
		return nil, err
	}
	now := e.now()
	var (
		out     *entity.CareerMovement
		entries []*entity.AuditLog
	)
	err = e.tx.Run(ctx, func(repos ports.Repositories) error {
		trail := audit.NewTrail(repos.Audit)
		m, err := fn(repos, trail, actor, now)
		if err != nil {
			return err
		}
		out = m
		entries = trail.Entries()
		return nil
	})
	if err != nil {
		err = toBoundaryError(err)
		e.metrics.Failure(action, failureReason(err))
		e.log.Debug().Err(err).Str("action", string(action)).Str("actor", actor).Msg("operación de movimiento rechazada")
		return nil, err
	}
	e.metrics.Transition(action)
	e.log.Info().
		Str("movement_id", out.ID).
		Str("action", string(action)).
		Str("status", string(out.Status)).
		Str("actor", actor).
		Msg("movimiento actualizado")
	e.publish(ctx, entries)
	return out, nil
}

func (e *Engine) publish(ctx context.Context, entries []*entity.AuditLog) {
	audit.Publish(ctx, e.publisher, e.log, entries)
}

func toBoundaryError(err error) error {
	if errors.Is(err, domainmov.ErrIllegalState) {
		msg := strings.TrimPrefix(err.Error(), domainmov.ErrIllegalState.Error()+": ")
		return &domain.InvalidOperationError{Message: msg}
	}
	return err
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidOperation):
		return "invalid_operation"
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return "concurrency_conflict"
	case errors.Is(err, domain.ErrDuplicate):
		return "duplicate"
	}
	return "internal"
}

// loadMovement obtiene el movimiento bloqueado para actualizarlo.
func loadMovement(ctx context.Context, repos ports.Repositories, id string) (*entity.CareerMovement, error) {
	m, err := repos.Movements.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NewNotFound(entity.EntityCareerMovement, id)
	}
	return m, nil
}

// checkVersion compara la versión esperada, si se indicó. Se llama después de validar la transición:
// sobre un movimiento ejecutado manda la inmutabilidad, no la versión.
func checkVersion(m *entity.CareerMovement, expected *int64) error {
	if expected != nil && *expected != m.Version {
		return domain.NewConcurrencyConflict(entity.EntityCareerMovement, m.ID, *expected)
	}
	return nil
}

func requireStructure(ctx context.Context, repos ports.Repositories, id *string) error {
	if id == nil {
		return nil
	}
	s, err := repos.Structures.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.NewNotFound(entity.EntityStructure, *id)
	}
	return nil
}

func requirePosition(ctx context.Context, repos ports.Repositories, id *string) (*entity.Position, error) {
	if id == nil {
		return nil, nil
	}
	p, err := repos.Positions.GetByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound(entity.EntityPosition, *id)
	}
	return p, nil
}

// checkDestination disponibilidad del puesto destino y autorización de cumul, en ese orden.
func (e *Engine) checkDestination(person *entity.Personnel, dest *entity.Position, cumul bool) error {
	if !e.registry.IsAvailableForAssignment(dest) && !cumul {
		return domain.NewInvalidOperation("%s: %s", MsgPositionNotAvailable, dest.Code)
	}
	if e.directory.HasCurrentPosition(person) && !cumul {
		return domain.NewInvalidOperation("%s", MsgCumulAuthorizationRequired)
	}
	return nil
}

func checkCumulType(cumul bool, t entity.MovementType) error {
	if cumul && t.IsExit() {
		return domain.NewInvalidOperation("%s: %s", MsgCumulIncompatibleType, t)
	}
	return nil
}
