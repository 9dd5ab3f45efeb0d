package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// Metrics contadores del motor de movimientos de personal.
type Metrics struct {
	Transitions *prometheus.CounterVec
	Failures    *prometheus.CounterVec
}

// New registra las métricas en reg. Con nil usa el registro global de prometheus.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "personnel_movement_transitions_total",
			Help: "Transiciones confirmadas de movimientos de personal, por acción",
		}, []string{"action"}),
		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "personnel_movement_failures_total",
			Help: "Operaciones rechazadas o fallidas del motor, por acción y motivo",
		}, []string{"action", "reason"}),
	}
}

// Transition implementa ports.TransitionRecorder.
func (m *Metrics) Transition(action entity.AuditAction) {
	m.Transitions.WithLabelValues(string(action)).Inc()
}

// Failure implementa ports.TransitionRecorder.
func (m *Metrics) Failure(action entity.AuditAction, reason string) {
	m.Failures.WithLabelValues(string(action), reason).Inc()
}
