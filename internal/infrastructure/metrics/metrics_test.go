package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Personal-api/internal/application/ports"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

var _ ports.TransitionRecorder = (*Metrics)(nil)

// counterValue busca el contador name con exactamente las etiquetas indicadas.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			got := map[string]string{}
			for _, lp := range m.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			if assert.ObjectsAreEqual(labels, got) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestMetrics_CountsByLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Transition(entity.AuditActionApprove)
	m.Transition(entity.AuditActionApprove)
	m.Transition(entity.AuditActionExecute)
	m.Failure(entity.AuditActionExecute, "invalid_operation")

	assert.Equal(t, float64(2), counterValue(t, reg, "personnel_movement_transitions_total", map[string]string{"action": "APPROVE"}))
	assert.Equal(t, float64(1), counterValue(t, reg, "personnel_movement_transitions_total", map[string]string{"action": "EXECUTE"}))
	assert.Equal(t, float64(1), counterValue(t, reg, "personnel_movement_failures_total",
		map[string]string{"action": "EXECUTE", "reason": "invalid_operation"}))
	assert.Equal(t, float64(0), counterValue(t, reg, "personnel_movement_failures_total",
		map[string]string{"action": "APPROVE", "reason": "invalid_operation"}))
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
