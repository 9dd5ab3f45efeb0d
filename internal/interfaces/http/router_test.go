package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Personal-api/internal/application/history"
	"github.com/jhoicas/Personal-api/internal/application/movement"
	"github.com/jhoicas/Personal-api/internal/application/personnel"
	"github.com/jhoicas/Personal-api/internal/application/registry"
	"github.com/jhoicas/Personal-api/internal/infrastructure/memory"
	"github.com/jhoicas/Personal-api/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/Personal-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Personal-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor completo sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

type apiClient struct {
	t   *testing.T
	app *fiber.App
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	store := memory.NewStore()
	identity := apphttp.ContextIdentity{}
	reg := prometheus.NewRegistry()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Engine:      movement.NewEngine(store, identity, zerolog.Nop()).WithMetrics(metrics.New(reg)),
		PositionUC:  registry.NewPositionUseCase(store, identity),
		PersonnelUC: personnel.NewUseCase(store, identity),
		HistoryUC:   history.NewUseCase(store, identity),
		Gatherer:    reg,
		JWTSecret:   testJWTSecret,
		JWTIssuer:   testIssuer,
		Log:         zerolog.Nop(),
	})
	return &apiClient{t: t, app: app}
}

// do envía la petición con el rol indicado ("" = sin token) y devuelve status y cuerpo.
func (a *apiClient) do(method, path, role string, body any) (int, []byte) {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(a.t, role))
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, out
}

// object exige el status esperado y decodifica un objeto JSON.
func (a *apiClient) object(method, path, role string, body any, want int) map[string]any {
	a.t.Helper()
	status, raw := a.do(method, path, role, body)
	require.Equal(a.t, want, status, string(raw))
	var out map[string]any
	require.NoError(a.t, json.Unmarshal(raw, &out))
	return out
}

func (a *apiClient) list(path, role string) []map[string]any {
	a.t.Helper()
	status, raw := a.do(http.MethodGet, path, role, nil)
	require.Equal(a.t, http.StatusOK, status, string(raw))
	var out []map[string]any
	require.NoError(a.t, json.Unmarshal(raw, &out))
	return out
}

// seed crea una estructura, dos puestos y un personal; devuelve sus ids.
func (a *apiClient) seed() (structureID, posA, posB, personID string) {
	a.t.Helper()
	s := a.object(http.MethodPost, "/api/structures", pkgjwt.RoleAdmin, map[string]any{"code": "dir", "name": "Dirección"}, http.StatusCreated)
	structureID = s["id"].(string)
	pa := a.object(http.MethodPost, "/api/positions", pkgjwt.RoleHR,
		map[string]any{"code": "A-01", "title": "Analista", "structure_id": structureID}, http.StatusCreated)
	pb := a.object(http.MethodPost, "/api/positions", pkgjwt.RoleHR,
		map[string]any{"code": "B-01", "title": "Jefe", "structure_id": structureID}, http.StatusCreated)
	p := a.object(http.MethodPost, "/api/personnel", pkgjwt.RoleHR,
		map[string]any{"registration_number": "M-100", "first_name": "Ana", "last_name": "Pérez"}, http.StatusCreated)
	return structureID, pa["id"].(string), pb["id"].(string), p["id"].(string)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo completo
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CicloCompletoDeAsignacion(t *testing.T) {
	api := newAPI(t)
	structureID, posA, _, personID := api.seed()

	m := api.object(http.MethodPost, "/api/movements", pkgjwt.RoleHR, map[string]any{
		"personnel_id":            personID,
		"destination_position_id": posA,
		"movement_type":           "ASSIGNMENT",
		"effective_date":          "2024-01-01T00:00:00Z",
	}, http.StatusCreated)
	id := m["id"].(string)
	assert.Equal(t, "PENDING", m["status"])

	// rrhh no puede aprobar
	status, raw := api.do(http.MethodPost, "/api/movements/"+id+"/approve", pkgjwt.RoleHR, nil)
	assert.Equal(t, http.StatusForbidden, status, string(raw))

	m = api.object(http.MethodPost, "/api/movements/"+id+"/approve", pkgjwt.RoleApprover, nil, http.StatusOK)
	assert.Equal(t, "APPROVED", m["status"])
	m = api.object(http.MethodPost, "/api/movements/"+id+"/execute", pkgjwt.RoleApprover, nil, http.StatusOK)
	assert.Equal(t, "EXECUTED", m["status"])
	assert.Equal(t, testUserID, m["executed_by"])

	pos := api.object(http.MethodGet, "/api/positions/"+posA, pkgjwt.RoleViewer, nil, http.StatusOK)
	assert.Equal(t, "OCCUPIED", pos["status"])
	assert.Equal(t, personID, pos["primary_occupant_id"])

	person := api.object(http.MethodGet, "/api/personnel/"+personID, pkgjwt.RoleViewer, nil, http.StatusOK)
	assert.Equal(t, posA, person["current_position_id"])

	s := api.object(http.MethodGet, "/api/structures/"+structureID, pkgjwt.RoleViewer, nil, http.StatusOK)
	assert.Equal(t, float64(2), s["total_positions"])
	assert.Equal(t, float64(1), s["occupied_positions"])
	assert.Equal(t, "0.5", s["occupancy_rate"])

	current := api.object(http.MethodGet, "/api/personnel/"+personID+"/assignments/current", pkgjwt.RoleViewer, nil, http.StatusOK)
	assert.Equal(t, "2024-01-01", current["start_date"])
	assert.Equal(t, id, current["movement_id"])

	trail := api.list("/api/movements/"+id+"/audit", pkgjwt.RoleViewer)
	require.Len(t, trail, 3)
	assert.Equal(t, "CREATE", trail[0]["action"])
	assert.Equal(t, "APPROVE", trail[1]["action"])
	assert.Equal(t, "EXECUTE", trail[2]["action"])

	page := api.object(http.MethodGet, "/api/movements?status=EXECUTED&personnel_id="+personID, pkgjwt.RoleViewer, nil, http.StatusOK)
	assert.Len(t, page["items"], 1)
	assert.Equal(t, float64(1), page["page"].(map[string]any)["total"])

	// métricas expuestas sin autenticación
	status, raw = api.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `personnel_movement_transitions_total{action="EXECUTE"} 1`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Traducción de errores
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_MapeoDeErrores(t *testing.T) {
	api := newAPI(t)
	structureID, posA, posB, personID := api.seed()

	errCode := func(method, path, role string, body any, want int) string {
		t.Helper()
		out := api.object(method, path, role, body, want)
		return out["code"].(string)
	}

	// 401 sin token
	assert.Equal(t, "MISSING_TOKEN", errCode(http.MethodGet, "/api/movements", "", nil, http.StatusUnauthorized))

	// 400 validación
	assert.Equal(t, "VALIDATION", errCode(http.MethodPost, "/api/movements", pkgjwt.RoleHR,
		map[string]any{"movement_type": "ASSIGNMENT"}, http.StatusBadRequest))
	assert.Equal(t, "VALIDATION", errCode(http.MethodGet, "/api/movements?limit=500", pkgjwt.RoleViewer, nil, http.StatusBadRequest))

	// 404
	assert.Equal(t, "NOT_FOUND", errCode(http.MethodGet, "/api/movements/no-existe", pkgjwt.RoleViewer, nil, http.StatusNotFound))
	assert.Equal(t, "NOT_FOUND", errCode(http.MethodGet, "/api/personnel/"+personID+"/assignments/current",
		pkgjwt.RoleViewer, nil, http.StatusNotFound))

	// 409 duplicado
	assert.Equal(t, "DUPLICATE", errCode(http.MethodPost, "/api/positions", pkgjwt.RoleHR,
		map[string]any{"code": "a-01", "title": "Otro", "structure_id": structureID}, http.StatusConflict))

	// 422 tipo desconocido
	assert.Equal(t, "INVALID_OPERATION", errCode(http.MethodPost, "/api/movements", pkgjwt.RoleHR,
		map[string]any{"personnel_id": personID, "movement_type": "VACATION"}, http.StatusUnprocessableEntity))

	// 409 versión obsoleta
	m := api.object(http.MethodPost, "/api/movements", pkgjwt.RoleHR, map[string]any{
		"personnel_id": personID, "destination_position_id": posA, "movement_type": "ASSIGNMENT",
	}, http.StatusCreated)
	id := m["id"].(string)
	assert.Equal(t, "CONCURRENCY_CONFLICT", errCode(http.MethodPost, "/api/movements/"+id+"/approve", pkgjwt.RoleApprover,
		map[string]any{"version": 99}, http.StatusConflict))

	// 422 transición ilegal: ejecutar sin aprobar
	out := api.object(http.MethodPost, "/api/movements/"+id+"/execute", pkgjwt.RoleApprover, nil, http.StatusUnprocessableEntity)
	assert.Equal(t, "INVALID_OPERATION", out["code"])
	assert.NotContains(t, out["message"], "transición de estado ilegal")

	// 422 con puesto vigente y sin cumul
	api.object(http.MethodPost, "/api/movements/"+id+"/approve", pkgjwt.RoleApprover, nil, http.StatusOK)
	api.object(http.MethodPost, "/api/movements/"+id+"/execute", pkgjwt.RoleApprover, nil, http.StatusOK)
	out = api.object(http.MethodPost, "/api/movements", pkgjwt.RoleHR, map[string]any{
		"personnel_id": personID, "destination_position_id": posB, "movement_type": "TRANSFER",
	}, http.StatusUnprocessableEntity)
	assert.Equal(t, movement.MsgCumulAuthorizationRequired, out["message"])
}

func TestAPI_CancelarYBorrarMovimiento(t *testing.T) {
	api := newAPI(t)
	_, posA, _, personID := api.seed()

	m := api.object(http.MethodPost, "/api/movements", pkgjwt.RoleHR, map[string]any{
		"personnel_id": personID, "destination_position_id": posA, "movement_type": "ASSIGNMENT",
	}, http.StatusCreated)
	id := m["id"].(string)

	m = api.object(http.MethodPost, "/api/movements/"+id+"/cancel", pkgjwt.RoleHR, nil, http.StatusOK)
	assert.Equal(t, "CANCELLED", m["status"])

	status, raw := api.do(http.MethodDelete, "/api/movements/"+id, pkgjwt.RoleHR, nil)
	require.Equal(t, http.StatusNoContent, status, string(raw))

	api.object(http.MethodGet, "/api/movements/"+id, pkgjwt.RoleViewer, nil, http.StatusNotFound)
}

func TestAPI_HistorialManual(t *testing.T) {
	api := newAPI(t)
	_, posA, _, personID := api.seed()

	h := api.object(http.MethodPost, "/api/personnel/"+personID+"/assignments", pkgjwt.RoleHR, map[string]any{
		"new_position_id": posA,
		"start_date":      "2020-02-01T00:00:00Z",
		"movement_type":   "ASSIGNMENT",
	}, http.StatusCreated)
	hid := h["id"].(string)
	assert.Equal(t, "ACTIVE", h["status"])

	h = api.object(http.MethodPut, "/api/assignments/"+hid+"/decision", pkgjwt.RoleHR,
		map[string]any{"number": "RES-2020-15", "reference": "doc://res/15"}, http.StatusOK)
	assert.Equal(t, "RES-2020-15", h["decision"].(map[string]any)["number"])

	h = api.object(http.MethodPost, "/api/assignments/"+hid+"/end", pkgjwt.RoleHR,
		map[string]any{"end_date": "2021-12-31T00:00:00Z"}, http.StatusOK)
	assert.Equal(t, "2021-12-31", h["end_date"])

	list := api.list("/api/personnel/"+personID+"/assignments", pkgjwt.RoleViewer)
	require.Len(t, list, 1)
}
