package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Personal-api/internal/application/history"
	"github.com/jhoicas/Personal-api/internal/application/movement"
	"github.com/jhoicas/Personal-api/internal/application/personnel"
	"github.com/jhoicas/Personal-api/internal/application/registry"
	"github.com/jhoicas/Personal-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine      *movement.Engine
	PositionUC  *registry.PositionUseCase
	PersonnelUC *personnel.UseCase
	HistoryUC   *history.UseCase
	Gatherer    prometheus.Gatherer // nil: no se expone /metrics
	JWTSecret   string
	JWTIssuer   string
	Log         zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	writers := RequireRole(jwt.RoleAdmin, jwt.RoleHR)
	approvers := RequireRole(jwt.RoleAdmin, jwt.RoleApprover)

	// Movimientos
	movements := api.Group("/movements")
	mh := NewMovementHandler(deps.Engine, deps.Log)
	movements.Get("/", mh.List)
	movements.Post("/", writers, mh.Create)
	movements.Get("/:id", mh.GetByID)
	movements.Patch("/:id", writers, mh.Update)
	movements.Delete("/:id", writers, mh.Delete)
	movements.Get("/:id/audit", mh.AuditTrail)
	movements.Post("/:id/cancel", writers, mh.Cancel)
	movements.Post("/:id/approve", approvers, mh.Approve)
	movements.Post("/:id/reject", approvers, mh.Reject)
	movements.Post("/:id/execute", approvers, mh.Execute)

	// Puestos y estructuras
	ph := NewPositionHandler(deps.PositionUC, deps.Log)
	positions := api.Group("/positions")
	positions.Post("/", writers, ph.Create)
	positions.Get("/:id", ph.GetByID)
	positions.Delete("/:id", writers, ph.Delete)
	positions.Post("/:id/assign", writers, ph.Assign)
	positions.Post("/:id/release", writers, ph.Release)

	structures := api.Group("/structures")
	structures.Post("/", RequireRole(jwt.RoleAdmin), ph.CreateStructure)
	structures.Get("/:id", ph.GetStructure)
	structures.Get("/:id/positions", ph.ListByStructure)

	// Personal e historial
	pe := NewPersonnelHandler(deps.PersonnelUC, deps.HistoryUC, deps.Log)
	people := api.Group("/personnel")
	people.Post("/", writers, pe.Register)
	people.Get("/:id", pe.GetByID)
	people.Put("/:id/cumul", writers, pe.SetCumulAuthorization)
	people.Get("/:id/assignments", pe.ListAssignments)
	people.Get("/:id/assignments/current", pe.CurrentAssignment)
	people.Post("/:id/assignments", writers, pe.RecordAssignment)

	assignments := api.Group("/assignments")
	assignments.Post("/:id/end", writers, pe.EndAssignment)
	assignments.Post("/:id/cancel", writers, pe.CancelAssignment)
	assignments.Put("/:id/decision", writers, pe.AttachDecision)
}
