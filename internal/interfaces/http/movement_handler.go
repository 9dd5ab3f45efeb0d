package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Personal-api/internal/application/dto"
	"github.com/jhoicas/Personal-api/internal/application/movement"
	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// MovementHandler maneja el ciclo de vida de los movimientos de carrera (protegido).
type MovementHandler struct {
	engine *movement.Engine
	log    zerolog.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(engine *movement.Engine, log zerolog.Logger) *MovementHandler {
	return &MovementHandler{engine: engine, log: log}
}

// Create godoc
// @Summary      Registrar movimiento (queda PENDING)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "personal, puestos/estructuras origen y destino, tipo, cumul"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	m, err := h.engine.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(m))
}

// Update godoc
// @Summary      Modificar un movimiento PENDING o APPROVED
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementRequest  true  "campos a modificar"
// @Success      200   {object}  dto.MovementResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [patch]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMovementRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	m, err := h.engine.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToMovementResponse(m))
}

// Approve godoc
// @Summary      Aprobar movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/approve [post]
func (h *MovementHandler) Approve(c *fiber.Ctx) error {
	return h.transition(c, h.engine.Approve)
}

// Execute godoc
// @Summary      Ejecutar movimiento aprobado (aplica puestos, personal e historial)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/execute [post]
func (h *MovementHandler) Execute(c *fiber.Ctx) error {
	return h.transition(c, h.engine.Execute)
}

// Cancel godoc
// @Summary      Cancelar movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/cancel [post]
func (h *MovementHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.engine.Cancel)
}

// Reject godoc
// @Summary      Rechazar movimiento
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del movimiento"
// @Param        body  body  dto.RejectMovementRequest  true  "motivo"
// @Success      200   {object}  dto.MovementResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/reject [post]
func (h *MovementHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectMovementRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	m, err := h.engine.Reject(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToMovementResponse(m))
}

// Delete godoc
// @Summary      Borrado lógico de un movimiento no ejecutado
// @Tags         movements
// @Security     Bearer
// @Param        id  path  string  true  "ID del movimiento"
// @Success      204
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := parseOptionalBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.engine.Delete(c.UserContext(), c.Params("id"), in); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	m, err := h.engine.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToMovementResponse(m))
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        personnel_id  query  string  false  "Filtrar por personal"
// @Param        status        query  string  false  "PENDING, APPROVED, EXECUTED, CANCELLED, REJECTED"
// @Param        type          query  string  false  "Tipo de movimiento"
// @Param        limit         query  int     false  "Límite (default 20)"
// @Param        offset        query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	q := dto.ListMovementsQuery{
		PersonnelID: c.Query("personnel_id"),
		Status:      c.Query("status"),
		Type:        c.Query("type"),
		PageRequest: pageFromQuery(c),
	}
	if err := validateStruct(&q); err != nil {
		return writeError(c, h.log, err)
	}
	list, total, err := h.engine.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	q.DefaultPage()
	items := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.ToMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	})
}

// AuditTrail godoc
// @Summary      Bitácora de un movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {array}  dto.AuditLogResponse
// @Router       /api/movements/{id}/audit [get]
func (h *MovementHandler) AuditTrail(c *fiber.Ctx) error {
	logs, err := h.engine.AuditTrail(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]*dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.ToAuditLogResponse(l))
	}
	return c.JSON(out)
}

type transitionFunc func(ctx context.Context, id string, in dto.TransitionRequest) (*entity.CareerMovement, error)

func (h *MovementHandler) transition(c *fiber.Ctx, fn transitionFunc) error {
	var in dto.TransitionRequest
	if err := parseOptionalBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	m, err := fn(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToMovementResponse(m))
}
