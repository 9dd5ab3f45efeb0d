package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Personal-api/internal/application/dto"
	"github.com/jhoicas/Personal-api/internal/application/history"
	"github.com/jhoicas/Personal-api/internal/application/personnel"
)

// PersonnelHandler directorio de personal e historial de asignaciones (protegido).
type PersonnelHandler struct {
	uc      *personnel.UseCase
	history *history.UseCase
	log     zerolog.Logger
}

// NewPersonnelHandler construye el handler.
func NewPersonnelHandler(uc *personnel.UseCase, historyUC *history.UseCase, log zerolog.Logger) *PersonnelHandler {
	return &PersonnelHandler{uc: uc, history: historyUC, log: log}
}

// Register godoc
// @Summary      Registrar personal (sin matrícula queda como no matriculado)
// @Tags         personnel
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePersonnelRequest  true  "datos del personal"
// @Success      201   {object}  dto.PersonnelResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/personnel [post]
func (h *PersonnelHandler) Register(c *fiber.Ctx) error {
	var in dto.CreatePersonnelRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener personal
// @Tags         personnel
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del personal"
// @Success      200  {object}  dto.PersonnelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/personnel/{id} [get]
func (h *PersonnelHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// SetCumulAuthorization godoc
// @Summary      Otorgar o retirar la autorización de cumul
// @Tags         personnel
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID del personal"
// @Param        body  body  dto.CumulAuthorizationRequest  true  "authorized"
// @Success      200   {object}  dto.PersonnelResponse
// @Router       /api/personnel/{id}/cumul [put]
func (h *PersonnelHandler) SetCumulAuthorization(c *fiber.Ctx) error {
	var in dto.CumulAuthorizationRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.SetCumulAuthorization(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListAssignments godoc
// @Summary      Historial de asignaciones del personal
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del personal"
// @Success      200  {array}  dto.AssignmentHistoryResponse
// @Router       /api/personnel/{id}/assignments [get]
func (h *PersonnelHandler) ListAssignments(c *fiber.Ctx) error {
	out, err := h.history.ListByPersonnel(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CurrentAssignment godoc
// @Summary      Período de asignación abierto
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del personal"
// @Success      200  {object}  dto.AssignmentHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/personnel/{id}/assignments/current [get]
func (h *PersonnelHandler) CurrentAssignment(c *fiber.Ctx) error {
	out, err := h.history.CurrentAssignment(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// RecordAssignment godoc
// @Summary      Registrar un período de asignación (carga histórica)
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del personal"
// @Param        body  body  dto.RecordAssignmentRequest  true  "período"
// @Success      201   {object}  dto.AssignmentHistoryResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/personnel/{id}/assignments [post]
func (h *PersonnelHandler) RecordAssignment(c *fiber.Ctx) error {
	var in dto.RecordAssignmentRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.history.RecordAssignment(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// EndAssignment godoc
// @Summary      Cerrar un período de asignación
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del período"
// @Param        body  body  dto.EndAssignmentRequest  true  "fecha de fin"
// @Success      200   {object}  dto.AssignmentHistoryResponse
// @Router       /api/assignments/{id}/end [post]
func (h *PersonnelHandler) EndAssignment(c *fiber.Ctx) error {
	var in dto.EndAssignmentRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.history.EndAssignment(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CancelAssignment godoc
// @Summary      Anular un período de asignación
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del período"
// @Param        body  body  dto.CancelAssignmentRequest  true  "motivo"
// @Success      200   {object}  dto.AssignmentHistoryResponse
// @Router       /api/assignments/{id}/cancel [post]
func (h *PersonnelHandler) CancelAssignment(c *fiber.Ctx) error {
	var in dto.CancelAssignmentRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.history.CancelAssignment(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// AttachDecision godoc
// @Summary      Adjuntar el acto administrativo a un período
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del período"
// @Param        body  body  dto.DecisionDocumentDTO  true  "número, fecha, referencia"
// @Success      200   {object}  dto.AssignmentHistoryResponse
// @Router       /api/assignments/{id}/decision [put]
func (h *PersonnelHandler) AttachDecision(c *fiber.Ctx) error {
	var in dto.DecisionDocumentDTO
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.history.AttachDecisionDocument(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
