package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Personal-api/internal/application/dto"
	"github.com/jhoicas/Personal-api/internal/application/registry"
)

// PositionHandler registro de puestos y estructuras (protegido).
type PositionHandler struct {
	uc  *registry.PositionUseCase
	log zerolog.Logger
}

// NewPositionHandler construye el handler.
func NewPositionHandler(uc *registry.PositionUseCase, log zerolog.Logger) *PositionHandler {
	return &PositionHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear puesto (queda VACANT)
// @Tags         positions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePositionRequest  true  "código, título, estructura"
// @Success      201   {object}  dto.PositionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/positions [post]
func (h *PositionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePositionRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener puesto
// @Tags         positions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del puesto"
// @Success      200  {object}  dto.PositionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/positions/{id} [get]
func (h *PositionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrado lógico de un puesto sin ocupante
// @Tags         positions
// @Security     Bearer
// @Param        id  path  string  true  "ID del puesto"
// @Success      204
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/positions/{id} [delete]
func (h *PositionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Assign godoc
// @Summary      Asignación directa de personal a un puesto
// @Tags         positions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del puesto"
// @Param        body  body  dto.AssignPositionRequest  true  "personal y cumul"
// @Success      200   {object}  dto.PositionResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/positions/{id}/assign [post]
func (h *PositionHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignPositionRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Assign(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Release godoc
// @Summary      Dejar vacante un puesto
// @Tags         positions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del puesto"
// @Success      200  {object}  dto.PositionResponse
// @Router       /api/positions/{id}/release [post]
func (h *PositionHandler) Release(c *fiber.Ctx) error {
	out, err := h.uc.Release(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateStructure godoc
// @Summary      Crear estructura organizacional
// @Tags         structures
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStructureRequest  true  "código, nombre, padre"
// @Success      201   {object}  dto.StructureResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/structures [post]
func (h *PositionHandler) CreateStructure(c *fiber.Ctx) error {
	var in dto.CreateStructureRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.CreateStructure(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetStructure godoc
// @Summary      Estructura con contadores de ocupación
// @Tags         structures
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la estructura"
// @Success      200  {object}  dto.StructureResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/structures/{id} [get]
func (h *PositionHandler) GetStructure(c *fiber.Ctx) error {
	out, err := h.uc.GetStructure(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListByStructure godoc
// @Summary      Puestos de una estructura
// @Tags         structures
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la estructura"
// @Param        limit   query  int     false  "Límite (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.PositionResponse
// @Router       /api/structures/{id}/positions [get]
func (h *PositionHandler) ListByStructure(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	if err := validateStruct(&page); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.ListByStructure(c.UserContext(), c.Params("id"), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
