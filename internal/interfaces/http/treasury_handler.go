package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/pesquera-erp/internal/application/dto"
	"github.com/jhoicas/pesquera-erp/internal/application/treasury"
)

// TreasuryHandler maneja los movimientos de tesorería. Los movimientos cruzan empresas
// (origen y destino), por eso no se filtran por la empresa del token.
type TreasuryHandler struct {
	svc *treasury.Service
	log zerolog.Logger
}

// NewTreasuryHandler construye el handler.
func NewTreasuryHandler(svc *treasury.Service, log zerolog.Logger) *TreasuryHandler {
	return &TreasuryHandler{svc: svc, log: log}
}

// Create godoc
// @Summary      Registrar movimiento de tesorería
// @Description  Crea el movimiento en estado PENDIENTE. El registro de origen debe existir y no estar validado.
// @Tags         treasury
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTreasuryMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.TreasuryMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/treasury/movements [post]
func (h *TreasuryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTreasuryMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Enmendar movimiento pendiente
// @Tags         treasury
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                             true  "ID del movimiento"
// @Param        body  body  dto.UpdateTreasuryMovementRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.TreasuryMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/treasury/movements/{id} [put]
func (h *TreasuryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTreasuryMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.Amend(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento pendiente
// @Tags         treasury
// @Security     Bearer
// @Param        id   path  string  true  "ID del movimiento"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/treasury/movements/{id} [delete]
func (h *TreasuryHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         treasury
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.TreasuryMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/treasury/movements/{id} [get]
func (h *TreasuryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar movimiento
// @Description  PENDIENTE a VALIDADO y conciliación del registro de origen en la misma transacción.
// @Tags         treasury
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.TreasuryMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/treasury/movements/{id}/validate [post]
func (h *TreasuryHandler) Validate(c *fiber.Ctx) error {
	out, err := h.svc.Validate(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
