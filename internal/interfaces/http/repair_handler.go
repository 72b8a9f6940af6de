package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/application/repairs"
)

// RepairHandler envío a reparación y registro de retorno.
type RepairHandler struct {
	uc *repairs.RepairUseCase
}

func NewRepairHandler(uc *repairs.RepairUseCase) *RepairHandler {
	return &RepairHandler{uc: uc}
}

// Send godoc
// @Summary      Enviar unidad a reparación
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendToRepairRequest  true  "Envío"
// @Success      201   {object}  dto.Envelope{data=dto.RepairResponse}
// @Failure      409   {object}  dto.Envelope  "INVALID_STATE"
// @Router       /api/repairs [post]
func (h *RepairHandler) Send(c *fiber.Ctx) error {
	var in dto.SendToRepairRequest
	if err := bindAndValidate(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SendToRepair(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, "activo enviado a reparación", out)
}

// Return godoc
// @Summary      Registrar retorno de reparación
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la reparación"
// @Param        body  body  dto.RegisterReturnRequest  true  "Retorno"
// @Success      200   {object}  dto.Envelope{data=dto.RepairResponse}
// @Failure      409   {object}  dto.Envelope  "ALREADY_RETURNED"
// @Router       /api/repairs/{id}/return [post]
func (h *RepairHandler) Return(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.RegisterReturnRequest
	if err := bindAndValidate(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.RegisterReturn(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "retorno registrado", out)
}

// @Router /api/repairs/{id} [get]
func (h *RepairHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "reparación", out)
}

// @Router /api/repairs [get]
func (h *RepairHandler) List(c *fiber.Ctx) error {
	q := dto.RepairQuery{
		Status:      c.Query("status"),
		AssetUnitID: c.Query("asset_unit_id"),
		PageRequest: pageFromQuery(c),
	}
	if err := validateStruct(&q); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "reparaciones", out)
}
