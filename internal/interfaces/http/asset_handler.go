package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/activos-ti-api/internal/application/assets"
	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/application/repairs"
)

// AssetHandler registro de unidades físicas, asignaciones y actas.
type AssetHandler struct {
	uc      *assets.AssetUseCase
	repairs *repairs.RepairUseCase
}

// NewAssetHandler construye el handler. repairs alimenta el historial de reparaciones de la unidad.
func NewAssetHandler(uc *assets.AssetUseCase, repairs *repairs.RepairUseCase) *AssetHandler {
	return &AssetHandler{uc: uc, repairs: repairs}
}

// Create godoc
// @Summary      Registrar unidad de un producto tipo asset
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssetRequest  true  "Unidad"
// @Success      201   {object}  dto.Envelope{data=dto.AssetResponse}
// @Failure      409   {object}  dto.Envelope  "serie duplicada"
// @Router       /api/assets [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAssetRequest
	if err := bindAndValidate(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, "activo registrado", out)
}

// GetByID godoc
// @Summary      Obtener unidad (la clave de cifrado solo se muestra a administradores)
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la unidad"
// @Success      200  {object}  dto.Envelope{data=dto.AssetResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id, isAdmin(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "activo", out)
}

// @Router /api/assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	q := dto.AssetQuery{
		ProductID:      c.Query("product_id"),
		Status:         c.Query("status"),
		AssignedUserID: c.Query("assigned_user_id"),
		PageRequest:    pageFromQuery(c),
	}
	if err := validateStruct(&q); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "activos", out)
}

// @Router /api/assets/assigned/{userId} [get]
func (h *AssetHandler) ListAssigned(c *fiber.Ctx) error {
	userID, err := paramUUID(c, "userId")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.ListAssigned(c.UserContext(), userID, pageFromQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "activos asignados", out)
}

// Assign godoc
// @Summary      Asignar unidad disponible a un usuario
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la unidad"
// @Param        body  body  dto.AssignAssetRequest  true  "Asignación"
// @Success      200   {object}  dto.Envelope{data=dto.AssignmentResponse}
// @Failure      404   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope  "INVALID_STATE"
// @Router       /api/assets/{id}/assign [post]
func (h *AssetHandler) Assign(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.AssignAssetRequest
	if err := bindAndValidate(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Assign(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "activo asignado", out)
}

// UpdateStatus godoc
// @Summary      Override administrativo del estado de una unidad
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la unidad"
// @Param        body  body  dto.UpdateAssetStatusRequest  true  "Estado"
// @Success      200   {object}  dto.Envelope{data=dto.AssetResponse}
// @Failure      409   {object}  dto.Envelope
// @Router       /api/assets/{id}/status [patch]
func (h *AssetHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.UpdateAssetStatusRequest
	if err := bindAndValidate(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "estado actualizado", out)
}

// @Router /api/assets/{id}/repairs [get]
func (h *AssetHandler) ListRepairs(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.repairs.ListByAsset(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "reparaciones del activo", out)
}

// Certificate godoc
// @Summary      Acta de entrega en PDF de una unidad asignada
// @Tags         assets
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la unidad"
// @Success      200  {file}    binary
// @Failure      409  {object}  dto.Envelope  "la unidad no está asignada"
// @Router       /api/assets/{id}/certificate [get]
func (h *AssetHandler) Certificate(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	pdf, err := h.uc.Certificate(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="acta-`+id+`.pdf"`)
	return c.Status(fiber.StatusOK).Send(pdf)
}
