package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/application/usecase"
)

// LocationHandler sedes y departamentos (destinos de salidas de inventario).
type LocationHandler struct {
	uc *usecase.LocationUseCase
}

func NewLocationHandler(uc *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// @Router /api/branches [post]
func (h *LocationHandler) CreateBranch(c *fiber.Ctx) error {
	var in dto.CreateBranchRequest
	if err := bindAndValidate(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.CreateBranch(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, "sede creada", out)
}

// @Router /api/branches [get]
func (h *LocationHandler) ListBranches(c *fiber.Ctx) error {
	out, err := h.uc.ListBranches(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "sedes", out)
}

// @Router /api/departments [post]
func (h *LocationHandler) CreateDepartment(c *fiber.Ctx) error {
	var in dto.CreateDepartmentRequest
	if err := bindAndValidate(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.CreateDepartment(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, "departamento creado", out)
}

// ListDepartments acepta ?branch_id= para filtrar por sede.
// @Router /api/departments [get]
func (h *LocationHandler) ListDepartments(c *fiber.Ctx) error {
	branchID, err := queryUUID(c, "branch_id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.ListDepartments(c.UserContext(), branchID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "departamentos", out)
}
