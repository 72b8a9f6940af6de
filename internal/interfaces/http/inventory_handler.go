package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/application/inventory"
)

// InventoryHandler entradas, salidas y consulta de movimientos.
type InventoryHandler struct {
	ledger    *inventory.LedgerUseCase
	movements *inventory.MovementQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, movements *inventory.MovementQueryUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, movements: movements}
}

// RegisterEntry godoc
// @Summary      Registrar entrada de consumibles
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterEntryRequest  true  "Entrada"
// @Success      201   {object}  dto.Envelope{data=dto.MovementResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/inventory/entries [post]
func (h *InventoryHandler) RegisterEntry(c *fiber.Ctx) error {
	var in dto.RegisterEntryRequest
	if err := bindAndValidate(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.ledger.RegisterEntry(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, "entrada registrada", out)
}

// RegisterExit godoc
// @Summary      Registrar salida de consumibles hacia un departamento o sede
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterExitRequest  true  "Salida"
// @Success      201   {object}  dto.Envelope{data=dto.MovementResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope  "INSUFFICIENT_STOCK"
// @Router       /api/inventory/exits [post]
func (h *InventoryHandler) RegisterExit(c *fiber.Ctx) error {
	var in dto.RegisterExitRequest
	if err := bindAndValidate(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.ledger.RegisterExit(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, "salida registrada", out)
}

// ListMovements godoc
// @Summary      Listar movimientos (más recientes primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        type           query  string  false  "entry | exit | assignment"
// @Param        product_id     query  string  false  "Producto"
// @Param        asset_unit_id  query  string  false  "Unidad"
// @Param        user_id        query  string  false  "Creador o usuario asignado"
// @Param        from           query  string  false  "YYYY-MM-DD"
// @Param        to             query  string  false  "YYYY-MM-DD"
// @Success      200            {object}  dto.Envelope{data=dto.MovementListResponse}
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	q := dto.MovementQuery{
		Type:        c.Query("type"),
		ProductID:   c.Query("product_id"),
		AssetUnitID: c.Query("asset_unit_id"),
		UserID:      c.Query("user_id"),
		From:        c.Query("from"),
		To:          c.Query("to"),
		PageRequest: pageFromQuery(c),
	}
	if err := validateStruct(&q); err != nil {
		return fail(c, err)
	}
	out, err := h.movements.ListMovements(c.UserContext(), q)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "movimientos", out)
}

// @Router /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.movements.GetMovement(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "movimiento", out)
}
