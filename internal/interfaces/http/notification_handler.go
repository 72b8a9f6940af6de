package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/application/notifications"
)

// NotificationHandler bandeja de notificaciones del usuario autenticado.
type NotificationHandler struct {
	uc *notifications.NotificationUseCase
}

func NewNotificationHandler(uc *notifications.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List godoc
// @Summary      Notificaciones propias (y broadcast si es admin)
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        unread  query  bool  false  "Solo no leídas"
// @Success      200     {object}  dto.Envelope{data=dto.NotificationListResponse}
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListForUser(c.UserContext(), recipient(c), c.QueryBool("unread", false), pageFromQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "notificaciones", out)
}

// Create godoc
// @Summary      Crear notificación manual (sin user_id va a todos los administradores)
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNotificationRequest  true  "Notificación"
// @Success      201   {object}  dto.Envelope{data=dto.NotificationResponse}
// @Router       /api/notifications [post]
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNotificationRequest
	if err := bindAndValidate(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, "notificación creada", out)
}

// @Router /api/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	out, err := h.uc.CountUnread(c.UserContext(), recipient(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "no leídas", out)
}

// @Router /api/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.MarkAsRead(c.UserContext(), recipient(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "notificación leída", out)
}

// @Router /api/notifications/read-all [patch]
func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	out, err := h.uc.MarkAllAsRead(c.UserContext(), recipient(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "notificaciones leídas", out)
}

// Cleanup godoc
// @Summary      Borrar notificaciones leídas con más de N días
// @Tags         notifications
// @Security     Bearer
// @Param        days  query  int  false  "Días a conservar"  default(30)
// @Success      200   {object}  dto.Envelope{data=dto.CleanupResponse}
// @Router       /api/notifications/cleanup [delete]
func (h *NotificationHandler) Cleanup(c *fiber.Ctx) error {
	out, err := h.uc.CleanupOld(c.UserContext(), c.QueryInt("days", 30))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, "limpieza realizada", out)
}
