package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/activos-ti-api/internal/application/dto"
	"github.com/jhoicas/activos-ti-api/internal/domain"
)

// localExposeDetail marca (solo en desarrollo) que los 500 incluyan el error interno.
const localExposeDetail = "expose_detail"

// apiError relaciona un error de dominio con su status HTTP y código estable.
type apiError struct {
	target  error
	status  int
	code    string
	message string
}

var errorTable = []apiError{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "INVALID_INPUT", "entrada inválida"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND", "usuario no encontrado"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK", "stock insuficiente"},
	{domain.ErrAlreadyReturned, fiber.StatusConflict, "ALREADY_RETURNED", "la reparación ya fue cerrada"},
	{domain.ErrInvalidState, fiber.StatusConflict, "INVALID_STATE", "el estado actual no permite la operación"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "conflicto con un recurso existente"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "no autorizado"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"},
}

// ok responde con el envelope de éxito.
func ok(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(dto.Envelope{
		Status:  dto.StatusSuccess,
		Message: message,
		Data:    data,
	})
}

// fail responde con el envelope de error según el error de dominio.
// El mensaje conserva el texto envuelto por el caso de uso ("%w: detalle").
func fail(c *fiber.Ctx, err error) error {
	var verr *validationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{
			Status:  dto.StatusError,
			Message: verr.message,
			Code:    "VALIDATION",
			Fields:  verr.fields,
		})
	}
	for _, e := range errorTable {
		if errors.Is(err, e.target) {
			return c.Status(e.status).JSON(dto.Envelope{
				Status:  dto.StatusError,
				Message: err.Error(),
				Code:    e.code,
			})
		}
	}

	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("request_id", requestID(c)).
		Msg("error interno")

	env := dto.Envelope{
		Status:  dto.StatusError,
		Message: "error interno del servidor",
		Code:    "INTERNAL",
	}
	if expose, _ := c.Locals(localExposeDetail).(bool); expose {
		env.Detail = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(env)
}

// failWith responde un error de transporte (token, cuerpo, rol) sin pasar por el dominio.
func failWith(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.Envelope{
		Status:  dto.StatusError,
		Message: message,
		Code:    code,
	})
}

// ErrorHandler es el fiber.Config.ErrorHandler: rutas inexistentes, métodos no
// permitidos y pánicos recuperados salen con el mismo envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "ROUTE_NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusRequestEntityTooLarge:
			code = "BODY_TOO_LARGE"
		}
		return failWith(c, fe.Code, code, fe.Message)
	}
	return fail(c, err)
}
