package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/activos-ti-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Los errores se reportan con el nombre JSON (o query) del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	// decimal.Decimal se valida como número (min=0 en purchase_cost).
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// validationError lleva los campos inválidos hasta fail.
type validationError struct {
	message string
	fields  map[string]string
}

func (e *validationError) Error() string { return e.message }

// bindAndValidate parsea el cuerpo JSON y aplica las tags validate.
func bindAndValidate(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return &validationError{message: "cuerpo inválido: " + err.Error()}
	}
	return validateStruct(req)
}

func validateStruct(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	verrs, isValidation := err.(validator.ValidationErrors)
	if !isValidation {
		return &validationError{message: err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return &validationError{message: "datos inválidos", fields: fields}
}

// paramUUID lee un id de la ruta. Todas las claves son UUID: otro valor es un error de validación.
func paramUUID(c *fiber.Ctx, name string) (string, error) {
	return checkUUID(name, c.Params(name))
}

// queryUUID como paramUUID para filtros opcionales de query string.
func queryUUID(c *fiber.Ctx, name string) (string, error) {
	v := c.Query(name)
	if v == "" {
		return "", nil
	}
	return checkUUID(name, v)
}

func checkUUID(name, v string) (string, error) {
	if _, err := uuid.Parse(v); err != nil {
		return "", &validationError{message: "datos inválidos", fields: map[string]string{name: "uuid"}}
	}
	return v, nil
}

// pageFromQuery lee limit/offset con los mismos topes en todos los listados.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return dto.PageRequest{Limit: limit, Offset: offset}
}
