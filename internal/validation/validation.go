// Package validation decodes and checks JSON request bodies before a
// handler runs.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/respond"
)

const bodyKey = "validated_body"

var validate = newValidator()

// Checker is implemented by request types with cross-field rules.
type Checker interface {
	Validate() error
}

// Error carries a client-facing validation message.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// rating: integer star rating 1..5
	_ = v.RegisterValidation("rating", func(fl validator.FieldLevel) bool {
		n := fl.Field().Int()
		return n >= 1 && n <= 5
	})
	return v
}

// Struct validates req and returns an *Error describing the first failure.
func Struct(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &Error{Message: message(fieldErrs[0])}
		}
		return &Error{Message: "Datos de entrada inválidos"}
	}
	if chk, ok := req.(Checker); ok {
		if err := chk.Validate(); err != nil {
			return &Error{Message: err.Error()}
		}
	}
	return nil
}

// Body parses the request body into a T, validates it and stores it for Get.
// Invalid input is answered with 400 and the handler never runs.
func Body[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(T)
		if err := c.BodyParser(req); err != nil {
			return respond.Fail(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if err := Struct(req); err != nil {
			return respond.Fail(c, fiber.StatusBadRequest, err.Error())
		}
		c.Locals(bodyKey, req)
		return c.Next()
	}
}

// Get returns the body validated by Body[T].
func Get[T any](c *fiber.Ctx) *T {
	req, _ := c.Locals(bodyKey).(*T)
	if req == nil {
		req = new(T)
	}
	return req
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo '%s' es requerido", field)
	case "rating":
		return fmt.Sprintf("El campo '%s' debe ser un número entre 1 y 5", field)
	case "email":
		return fmt.Sprintf("El campo '%s' debe ser un email válido", field)
	case "url":
		return fmt.Sprintf("El campo '%s' debe ser una URL válida", field)
	case "oneof":
		return fmt.Sprintf("El campo '%s' tiene un valor no permitido", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("El campo '%s' debe tener al menos %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("El campo '%s' debe ser al menos %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("El campo '%s' no puede superar %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("El campo '%s' no puede ser mayor que %s", field, fe.Param())
	default:
		return fmt.Sprintf("El campo '%s' no es válido", field)
	}
}
