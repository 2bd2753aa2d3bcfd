package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/bookshop-pos/internal/domain"
)

// MinPasswordLen longitud mínima de contraseña para usuarios nuevos o cambios de contraseña.
const MinPasswordLen = 6

// ErrorResponse cuerpo de error HTTP (vistas JSON).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse cuerpo de éxito sin datos.
type MessageResponse struct {
	Message string `json:"message"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// requiredKeyer permite que un formulario use su propio mensaje para campos vacíos.
type requiredKeyer interface {
	RequiredKey() string
}

// fieldKeys mensaje por campo para reglas distintas de required.
var fieldKeys = map[string]func() *domain.ValidationError{
	"Password": func() *domain.ValidationError { return domain.NewValidationError(domain.MsgPasswordTooShort, MinPasswordLen) },
	"Role":     func() *domain.ValidationError { return domain.NewValidationError(domain.MsgInvalidRole) },
	"Stock":    func() *domain.ValidationError { return domain.NewValidationError(domain.MsgInvalidStock) },
	"Price":    func() *domain.ValidationError { return domain.NewValidationError(domain.MsgInvalidPrice) },
}

// Validate aplica las etiquetas validate de v y traduce el primer fallo a un
// *domain.ValidationError con la clave del mensaje a mostrar.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewValidationError(domain.MsgFieldsRequired)
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		if rk, ok := v.(requiredKeyer); ok {
			return domain.NewValidationError(rk.RequiredKey())
		}
		return domain.NewValidationError(domain.MsgFieldsRequired)
	}
	if build, ok := fieldKeys[fe.StructField()]; ok {
		return build()
	}
	return domain.NewValidationError(domain.MsgFieldsRequired)
}

func trim(s string) string { return strings.TrimSpace(s) }
