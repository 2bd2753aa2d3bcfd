package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	// ErrUnavailable falla de transporte contra el backend (red, timeout, respuesta ilegible).
	ErrUnavailable = errors.New("backend no disponible")
)

// ValidationError error de validación local. Key es la clave del mensaje en pkg/i18n,
// Args los parámetros de formato.
type ValidationError struct {
	Key  string
	Args []any
}

// NewValidationError construye un ValidationError.
func NewValidationError(key string, args ...any) *ValidationError {
	return &ValidationError{Key: key, Args: args}
}

func (e *ValidationError) Error() string { return "validación: " + e.Key }

// Is permite errors.Is(err, ErrInvalidInput) y la comparación por clave.
func (e *ValidationError) Is(target error) bool {
	if target == ErrInvalidInput {
		return true
	}
	var other *ValidationError
	if errors.As(target, &other) {
		return other.Key == e.Key
	}
	return false
}

// Claves de validación compartidas por dominio, casos de uso y vistas.
const (
	MsgPhoneTooShort       = "phone.too_short"
	MsgPhoneTooLong        = "phone.too_long"
	MsgPhoneNotDigits      = "phone.not_digits"
	MsgPhoneInvalid        = "phone.invalid"
	MsgCustomerNotFound    = "customer.not_found"
	MsgInvalidLine         = "bill.invalid_line"
	MsgLineOutOfRange      = "bill.line_out_of_range"
	MsgCustomerRequired    = "bill.customer_required"
	MsgCartEmpty           = "bill.cart_empty"
	MsgFieldsRequired      = "form.fields_required"
	MsgPasswordTooShort    = "form.password_too_short"
	MsgInvalidRole         = "form.invalid_role"
	MsgInvalidStock        = "form.invalid_stock"
	MsgInvalidPrice        = "form.invalid_price"
	MsgCredentialsRequired = "auth.credentials_required"
	MsgTooManyAttempts     = "auth.too_many_attempts"
)
