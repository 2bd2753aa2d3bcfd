// Package phone normaliza números de teléfono locales al formato almacenado por el backend:
// código de país seguido de un número fijo de dígitos (ej. "+94" + "712345678").
package phone

import (
	"strings"

	"github.com/jhoicas/bookshop-pos/internal/domain"
)

// Plan define el código de país y la cantidad de dígitos locales.
type Plan struct {
	CountryCode string
	Digits      int
}

// SriLanka es el plan por defecto de la librería.
var SriLanka = Plan{CountryCode: "+94", Digits: 9}

// Normalize valida la parte local y devuelve el número completo.
// Errores (ValidationError): corto, largo o con caracteres no numéricos, cada uno con su clave.
func (p Plan) Normalize(local string) (string, error) {
	local = strings.TrimSpace(local)
	for _, r := range local {
		if r < '0' || r > '9' {
			return "", domain.NewValidationError(domain.MsgPhoneNotDigits)
		}
	}
	switch {
	case len(local) < p.Digits:
		return "", domain.NewValidationError(domain.MsgPhoneTooShort, p.Digits)
	case len(local) > p.Digits:
		return "", domain.NewValidationError(domain.MsgPhoneTooLong, p.Digits)
	}
	return p.CountryCode + local, nil
}

// Canonical acepta el número completo ("+94712345678") o solo la parte local ("712345678")
// y devuelve la forma completa. Es lo que usa el formulario de clientes.
func (p Plan) Canonical(input string) (string, error) {
	input = strings.ReplaceAll(strings.TrimSpace(input), " ", "")
	if strings.HasPrefix(input, p.CountryCode) {
		full, err := p.Normalize(strings.TrimPrefix(input, p.CountryCode))
		if err != nil {
			return "", domain.NewValidationError(domain.MsgPhoneInvalid, p.CountryCode)
		}
		return full, nil
	}
	full, err := p.Normalize(input)
	if err != nil {
		return "", domain.NewValidationError(domain.MsgPhoneInvalid, p.CountryCode)
	}
	return full, nil
}

// Local quita el código de país (para precargar el campo de búsqueda).
func (p Plan) Local(full string) string {
	return strings.TrimPrefix(full, p.CountryCode)
}

// Format agrupa el número para mostrar: "+94 71 234 5678".
func (p Plan) Format(full string) string {
	local := p.Local(full)
	if local == full || len(local) != p.Digits || p.Digits < 6 {
		return full
	}
	return p.CountryCode + " " + local[:2] + " " + local[2:5] + " " + local[5:]
}
