// Package i18n traduce las claves de mensajes (validación, errores, avisos) y formatea montos.
// Usa el catálogo de golang.org/x/text; inglés es el idioma por defecto de la tienda.
package i18n

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
)

// Claves de la interfaz (las de validación viven en internal/domain).
const (
	MsgUnavailable   = "error.unavailable"
	MsgUnexpected    = "error.unexpected"
	MsgNotFound      = "error.not_found"
	MsgCreated       = "flash.created"
	MsgUpdated       = "flash.updated"
	MsgDeleted       = "flash.deleted"
	MsgLoggedOut     = "flash.logged_out"
	MsgBillCreated   = "flash.bill_created"
	MsgDraftCleared  = "flash.draft_cleared"
	MsgLoginRequired = "auth.login_required"
)

var supported = []language.Tag{language.English, language.Spanish}

var matcher = language.NewMatcher(supported)

var messages = map[string][2]string{
	// clave: {inglés, español}
	"phone.too_short":           {"Phone number must be %d digits.", "El teléfono debe tener %d dígitos."},
	"phone.too_long":            {"Phone number cannot exceed %d digits.", "El teléfono no puede superar %d dígitos."},
	"phone.not_digits":          {"Phone number may only contain digits.", "El teléfono solo puede contener dígitos."},
	"phone.invalid":             {"Please enter a valid phone number, e.g., %s712345678.", "Ingrese un teléfono válido, ej. %s712345678."},
	"customer.not_found":        {"No customer found with this phone number.", "No hay un cliente con ese teléfono."},
	"bill.invalid_line":         {"Please select an item and enter a valid quantity.", "Seleccione un artículo e ingrese una cantidad válida."},
	"bill.line_out_of_range":    {"That bill line no longer exists.", "Esa línea de la factura ya no existe."},
	"bill.customer_required":    {"Please select a customer by entering their phone number.", "Seleccione un cliente ingresando su teléfono."},
	"bill.cart_empty":           {"Please add at least one item to the bill.", "Agregue al menos un artículo a la factura."},
	"form.fields_required":      {"All fields are required.", "Todos los campos son obligatorios."},
	"form.password_too_short":   {"Password must be at least %d characters.", "La contraseña debe tener al menos %d caracteres."},
	"form.invalid_role":         {"Role must be ADMIN or USER.", "El rol debe ser ADMIN o USER."},
	"form.invalid_stock":        {"Stock must be a whole number of 0 or more.", "El stock debe ser un entero mayor o igual a 0."},
	"form.invalid_price":        {"Price must be a number greater than 0.", "El precio debe ser un número mayor que 0."},
	"auth.credentials_required": {"Username and password are required.", "Usuario y contraseña son obligatorios."},
	"auth.too_many_attempts":    {"Too many login attempts. Please wait a minute and try again.", "Demasiados intentos. Espere un minuto e intente de nuevo."},
	MsgLoginRequired:            {"Please log in to continue.", "Inicie sesión para continuar."},
	MsgUnavailable:              {"Service unavailable. Please try again later.", "Servicio no disponible. Intente más tarde."},
	MsgUnexpected:               {"An unexpected error occurred.", "Ocurrió un error inesperado."},
	MsgNotFound:                 {"Requested record not found.", "Registro no encontrado."},
	MsgCreated:                  {"Record created successfully", "Registro creado"},
	MsgUpdated:                  {"Record updated successfully", "Registro actualizado"},
	MsgDeleted:                  {"Record deleted successfully", "Registro eliminado"},
	MsgLoggedOut:                {"Logout successful", "Sesión cerrada"},
	MsgBillCreated:              {"Bill created successfully", "Factura creada"},
	MsgDraftCleared:             {"Bill draft cleared", "Borrador descartado"},
}

var cat = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range messages {
		_ = b.SetString(language.English, key, msg[0])
		_ = b.SetString(language.Spanish, key, msg[1])
	}
	return b
}

// Translator traduce claves a un idioma fijo.
type Translator struct {
	tag      language.Tag
	printer  *message.Printer
	currency string
}

// New construye un Translator para lang ("en", "es", "es-CO"...). Idiomas no soportados
// caen en inglés. currency es el prefijo de montos, ej. "Rs.".
func New(lang, currency string) *Translator {
	tag := language.English
	if parsed, err := language.Parse(lang); err == nil {
		_, idx, _ := matcher.Match(parsed)
		tag = supported[idx]
	}
	return &Translator{
		tag:      tag,
		printer:  message.NewPrinter(tag, message.Catalog(cat)),
		currency: currency,
	}
}

// Lang etiqueta BCP 47 del idioma efectivo.
func (t *Translator) Lang() string { return t.tag.String() }

// T traduce key con args. Una clave desconocida se devuelve tal cual.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Money formatea un monto con dos decimales y separador de miles del idioma.
func (t *Translator) Money(d decimal.Decimal) string {
	return t.printer.Sprintf("%s %v", t.currency, number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}
