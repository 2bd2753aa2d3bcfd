package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bookshop-pos/internal/domain"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
	"github.com/jhoicas/bookshop-pos/internal/infrastructure/backend"
	"github.com/jhoicas/bookshop-pos/pkg/i18n"
)

const layoutMain = "layouts/main"

// Page modelo común de todas las vistas. En JSON se serializa tal cual.
type Page struct {
	Title string       `json:"title"`
	Shop  string       `json:"-"`
	User  *entity.User `json:"user,omitempty"`
	Flash *Flash       `json:"flash,omitempty"`
	Error string       `json:"error,omitempty"`
	Data  any          `json:"data,omitempty"`
}

// Renderer responde HTML con plantillas o JSON si el cliente lo pide.
type Renderer struct {
	tr   *i18n.Translator
	shop string
	log  zerolog.Logger
}

// NewRenderer construye el renderer.
func NewRenderer(tr *i18n.Translator, shop string, log zerolog.Logger) *Renderer {
	return &Renderer{tr: tr, shop: shop, log: log}
}

// Translator traductor de la interfaz.
func (r *Renderer) Translator() *i18n.Translator { return r.tr }

// wantsJSON el cliente pidió application/json.
func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}

// Render completa usuario y flash desde la sesión y responde con status.
func (r *Renderer) Render(c *fiber.Ctx, status int, tpl string, p Page) error {
	sess := SessionFrom(c)
	if p.User == nil {
		p.User = sess.User()
	}
	if p.Flash == nil && sess != nil {
		p.Flash = sess.PopFlash()
	}
	p.Shop = r.shop
	if wantsJSON(c) {
		return c.Status(status).JSON(p)
	}
	return c.Status(status).Render(tpl, p, layoutMain)
}

// Fail muestra la vista tpl con el mensaje de err y el status que le corresponde.
func (r *Renderer) Fail(c *fiber.Ctx, err error, tpl string, p Page) error {
	status, msg := r.Describe(err)
	if status >= fiber.StatusInternalServerError {
		r.log.Warn().Err(err).Str("path", c.Path()).Int("status", status).Msg("fallo en la vista")
	}
	p.Error = msg
	return r.Render(c, status, tpl, p)
}

// Describe traduce un error a status HTTP y mensaje para el usuario:
// validación 422, no encontrado 404, backend (negocio o transporte) 502, otro 500.
func (r *Renderer) Describe(err error) (int, string) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return fiber.StatusUnprocessableEntity, r.tr.T(ve.Key, ve.Args...)
	}
	var ae *backend.APIError
	if errors.As(err, &ae) {
		msg := ae.UserMessage()
		if msg == "" {
			msg = r.tr.T(i18n.MsgUnexpected)
		}
		if errors.Is(err, domain.ErrNotFound) {
			return fiber.StatusNotFound, msg
		}
		return fiber.StatusBadGateway, msg
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, r.tr.T(i18n.MsgNotFound)
	case errors.Is(err, domain.ErrUnavailable):
		return fiber.StatusBadGateway, r.tr.T(i18n.MsgUnavailable)
	}
	return fiber.StatusInternalServerError, r.tr.T(i18n.MsgUnexpected)
}

// Done cierra una mutación exitosa: flash y redirección en HTML, result en JSON.
func (r *Renderer) Done(c *fiber.Ctx, status int, flashKey, to string, result any) error {
	msg := r.tr.T(flashKey)
	if wantsJSON(c) {
		return c.Status(status).JSON(fiber.Map{"message": msg, "data": result})
	}
	if sess := SessionFrom(c); sess != nil {
		sess.Flash("success", msg)
	}
	return c.Redirect(to, fiber.StatusSeeOther)
}

// ErrorHandler último recurso para errores no manejados por los handlers.
func (r *Renderer) ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		msg := r.tr.T(i18n.MsgUnexpected)
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			if status == fiber.StatusNotFound {
				msg = r.tr.T(i18n.MsgNotFound)
			}
		} else {
			r.log.Error().Err(err).Str("path", c.Path()).Msg("error no manejado")
		}
		if wantsJSON(c) {
			return c.Status(status).JSON(fiber.Map{"error": msg})
		}
		if rerr := c.Status(status).Render("error", Page{Title: "Error", Shop: r.shop, User: SessionFrom(c).User(), Error: msg}, layoutMain); rerr != nil {
			return c.Status(status).SendString(msg)
		}
		return nil
	}
}
