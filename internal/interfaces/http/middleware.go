package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bookshop-pos/internal/infrastructure/backend"
)

// LocalRequestID clave de Locals donde el middleware requestid deja el id.
const LocalRequestID = "requestid"

// RequestContext propaga el request id al contexto usado en las llamadas al backend.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rid, ok := c.Locals(LocalRequestID).(string); ok && rid != "" {
			c.SetUserContext(backend.WithRequestID(c.UserContext(), rid))
		}
		return c.Next()
	}
}

// RequestLogger registra cada petición con método, ruta, status, latencia, request id y usuario.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		ev = ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start))
		if rid, ok := c.Locals(LocalRequestID).(string); ok {
			ev = ev.Str("request_id", rid)
		}
		if u := SessionFrom(c).User(); u != nil {
			ev = ev.Str("user", u.UserName).Str("role", u.Role.String())
		}
		ev.Msg("http")
		return err
	}
}
