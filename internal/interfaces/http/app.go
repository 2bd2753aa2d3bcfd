package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AppConfig piezas transversales de la aplicación Fiber.
type AppConfig struct {
	Name     string
	Views    fiber.Views
	Renderer *Renderer
	Sessions *SessionStore
	Log      zerolog.Logger
}

// NewApp crea la aplicación Fiber con vistas, manejo de errores y la cadena de middlewares
// (recover, request id, contexto, sesión, log). Las rutas se registran aparte con Router.
func NewApp(cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		Views:        cfg.Views,
		ErrorHandler: cfg.Renderer.ErrorHandler(),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: LocalRequestID,
	}))
	app.Use(RequestContext())
	app.Use(cfg.Sessions.Middleware())
	app.Use(RequestLogger(cfg.Log))
	return app
}
