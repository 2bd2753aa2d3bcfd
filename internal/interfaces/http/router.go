package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bookshop-pos/internal/application/auth"
	appbilling "github.com/jhoicas/bookshop-pos/internal/application/billing"
	"github.com/jhoicas/bookshop-pos/internal/application/usecase"
	"github.com/jhoicas/bookshop-pos/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CustomerUC *usecase.CustomerUseCase
	ItemUC     *usecase.ItemUseCase
	UserUC     *usecase.UserUseCase
	BillUC     *appbilling.BillUseCase
	ReceiptUC  *appbilling.ReceiptUseCase
	Renderer   *Renderer
	Limiter    *LoginLimiter // nil = sin límite de intentos
	Log        zerolog.Logger
}

// Router registra las rutas del punto de venta. Espera que SessionStore.Middleware ya esté montado.
func Router(app *fiber.App, deps RouterDeps) {
	r := deps.Renderer

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, r, deps.Log)
	app.Get(PathLogin, authHandler.LoginPage)
	if deps.Limiter != nil {
		app.Post(PathLogin, deps.Limiter.Handler(authHandler.TooManyAttempts), authHandler.Login)
	} else {
		app.Post(PathLogin, authHandler.Login)
	}
	// Solo POST: un GET (enlace o imagen de otro sitio) no debe cerrar la sesión.
	app.Post("/logout", authHandler.Logout)

	// Inicio y ayuda (cualquier usuario)
	homeHandler := NewHomeHandler(deps.BillUC, r)
	app.Get("/", RequireAuth(), func(c *fiber.Ctx) error {
		return c.Redirect(PathHome, fiber.StatusFound)
	})
	app.Get(PathHome, RequireAuth(), homeHandler.Home)
	app.Get("/help", RequireAuth(), homeHandler.Help)

	// Borrador de factura; va antes de /bills/:id
	composer := app.Group(pathComposer, RequireCapability(access.CreateBills))
	composerHandler := NewComposerHandler(deps.BillUC, r)
	composer.Get("/", composerHandler.Show)
	composer.Post("/", composerHandler.Submit)
	composer.Post("/customer", composerHandler.LookupCustomer)
	composer.Post("/items", composerHandler.AddLine)
	composer.Post("/items/:index/delete", composerHandler.RemoveLine)
	composer.Post("/clear", composerHandler.Clear)

	// Historial de facturas
	bills := app.Group("/bills", RequireCapability(access.ViewBills))
	billHandler := NewBillHandler(deps.BillUC, deps.ReceiptUC, r)
	bills.Get("/", billHandler.List)
	bills.Get("/:id/receipt.pdf", billHandler.Receipt)
	bills.Get("/:id", billHandler.Show)

	// Administración
	NewCustomerHandler(deps.CustomerUC, r).Register(app.Group("/customers", RequireCapability(access.ManageCustomers)))
	NewItemHandler(deps.ItemUC, r).Register(app.Group("/items", RequireCapability(access.ManageItems)))
	NewUserHandler(deps.UserUC, r).Register(app.Group("/users", RequireCapability(access.ManageUsers)))
}
