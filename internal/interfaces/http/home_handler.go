package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appbilling "github.com/jhoicas/bookshop-pos/internal/application/billing"
	"github.com/jhoicas/bookshop-pos/internal/domain/access"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
)

// MenuCard acceso del tablero de inicio.
type MenuCard struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Path        string            `json:"path"`
	Capability  access.Capability `json:"capability"`
}

var menu = []MenuCard{
	{"Create a Bill", "Create and print a new bill", "/bills/new", access.CreateBills},
	{"View Bill History", "Browse and review past bills", "/bills", access.ViewBills},
	{"Manage Customers", "Add, edit and remove customers", "/customers", access.ManageCustomers},
	{"Manage Users", "Manage system users and their roles", "/users", access.ManageUsers},
	{"Manage Items", "Maintain the bookshop items and stock", "/items", access.ManageItems},
}

// MenuFor tarjetas visibles para el rol.
func MenuFor(role entity.Role) []MenuCard {
	out := make([]MenuCard, 0, len(menu))
	for _, m := range menu {
		if access.Can(role, m.Capability) {
			out = append(out, m)
		}
	}
	return out
}

// HomeData modelo de /home.
type HomeData struct {
	Menu  []MenuCard                `json:"menu"`
	Today *appbilling.JournalTotals `json:"today,omitempty"`
}

// HomeHandler tablero de inicio y ayuda.
type HomeHandler struct {
	bills *appbilling.BillUseCase
	r     *Renderer
	now   func() time.Time
}

// NewHomeHandler construye el handler.
func NewHomeHandler(bills *appbilling.BillUseCase, r *Renderer) *HomeHandler {
	return &HomeHandler{bills: bills, r: r, now: time.Now}
}

// Home GET /home
func (h *HomeHandler) Home(c *fiber.Ctx) error {
	user := CurrentUser(c)
	data := HomeData{Menu: MenuFor(user.Role)}
	if totals, ok, err := h.bills.Today(c.UserContext(), h.now()); ok && err == nil {
		data.Today = &totals
	}
	return h.r.Render(c, fiber.StatusOK, "home", Page{Title: "Home", Data: data})
}

// Help GET /help
func (h *HomeHandler) Help(c *fiber.Ctx) error {
	return h.r.Render(c, fiber.StatusOK, "help", Page{Title: "Help", Data: MenuFor(CurrentUser(c).Role)})
}
