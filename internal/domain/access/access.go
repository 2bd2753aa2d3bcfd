// Package access concentra la tabla rol → capacidad. La usan por igual el guard de rutas
// y la visibilidad de acciones en las vistas.
package access

import (
	"slices"

	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
)

// Capability acción de negocio protegida.
type Capability string

const (
	ManageUsers     Capability = "manage_users"
	ManageItems     Capability = "manage_items"
	ManageCustomers Capability = "manage_customers"
	CreateBills     Capability = "create_bills"
	ViewBills       Capability = "view_bills"
)

var table = map[Capability][]entity.Role{
	ManageUsers:     {entity.RoleAdmin},
	ManageItems:     {entity.RoleAdmin},
	ManageCustomers: {entity.RoleAdmin, entity.RoleUser},
	CreateBills:     {entity.RoleAdmin, entity.RoleUser},
	ViewBills:       {entity.RoleAdmin, entity.RoleUser},
}

// RolesFor devuelve los roles con la capacidad. Una capacidad desconocida no tiene roles.
func RolesFor(c Capability) []entity.Role {
	return slices.Clone(table[c])
}

// Can indica si el rol tiene la capacidad.
func Can(r entity.Role, c Capability) bool {
	return slices.Contains(table[c], r)
}

// Decision resultado de evaluar una navegación protegida.
type Decision int

const (
	// Allow la vista anidada se renderiza.
	Allow Decision = iota
	// RedirectLogin no hay sesión.
	RedirectLogin
	// RedirectHome hay sesión pero el rol no está permitido.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	}
	return "unknown"
}

// Decide aplica la máquina de estados del guard: sin usuario → login; allowed vacío
// significa "cualquier usuario autenticado"; rol fuera de allowed → home.
func Decide(user *entity.User, allowed []entity.Role) Decision {
	if user == nil {
		return RedirectLogin
	}
	if len(allowed) == 0 {
		return Allow
	}
	if slices.Contains(allowed, user.Role) {
		return Allow
	}
	return RedirectHome
}
