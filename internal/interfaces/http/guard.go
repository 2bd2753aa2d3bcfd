package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bookshop-pos/internal/domain/access"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
	"github.com/jhoicas/bookshop-pos/internal/infrastructure/backend"
)

// Rutas a las que redirige el guard.
const (
	PathLogin = "/login"
	PathHome  = "/home"
)

const localUser = "pos_user"

// RequireAuth exige un usuario en sesión con cualquier rol.
func RequireAuth() fiber.Handler {
	return RequireRoles()
}

// RequireCapability exige un rol que tenga la capacidad cap.
func RequireCapability(cap access.Capability) fiber.Handler {
	roles := access.RolesFor(cap)
	if len(roles) == 0 {
		// Capacidad sin roles: ningún usuario pasa.
		roles = []entity.Role{""}
	}
	return RequireRoles(roles...)
}

// RequireRoles redirige a /login sin usuario y a /home si el rol no está en allowed
// (vacío = cualquier rol). Si pasa, el contexto de la petición lleva la cookie del backend.
func RequireRoles(allowed ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := SessionFrom(c).User()
		switch access.Decide(user, allowed) {
		case access.RedirectLogin:
			return c.Redirect(PathLogin, fiber.StatusFound)
		case access.RedirectHome:
			return c.Redirect(PathHome, fiber.StatusFound)
		}
		c.Locals(localUser, user)
		c.SetUserContext(backend.WithSession(c.UserContext(), SessionFrom(c).BackendCookie()))
		return c.Next()
	}
}

// CurrentUser usuario autenticado (después de RequireRoles) o nil.
func CurrentUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(localUser).(*entity.User)
	return u
}
