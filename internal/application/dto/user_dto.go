package dto

import (
	"strconv"

	"github.com/jhoicas/bookshop-pos/internal/domain"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
)

// UserForm entrada de alta/edición de usuario. En edición la contraseña vacía se conserva.
type UserForm struct {
	FirstName string `json:"firstName" form:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" form:"lastName" validate:"required,max=100"`
	UserName  string `json:"userName" form:"userName" validate:"required,max=100"`
	Password  string `json:"password" form:"password" validate:"omitempty,min=6,max=128"`
	Role      string `json:"role" form:"role" validate:"required,oneof=ADMIN USER"`
}

// Normalize recorta espacios y pasa el rol a mayúsculas.
func (f *UserForm) Normalize() {
	f.FirstName = trim(f.FirstName)
	f.LastName = trim(f.LastName)
	f.UserName = trim(f.UserName)
	if r, err := entity.ParseRole(f.Role); err == nil {
		f.Role = r.String()
	}
}

// UserFormFrom precarga el formulario de edición (sin contraseña).
func UserFormFrom(u entity.User) UserForm {
	return UserForm{FirstName: u.FirstName, LastName: u.LastName, UserName: u.UserName, Role: u.Role.String()}
}

// LoginForm credenciales del formulario de login.
type LoginForm struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// RequiredKey mensaje propio para credenciales vacías.
func (LoginForm) RequiredKey() string { return domain.MsgCredentialsRequired }

// LoginResponse salida JSON del login.
type LoginResponse struct {
	User entity.User `json:"user"`
}

func itoa(n int) string { return strconv.Itoa(n) }
