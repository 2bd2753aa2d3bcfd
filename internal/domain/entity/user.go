package entity

import (
	"fmt"
	"strings"
)

// Role rol de un usuario del sistema. Conjunto cerrado: ADMIN y USER.
type Role string

// Roles válidos para User.
const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Roles devuelve todos los roles válidos en orden de presentación.
func Roles() []Role { return []Role{RoleAdmin, RoleUser} }

// ParseRole convierte el texto del backend o de un formulario en Role.
// Acepta mayúsculas o minúsculas; cualquier otro valor es error.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", fmt.Errorf("rol desconocido %q", s)
}

// Valid indica si r pertenece al conjunto cerrado.
func (r Role) Valid() bool { return r == RoleAdmin || r == RoleUser }

func (r Role) String() string { return string(r) }

// User representa un usuario del sistema (cajero o administrador).
// Password solo viaja hacia el backend; nunca se devuelve ni se guarda en sesión.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserName  string `json:"userName"`
	Password  string `json:"password,omitempty"`
	Role      Role   `json:"role"`
}

// FullName nombre para mostrar.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
