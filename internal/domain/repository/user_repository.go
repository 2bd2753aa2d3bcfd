package repository

import (
	"context"

	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
)

// UserRepository define el puerto de la colección remota de usuarios.
type UserRepository interface {
	List(ctx context.Context) ([]entity.User, error)
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Update(ctx context.Context, id int, user *entity.User) (*entity.User, error)
	Delete(ctx context.Context, id int) error
}

// AuthGateway login/logout contra el backend. Login devuelve el usuario y la cookie de
// sesión del backend que debe reenviarse en las llamadas siguientes.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (*entity.User, string, error)
	Logout(ctx context.Context) error
}
