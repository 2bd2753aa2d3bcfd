package http

import (
	"github.com/jhoicas/bookshop-pos/internal/application/dto"
	"github.com/jhoicas/bookshop-pos/internal/application/usecase"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
)

// NewCustomerHandler pantalla de clientes.
func NewCustomerHandler(uc *usecase.CustomerUseCase, r *Renderer) *CrudHandler[entity.Customer, dto.CustomerForm] {
	return NewCrudHandler(Resource[entity.Customer, dto.CustomerForm]{
		Name:   "customers",
		Title:  "Customers",
		List:   uc.List,
		Create: uc.Create,
		Update: uc.Update,
		Delete: uc.Delete,
		IDOf:   func(c entity.Customer) int { return c.ID },
		FormOf: dto.CustomerFormFrom,
	}, r)
}

// NewItemHandler pantalla de artículos.
func NewItemHandler(uc *usecase.ItemUseCase, r *Renderer) *CrudHandler[entity.Item, dto.ItemForm] {
	return NewCrudHandler(Resource[entity.Item, dto.ItemForm]{
		Name:   "items",
		Title:  "Items",
		List:   uc.List,
		Create: uc.Create,
		Update: uc.Update,
		Delete: uc.Delete,
		IDOf:   func(it entity.Item) int { return it.ID },
		FormOf: dto.ItemFormFrom,
	}, r)
}

// NewUserHandler pantalla de usuarios (solo administradores).
func NewUserHandler(uc *usecase.UserUseCase, r *Renderer) *CrudHandler[entity.User, dto.UserForm] {
	return NewCrudHandler(Resource[entity.User, dto.UserForm]{
		Name:   "users",
		Title:  "Users",
		List:   uc.List,
		Create: uc.Create,
		Update: uc.Update,
		Delete: uc.Delete,
		IDOf:   func(u entity.User) int { return u.ID },
		FormOf: dto.UserFormFrom,
	}, r)
}
