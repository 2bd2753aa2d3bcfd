package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
	"github.com/jhoicas/bookshop-pos/internal/domain/repository"
)

var _ repository.UserRepository = (*UserClient)(nil)

// UserClient adaptador de /users (solo administradores; el backend valida la sesión).
type UserClient struct {
	c *Client
}

// NewUserClient construye el adaptador.
func NewUserClient(c *Client) *UserClient { return &UserClient{c: c} }

// List GET /users
func (r *UserClient) List(ctx context.Context) ([]entity.User, error) {
	var out []entity.User
	if _, err := r.c.do(ctx, call{resource: "users", op: "list", method: http.MethodGet, path: "/users", out: &out}); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Password = ""
	}
	return out, nil
}

// Create POST /users/
func (r *UserClient) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	var out entity.User
	if _, err := r.c.do(ctx, call{resource: "users", op: "create", method: http.MethodPost, path: "/users/", in: user, out: &out}); err != nil {
		return nil, err
	}
	out.Password = ""
	return &out, nil
}

// Update PUT /users/{id}. Password vacío conserva la contraseña actual.
func (r *UserClient) Update(ctx context.Context, id int, user *entity.User) (*entity.User, error) {
	var out entity.User
	if _, err := r.c.do(ctx, call{resource: "users", op: "update", method: http.MethodPut, path: fmt.Sprintf("/users/%d", id), in: user, out: &out}); err != nil {
		return nil, err
	}
	out.Password = ""
	return &out, nil
}

// Delete DELETE /users/{id}
func (r *UserClient) Delete(ctx context.Context, id int) error {
	_, err := r.c.do(ctx, call{resource: "users", op: "delete", method: http.MethodDelete, path: fmt.Sprintf("/users/%d", id)})
	return err
}
