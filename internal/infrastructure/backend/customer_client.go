package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
	"github.com/jhoicas/bookshop-pos/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerClient)(nil)

// CustomerClient adaptador de /customers.
type CustomerClient struct {
	c *Client
}

// NewCustomerClient construye el adaptador.
func NewCustomerClient(c *Client) *CustomerClient { return &CustomerClient{c: c} }

// List GET /customers
func (r *CustomerClient) List(ctx context.Context) ([]entity.Customer, error) {
	var out []entity.Customer
	_, err := r.c.do(ctx, call{resource: "customers", op: "list", method: http.MethodGet, path: "/customers", out: &out})
	return out, err
}

// Create POST /customers
func (r *CustomerClient) Create(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	var out entity.Customer
	_, err := r.c.do(ctx, call{resource: "customers", op: "create", method: http.MethodPost, path: "/customers", in: customer, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update PUT /customers/{id}
func (r *CustomerClient) Update(ctx context.Context, id int, customer *entity.Customer) (*entity.Customer, error) {
	var out entity.Customer
	_, err := r.c.do(ctx, call{resource: "customers", op: "update", method: http.MethodPut, path: fmt.Sprintf("/customers/%d", id), in: customer, out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete DELETE /customers/{id}
func (r *CustomerClient) Delete(ctx context.Context, id int) error {
	_, err := r.c.do(ctx, call{resource: "customers", op: "delete", method: http.MethodDelete, path: fmt.Sprintf("/customers/%d", id)})
	return err
}
