package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/bookshop-pos/internal/domain/billing"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
	"github.com/jhoicas/bookshop-pos/internal/domain/repository"
)

var _ repository.BillRepository = (*BillClient)(nil)

// BillClient adaptador de /bills.
type BillClient struct {
	c *Client
}

// NewBillClient construye el adaptador.
func NewBillClient(c *Client) *BillClient { return &BillClient{c: c} }

// List GET /bills
func (r *BillClient) List(ctx context.Context) ([]entity.Bill, error) {
	var out []entity.Bill
	_, err := r.c.do(ctx, call{resource: "bills", op: "list", method: http.MethodGet, path: "/bills", out: &out})
	return out, err
}

// GetByID GET /bills/{id}
func (r *BillClient) GetByID(ctx context.Context, id int) (*entity.Bill, error) {
	var out entity.Bill
	if _, err := r.c.do(ctx, call{resource: "bills", op: "get", method: http.MethodGet, path: fmt.Sprintf("/bills/%d", id), out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create POST /bills. El total de la factura devuelta es el del servidor.
func (r *BillClient) Create(ctx context.Context, order billing.Order) (*entity.Bill, error) {
	var out entity.Bill
	if _, err := r.c.do(ctx, call{resource: "bills", op: "create", method: http.MethodPost, path: "/bills", in: order, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}
