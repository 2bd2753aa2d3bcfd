package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
	"github.com/jhoicas/bookshop-pos/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemClient)(nil)

// ItemClient adaptador de /items.
type ItemClient struct {
	c *Client
}

// NewItemClient construye el adaptador.
func NewItemClient(c *Client) *ItemClient { return &ItemClient{c: c} }

// itemPayload envía el precio como número JSON (decimal.Decimal serializa como string).
type itemPayload struct {
	ID    int         `json:"id,omitempty"`
	Name  string      `json:"name"`
	Stock int         `json:"stock"`
	Price json.Number `json:"price"`
}

func toItemPayload(it *entity.Item) itemPayload {
	return itemPayload{ID: it.ID, Name: it.Name, Stock: it.Stock, Price: json.Number(it.Price.StringFixed(2))}
}

// List GET /items
func (r *ItemClient) List(ctx context.Context) ([]entity.Item, error) {
	var out []entity.Item
	_, err := r.c.do(ctx, call{resource: "items", op: "list", method: http.MethodGet, path: "/items", out: &out})
	return out, err
}

// Create POST /items
func (r *ItemClient) Create(ctx context.Context, item *entity.Item) (*entity.Item, error) {
	var out entity.Item
	_, err := r.c.do(ctx, call{resource: "items", op: "create", method: http.MethodPost, path: "/items", in: toItemPayload(item), out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update PUT /items/{id}
func (r *ItemClient) Update(ctx context.Context, id int, item *entity.Item) (*entity.Item, error) {
	var out entity.Item
	_, err := r.c.do(ctx, call{resource: "items", op: "update", method: http.MethodPut, path: fmt.Sprintf("/items/%d", id), in: toItemPayload(item), out: &out})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete DELETE /items/{id}
func (r *ItemClient) Delete(ctx context.Context, id int) error {
	_, err := r.c.do(ctx, call{resource: "items", op: "delete", method: http.MethodDelete, path: fmt.Sprintf("/items/%d", id)})
	return err
}
