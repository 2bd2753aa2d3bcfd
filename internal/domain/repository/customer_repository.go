package repository

import (
	"context"

	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
)

// CustomerRepository define el puerto de la colección remota de clientes.
type CustomerRepository interface {
	List(ctx context.Context) ([]entity.Customer, error)
	Create(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
	Update(ctx context.Context, id int, customer *entity.Customer) (*entity.Customer, error)
	Delete(ctx context.Context, id int) error
}
