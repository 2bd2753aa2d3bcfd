package repository

import (
	"context"

	"github.com/jhoicas/bookshop-pos/internal/domain/billing"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
)

// BillRepository define el puerto de la colección remota de facturas.
// No hay Update ni Delete: una factura creada es inmutable.
type BillRepository interface {
	List(ctx context.Context) ([]entity.Bill, error)
	GetByID(ctx context.Context, id int) (*entity.Bill, error)
	Create(ctx context.Context, order billing.Order) (*entity.Bill, error)
}
