package repository

import (
	"context"

	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
)

// ItemRepository define el puerto de la colección remota de artículos.
type ItemRepository interface {
	List(ctx context.Context) ([]entity.Item, error)
	Create(ctx context.Context, item *entity.Item) (*entity.Item, error)
	Update(ctx context.Context, id int, item *entity.Item) (*entity.Item, error)
	Delete(ctx context.Context, id int) error
}
