package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bookshop-pos/internal/application/dto"
	"github.com/jhoicas/bookshop-pos/internal/domain"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
	"github.com/jhoicas/bookshop-pos/internal/domain/repository"
)

// ItemUseCase casos de uso para artículos.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// List lista el catálogo.
func (uc *ItemUseCase) List(ctx context.Context) ([]entity.Item, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("artículos: listar: %w", err)
	}
	return list, nil
}

// Create valida stock (entero >= 0) y precio (> 0) y crea el artículo.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.ItemForm) (*entity.Item, error) {
	it, err := itemFromForm(in)
	if err != nil {
		return nil, err
	}
	created, err := uc.repo.Create(ctx, it)
	if err != nil {
		return nil, fmt.Errorf("artículos: crear: %w", err)
	}
	return created, nil
}

// Update valida y actualiza el artículo id.
func (uc *ItemUseCase) Update(ctx context.Context, id int, in dto.ItemForm) (*entity.Item, error) {
	it, err := itemFromForm(in)
	if err != nil {
		return nil, err
	}
	it.ID = id
	updated, err := uc.repo.Update(ctx, id, it)
	if err != nil {
		return nil, fmt.Errorf("artículos: actualizar %d: %w", id, err)
	}
	return updated, nil
}

// Delete elimina el artículo. El backend lo rechaza si figura en facturas.
func (uc *ItemUseCase) Delete(ctx context.Context, id int) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("artículos: eliminar %d: %w", id, err)
	}
	return nil
}

func itemFromForm(in dto.ItemForm) (*entity.Item, error) {
	in.Normalize()
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	stock, err := strconv.Atoi(in.Stock)
	if err != nil || stock < 0 {
		return nil, domain.NewValidationError(domain.MsgInvalidStock)
	}
	price, err := decimal.NewFromString(in.Price)
	if err != nil {
		return nil, domain.NewValidationError(domain.MsgInvalidPrice)
	}
	// Se valida el precio ya redondeado: es el que recibe el backend.
	price = price.Round(2)
	if !price.IsPositive() {
		return nil, domain.NewValidationError(domain.MsgInvalidPrice)
	}
	return &entity.Item{Name: in.Name, Stock: stock, Price: price}, nil
}
