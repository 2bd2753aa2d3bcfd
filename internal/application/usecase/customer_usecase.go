package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/bookshop-pos/internal/application/dto"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
	"github.com/jhoicas/bookshop-pos/internal/domain/phone"
	"github.com/jhoicas/bookshop-pos/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	plan phone.Plan
}

// NewCustomerUseCase construye el caso de uso con el plan telefónico de la tienda.
func NewCustomerUseCase(repo repository.CustomerRepository, plan phone.Plan) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, plan: plan}
}

// List lista todos los clientes.
func (uc *CustomerUseCase) List(ctx context.Context) ([]entity.Customer, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("clientes: listar: %w", err)
	}
	return list, nil
}

// Create valida el formulario, normaliza el teléfono y crea el cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerForm) (*entity.Customer, error) {
	c, err := uc.fromForm(in)
	if err != nil {
		return nil, err
	}
	created, err := uc.repo.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("clientes: crear: %w", err)
	}
	return created, nil
}

// Update valida el formulario y actualiza el cliente id.
func (uc *CustomerUseCase) Update(ctx context.Context, id int, in dto.CustomerForm) (*entity.Customer, error) {
	c, err := uc.fromForm(in)
	if err != nil {
		return nil, err
	}
	c.ID = id
	updated, err := uc.repo.Update(ctx, id, c)
	if err != nil {
		return nil, fmt.Errorf("clientes: actualizar %d: %w", id, err)
	}
	return updated, nil
}

// Delete elimina el cliente. El backend lo rechaza si tiene facturas.
func (uc *CustomerUseCase) Delete(ctx context.Context, id int) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("clientes: eliminar %d: %w", id, err)
	}
	return nil
}

func (uc *CustomerUseCase) fromForm(in dto.CustomerForm) (*entity.Customer, error) {
	in.Normalize()
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	full, err := uc.plan.Canonical(in.PhoneNumber)
	if err != nil {
		return nil, err
	}
	return &entity.Customer{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Address:     in.Address,
		PhoneNumber: full,
	}, nil
}
