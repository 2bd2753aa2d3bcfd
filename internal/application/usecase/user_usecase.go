package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/bookshop-pos/internal/application/dto"
	"github.com/jhoicas/bookshop-pos/internal/domain"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
	"github.com/jhoicas/bookshop-pos/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios (solo administradores).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto remoto.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista los usuarios (sin contraseñas).
func (uc *UserUseCase) List(ctx context.Context) ([]entity.User, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("usuarios: listar: %w", err)
	}
	return list, nil
}

// Create exige contraseña; el hash lo hace el backend.
func (uc *UserUseCase) Create(ctx context.Context, in dto.UserForm) (*entity.User, error) {
	u, err := userFromForm(in)
	if err != nil {
		return nil, err
	}
	if u.Password == "" {
		return nil, domain.NewValidationError(domain.MsgFieldsRequired)
	}
	created, err := uc.repo.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("usuarios: crear: %w", err)
	}
	return created, nil
}

// Update actualiza el usuario id. Contraseña vacía = sin cambio.
func (uc *UserUseCase) Update(ctx context.Context, id int, in dto.UserForm) (*entity.User, error) {
	u, err := userFromForm(in)
	if err != nil {
		return nil, err
	}
	u.ID = id
	updated, err := uc.repo.Update(ctx, id, u)
	if err != nil {
		return nil, fmt.Errorf("usuarios: actualizar %d: %w", id, err)
	}
	return updated, nil
}

// Delete elimina el usuario. El backend lo rechaza si es autor de facturas.
func (uc *UserUseCase) Delete(ctx context.Context, id int) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("usuarios: eliminar %d: %w", id, err)
	}
	return nil
}

func userFromForm(in dto.UserForm) (*entity.User, error) {
	in.Normalize()
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	role, err := entity.ParseRole(in.Role)
	if err != nil {
		return nil, domain.NewValidationError(domain.MsgInvalidRole)
	}
	return &entity.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		UserName:  in.UserName,
		Password:  in.Password,
		Role:      role,
	}, nil
}
