package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/bookshop-pos/internal/application/dto"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
	"github.com/jhoicas/bookshop-pos/internal/domain/repository"
)

// AuthUseCase login y logout contra el backend. La contraseña nunca se guarda en la sesión.
type AuthUseCase struct {
	gateway repository.AuthGateway
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(gateway repository.AuthGateway) *AuthUseCase {
	return &AuthUseCase{gateway: gateway}
}

// Login valida las credenciales localmente y las envía al backend. Devuelve el usuario y la
// cookie de sesión del backend.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginForm) (*entity.User, string, error) {
	if err := dto.Validate(in); err != nil {
		return nil, "", err
	}
	user, cookie, err := uc.gateway.Login(ctx, in.Username, in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("auth: login %q: %w", in.Username, err)
	}
	user.Password = ""
	return user, cookie, nil
}

// Logout cierra la sesión en el backend. El caller limpia la sesión local aunque falle.
func (uc *AuthUseCase) Logout(ctx context.Context) error {
	if err := uc.gateway.Logout(ctx); err != nil {
		return fmt.Errorf("auth: logout: %w", err)
	}
	return nil
}
