package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bookshop-pos/internal/application/dto"
	"github.com/jhoicas/bookshop-pos/internal/domain"
)

func validationKey(t *testing.T, err error) string {
	t.Helper()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Key
}

func TestValidate_CamposVacios(t *testing.T) {
	err := dto.Validate(dto.CustomerForm{FirstName: "Ann"})
	assert.Equal(t, domain.MsgFieldsRequired, validationKey(t, err))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidate_LoginUsaMensajePropio(t *testing.T) {
	err := dto.Validate(dto.LoginForm{Username: "admin"})
	assert.Equal(t, domain.MsgCredentialsRequired, validationKey(t, err))
}

func TestValidate_PasswordCorta(t *testing.T) {
	f := dto.UserForm{FirstName: "A", LastName: "B", UserName: "ab", Password: "123", Role: "USER"}
	err := dto.Validate(f)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, domain.MsgPasswordTooShort, ve.Key)
	assert.Equal(t, []any{dto.MinPasswordLen}, ve.Args)
}

func TestValidate_PasswordVaciaPermitidaEnEdicion(t *testing.T) {
	f := dto.UserForm{FirstName: "A", LastName: "B", UserName: "ab", Role: "ADMIN"}
	assert.NoError(t, dto.Validate(f))
}

func TestValidate_RolInvalido(t *testing.T) {
	f := dto.UserForm{FirstName: "A", LastName: "B", UserName: "ab", Role: "ROOT"}
	f.Normalize()
	assert.Equal(t, domain.MsgInvalidRole, validationKey(t, dto.Validate(f)))
}

func TestUserForm_NormalizeRolEnMinusculas(t *testing.T) {
	f := dto.UserForm{FirstName: " A ", LastName: "B", UserName: "ab", Role: "user"}
	f.Normalize()
	assert.Equal(t, "USER", f.Role)
	assert.Equal(t, "A", f.FirstName)
	assert.NoError(t, dto.Validate(f))
}

func TestValidate_ItemStockYPrecio(t *testing.T) {
	assert.Equal(t, domain.MsgInvalidStock, validationKey(t, dto.Validate(dto.ItemForm{Name: "Pen", Stock: "-1", Price: "10"})))
	assert.Equal(t, domain.MsgInvalidPrice, validationKey(t, dto.Validate(dto.ItemForm{Name: "Pen", Stock: "3", Price: "diez"})))
	assert.NoError(t, dto.Validate(dto.ItemForm{Name: "Pen", Stock: "0", Price: "10.50"}))
}
