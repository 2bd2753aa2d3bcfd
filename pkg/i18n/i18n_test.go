package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bookshop-pos/internal/domain"
	"github.com/jhoicas/bookshop-pos/pkg/i18n"
)

func TestT_Ingles(t *testing.T) {
	tr := i18n.New("en", "Rs.")
	assert.Equal(t, "Phone number must be 9 digits.", tr.T(domain.MsgPhoneTooShort, 9))
	assert.Equal(t, "No customer found with this phone number.", tr.T(domain.MsgCustomerNotFound))
	assert.Equal(t, "Please add at least one item to the bill.", tr.T(domain.MsgCartEmpty))
}

func TestT_Espanol(t *testing.T) {
	tr := i18n.New("es-CO", "Rs.")
	assert.Equal(t, "es", tr.Lang())
	assert.Equal(t, "El teléfono no puede superar 9 dígitos.", tr.T(domain.MsgPhoneTooLong, 9))
}

func TestNew_IdiomaNoSoportadoCaeEnIngles(t *testing.T) {
	tr := i18n.New("xx-invalid-", "Rs.")
	assert.Equal(t, "en", tr.Lang())
	assert.Equal(t, "All fields are required.", tr.T(domain.MsgFieldsRequired))
}

func TestT_TodasLasClavesDeDominioTienenTexto(t *testing.T) {
	tr := i18n.New("en", "Rs.")
	keys := []string{
		domain.MsgPhoneNotDigits, domain.MsgPhoneInvalid, domain.MsgInvalidLine, domain.MsgLineOutOfRange,
		domain.MsgCustomerRequired, domain.MsgPasswordTooShort, domain.MsgInvalidRole, domain.MsgInvalidStock,
		domain.MsgInvalidPrice, domain.MsgCredentialsRequired, domain.MsgTooManyAttempts,
	}
	for _, k := range keys {
		assert.NotEqual(t, k, tr.T(k), "falta traducción para %s", k)
	}
}
