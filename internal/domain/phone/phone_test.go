package phone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bookshop-pos/internal/domain"
	"github.com/jhoicas/bookshop-pos/internal/domain/phone"
)

func TestNormalize_NueveDigitos(t *testing.T) {
	full, err := phone.SriLanka.Normalize("712345678")
	require.NoError(t, err)
	assert.Equal(t, "+94712345678", full)
}

func TestNormalize_ErroresDistintos(t *testing.T) {
	cases := []struct {
		name  string
		input string
		key   string
	}{
		{"corto", "71234", domain.MsgPhoneTooShort},
		{"largo", "7123456789", domain.MsgPhoneTooLong},
		{"letras", "71234567a", domain.MsgPhoneNotDigits},
		{"con signo", "+94712345", domain.MsgPhoneNotDigits},
		{"vacío", "", domain.MsgPhoneTooShort},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := phone.SriLanka.Normalize(tc.input)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.key, verr.Key)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCanonical_AceptaLocalOCompleto(t *testing.T) {
	full, err := phone.SriLanka.Canonical("712345678")
	require.NoError(t, err)
	assert.Equal(t, "+94712345678", full)

	full, err = phone.SriLanka.Canonical("+94 712345678")
	require.NoError(t, err)
	assert.Equal(t, "+94712345678", full)

	_, err = phone.SriLanka.Canonical("+9471234")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "+94 71 234 5678", phone.SriLanka.Format("+94712345678"))
	assert.Equal(t, "0712345678", phone.SriLanka.Format("0712345678"))
}
