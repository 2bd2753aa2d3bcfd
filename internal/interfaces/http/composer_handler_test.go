package http_test

import (
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bookshop-pos/internal/application/dto"
	"github.com/jhoicas/bookshop-pos/internal/domain/billing"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
	apphttp "github.com/jhoicas/bookshop-pos/internal/interfaces/http"
)

func TestComposer_FlujoCompletoTresLapices(t *testing.T) {
	fb := newFakeBackend()
	b := newBrowser(t, buildTestApp(t, fb, nil))
	b.login("cashier")

	resp := b.do(http.MethodPost, "/bills/new/customer", formOf("phone", "712345678"), false)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/bills/new", resp.Header.Get("Location"))

	resp = b.do(http.MethodPost, "/bills/new/items", formOf("itemId", "1", "quantity", "3"), false)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp = b.do(http.MethodGet, "/bills/new", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	draft := decodePage[dto.DraftResponse](t, resp).Data
	require.NotNil(t, draft.Customer)
	assert.Equal(t, testCustomer.ID, draft.Customer.ID)
	require.Len(t, draft.Lines, 1)
	assert.Equal(t, 3, draft.Lines[0].Quantity)
	assert.True(t, draft.Total.Equal(decimal.RequireFromString("30.00")), "vista previa: %s", draft.Total)

	resp = b.do(http.MethodPost, "/bills/new", nil, false)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/bills/42", resp.Header.Get("Location"))

	orders := fb.receivedOrders()
	require.Len(t, orders, 1)
	assert.Equal(t, billing.Order{UserID: 2, CustomerID: 7, Items: []billing.OrderItem{{ItemID: 1, Quantity: 3}}}, orders[0])

	resp = b.do(http.MethodGet, "/bills/42", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	bill := decodePage[entity.Bill](t, resp).Data
	assert.True(t, bill.Total.Equal(decimal.RequireFromString("30.00")), "total del servidor: %s", bill.Total)
	assert.True(t, bill.Total.Equal(bill.LinesTotal()))

	resp = b.do(http.MethodGet, "/bills/new", nil, true)
	draft = decodePage[dto.DraftResponse](t, resp).Data
	assert.Nil(t, draft.Customer, "el borrador se vacía tras emitir")
	assert.Empty(t, draft.Lines)
}

func TestComposer_MismoArticuloSumaCantidades(t *testing.T) {
	fb := newFakeBackend()
	b := newBrowser(t, buildTestApp(t, fb, nil))
	b.login("cashier")

	b.do(http.MethodPost, "/bills/new/items", formOf("itemId", "1", "quantity", "2"), false)
	resp := b.do(http.MethodPost, "/bills/new/items", formOf("itemId", "1", "quantity", "1"), true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	draft := decodePage[dto.DraftResponse](t, resp).Data
	require.Len(t, draft.Lines, 1)
	assert.Equal(t, 3, draft.Lines[0].Quantity)
	assert.Equal(t, 3, draft.Units)
}

func TestComposer_SinClienteNoLlamaAlBackend(t *testing.T) {
	fb := newFakeBackend()
	b := newBrowser(t, buildTestApp(t, fb, nil))
	b.login("cashier")

	b.do(http.MethodPost, "/bills/new/items", formOf("itemId", "1", "quantity", "1"), false)
	resp := b.do(http.MethodPost, "/bills/new", nil, true)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	p := decodePage[dto.DraftResponse](t, resp)
	assert.Equal(t, "Please select a customer by entering their phone number.", p.Error)
	assert.Len(t, p.Data.Lines, 1, "el borrador se conserva")
	assert.Zero(t, fb.count("bills.create"))
}

func TestComposer_CarritoVacioNoLlamaAlBackend(t *testing.T) {
	fb := newFakeBackend()
	b := newBrowser(t, buildTestApp(t, fb, nil))
	b.login("cashier")

	b.do(http.MethodPost, "/bills/new/customer", formOf("phone", "712345678"), false)
	resp := b.do(http.MethodPost, "/bills/new", nil, true)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	p := decodePage[dto.DraftResponse](t, resp)
	assert.Equal(t, "Please add at least one item to the bill.", p.Error)
	assert.Zero(t, fb.count("bills.create"))
}

func TestComposer_TelefonoInvalidoLimpiaCliente(t *testing.T) {
	fb := newFakeBackend()
	b := newBrowser(t, buildTestApp(t, fb, nil))
	b.login("cashier")

	b.do(http.MethodPost, "/bills/new/customer", formOf("phone", "712345678"), false)

	cases := map[string]string{
		"1234":       "Phone number must be 9 digits.",
		"7123456789": "Phone number cannot exceed 9 digits.",
		"71234567a":  "Phone number may only contain digits.",
		"777777777":  "No customer found with this phone number.",
	}
	for input, msg := range cases {
		resp := b.do(http.MethodPost, "/bills/new/customer", formOf("phone", input), true)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, input)
		p := decodePage[dto.DraftResponse](t, resp)
		assert.Equal(t, msg, p.Error, input)
		assert.Nil(t, p.Data.Customer, "un intento fallido deja el borrador sin cliente")
	}
}

func TestComposer_QuitarLineaFueraDeRango(t *testing.T) {
	fb := newFakeBackend()
	b := newBrowser(t, buildTestApp(t, fb, nil))
	b.login("cashier")

	b.do(http.MethodPost, "/bills/new/items", formOf("itemId", "1", "quantity", "1"), false)
	resp := b.do(http.MethodPost, "/bills/new/items/5/delete", nil, true)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = b.do(http.MethodPost, "/bills/new/items/0/delete", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodePage[dto.DraftResponse](t, resp).Data.Lines)
}

func TestComposer_DescartarBorrador(t *testing.T) {
	fb := newFakeBackend()
	b := newBrowser(t, buildTestApp(t, fb, nil))
	b.login("cashier")

	b.do(http.MethodPost, "/bills/new/customer", formOf("phone", "712345678"), false)
	b.do(http.MethodPost, "/bills/new/items", formOf("itemId", "1", "quantity", "2"), false)
	resp := b.do(http.MethodPost, "/bills/new/clear", nil, false)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp = b.do(http.MethodGet, "/bills/new", nil, true)
	draft := decodePage[dto.DraftResponse](t, resp).Data
	assert.Nil(t, draft.Customer)
	assert.Empty(t, draft.Lines)
	assert.True(t, draft.Total.IsZero())
}

func TestBills_HistorialYRecibo(t *testing.T) {
	fb := newFakeBackend()
	b := newBrowser(t, buildTestApp(t, fb, nil))
	b.login("admin")

	b.do(http.MethodPost, "/bills/new/customer", formOf("phone", "712345678"), false)
	b.do(http.MethodPost, "/bills/new/items", formOf("itemId", "1", "quantity", "2"), false)
	resp := b.do(http.MethodPost, "/bills/new", nil, false)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp = b.do(http.MethodGet, "/bills", nil, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hist := decodePage[apphttp.BillHistory](t, resp).Data
	require.Len(t, hist.Rows, 1)
	assert.Equal(t, 1, hist.Summary.Bills)
	assert.True(t, hist.Summary.Revenue.Equal(decimal.RequireFromString("20")))

	resp = b.do(http.MethodGet, "/bills/42/receipt.pdf", nil, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "bill_42.pdf")
	assert.True(t, len(readBody(t, resp)) > 4)

	resp = b.do(http.MethodGet, "/bills/999", nil, true)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLoginLimiter_BloqueaTrasElLimite(t *testing.T) {
	fb := newFakeBackend()
	limiter := apphttp.NewLoginLimiter(nil, 2, zerolog.Nop())
	b := newBrowser(t, buildTestApp(t, fb, limiter))

	for i := 0; i < 2; i++ {
		resp := b.do(http.MethodPost, "/login", formOf("username", "admin", "password", "wrong"), false)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp := b.do(http.MethodPost, "/login", formOf("username", "admin", "password", "secret"), false)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.Equal(t, 2, fb.count("login"))
}
