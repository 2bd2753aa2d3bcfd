package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/bookshop-pos/internal/application/billing"
	"github.com/jhoicas/bookshop-pos/internal/domain"
	"github.com/jhoicas/bookshop-pos/internal/domain/billing"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
	"github.com/jhoicas/bookshop-pos/internal/domain/phone"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeBills struct {
	orders  []billing.Order
	failErr error
}

func (f *fakeBills) List(context.Context) ([]entity.Bill, error) { return nil, nil }

func (f *fakeBills) GetByID(_ context.Context, id int) (*entity.Bill, error) {
	return &entity.Bill{ID: id, Total: decimal.RequireFromString("30.00")}, nil
}

func (f *fakeBills) Create(_ context.Context, o billing.Order) (*entity.Bill, error) {
	f.orders = append(f.orders, o)
	if f.failErr != nil {
		return nil, f.failErr
	}
	return &entity.Bill{ID: 42, Total: decimal.RequireFromString("30.00")}, nil
}

type fakeCustomers struct {
	list  []entity.Customer
	err   error
	calls int
}

func (f *fakeCustomers) List(context.Context) ([]entity.Customer, error) {
	f.calls++
	return f.list, f.err
}
func (f *fakeCustomers) Create(context.Context, *entity.Customer) (*entity.Customer, error) {
	return nil, nil
}
func (f *fakeCustomers) Update(context.Context, int, *entity.Customer) (*entity.Customer, error) {
	return nil, nil
}
func (f *fakeCustomers) Delete(context.Context, int) error { return nil }

type fakeItems struct{ list []entity.Item }

func (f *fakeItems) List(context.Context) ([]entity.Item, error) { return f.list, nil }
func (f *fakeItems) Create(context.Context, *entity.Item) (*entity.Item, error) {
	return nil, nil
}
func (f *fakeItems) Update(context.Context, int, *entity.Item) (*entity.Item, error) {
	return nil, nil
}
func (f *fakeItems) Delete(context.Context, int) error { return nil }

func newUseCase() (*appbilling.BillUseCase, *fakeBills, *fakeCustomers) {
	bills := &fakeBills{}
	customers := &fakeCustomers{list: []entity.Customer{{ID: 7, FirstName: "Ann", PhoneNumber: "+94712345678"}}}
	items := &fakeItems{list: []entity.Item{{ID: 1, Name: "Pen", Stock: 50, Price: decimal.RequireFromString("10.00")}}}
	return appbilling.NewBillUseCase(bills, customers, items, phone.SriLanka), bills, customers
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_FlujoCompletoVaciaBorrador(t *testing.T) {
	uc, bills, _ := newUseCase()
	ctx := context.Background()
	draft := &billing.Composer{}

	require.NoError(t, uc.LookupCustomer(ctx, draft, "712345678"))
	require.NoError(t, uc.AddLine(ctx, draft, "1", "3"))
	assert.True(t, decimal.RequireFromString("30").Equal(draft.Total()))

	bill, err := uc.Submit(ctx, draft, &entity.User{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, 42, bill.ID)
	assert.True(t, draft.Empty(), "el borrador se vacía tras crear la factura")

	require.Len(t, bills.orders, 1)
	assert.Equal(t, billing.Order{UserID: 3, CustomerID: 7, Items: []billing.OrderItem{{ItemID: 1, Quantity: 3}}}, bills.orders[0])
}

func TestSubmit_SinClienteNoLlamaAlBackend(t *testing.T) {
	uc, bills, _ := newUseCase()
	draft := &billing.Composer{}
	require.NoError(t, uc.AddLine(context.Background(), draft, "1", "1"))

	_, err := uc.Submit(context.Background(), draft, &entity.User{ID: 3})
	assert.ErrorIs(t, err, domain.NewValidationError(domain.MsgCustomerRequired))
	assert.Empty(t, bills.orders)
	assert.Len(t, draft.Lines, 1)
}

func TestSubmit_CarritoVacioNoLlamaAlBackend(t *testing.T) {
	uc, bills, _ := newUseCase()
	draft := &billing.Composer{}
	require.NoError(t, uc.LookupCustomer(context.Background(), draft, "712345678"))

	_, err := uc.Submit(context.Background(), draft, &entity.User{ID: 3})
	assert.ErrorIs(t, err, domain.NewValidationError(domain.MsgCartEmpty))
	assert.Empty(t, bills.orders)
}

func TestSubmit_FalloRemotoConservaBorrador(t *testing.T) {
	uc, bills, _ := newUseCase()
	bills.failErr = domain.ErrUnavailable
	draft := &billing.Composer{}
	ctx := context.Background()
	require.NoError(t, uc.LookupCustomer(ctx, draft, "712345678"))
	require.NoError(t, uc.AddLine(ctx, draft, "1", "2"))

	_, err := uc.Submit(ctx, draft, &entity.User{ID: 3})
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.NotNil(t, draft.Customer)
	assert.Len(t, draft.Lines, 1)
}

func TestLookupCustomer_NoEncontradoLimpiaSeleccion(t *testing.T) {
	uc, _, _ := newUseCase()
	draft := &billing.Composer{}
	ctx := context.Background()
	require.NoError(t, uc.LookupCustomer(ctx, draft, "712345678"))

	err := uc.LookupCustomer(ctx, draft, "770000000")
	assert.ErrorIs(t, err, domain.NewValidationError(domain.MsgCustomerNotFound))
	assert.Nil(t, draft.Customer)
}

func TestLookupCustomer_FalloRemotoNoTocaBorrador(t *testing.T) {
	uc, _, customers := newUseCase()
	draft := &billing.Composer{}
	ctx := context.Background()
	require.NoError(t, uc.LookupCustomer(ctx, draft, "712345678"))

	customers.err = errors.New("conexión rechazada")
	err := uc.LookupCustomer(ctx, draft, "770000000")
	require.Error(t, err)
	assert.NotNil(t, draft.Customer)
	assert.Equal(t, 2, customers.calls)
}

type fakeGenerator struct{ got *entity.Bill }

func (g *fakeGenerator) GenerateReceipt(_ context.Context, b *entity.Bill) ([]byte, error) {
	g.got = b
	return []byte("%PDF-1.4"), nil
}

func TestReceipt_NombreDeArchivo(t *testing.T) {
	uc, _, _ := newUseCase()
	gen := &fakeGenerator{}
	receipts := appbilling.NewReceiptUseCase(uc, gen)

	pdf, name, err := receipts.Receipt(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "bill_12.pdf", name)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	assert.Equal(t, 12, gen.got.ID)
}

type memJournal struct {
	recorded []int
	since    time.Time
}

func (j *memJournal) Record(_ context.Context, b *entity.Bill) error {
	j.recorded = append(j.recorded, b.ID)
	return nil
}

func (j *memJournal) Totals(_ context.Context, since time.Time) (appbilling.JournalTotals, error) {
	j.since = since
	return appbilling.JournalTotals{Bills: len(j.recorded), Total: decimal.RequireFromString("30.00")}, nil
}

func TestSubmit_RegistraEnDiario(t *testing.T) {
	uc, _, _ := newUseCase()
	journal := &memJournal{}
	uc.WithJournal(journal)
	ctx := context.Background()
	draft := &billing.Composer{}
	require.NoError(t, uc.LookupCustomer(ctx, draft, "712345678"))
	require.NoError(t, uc.AddLine(ctx, draft, "1", "3"))

	_, err := uc.Submit(ctx, draft, &entity.User{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, []int{42}, journal.recorded)

	now := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)
	totals, ok, err := uc.Today(ctx, now)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, totals.Bills)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), journal.since)
}

func TestToday_SinDiario(t *testing.T) {
	uc, _, _ := newUseCase()
	_, ok, err := uc.Today(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.False(t, ok)
}
