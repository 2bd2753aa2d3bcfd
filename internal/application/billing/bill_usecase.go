package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/bookshop-pos/internal/domain/billing"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
	"github.com/jhoicas/bookshop-pos/internal/domain/phone"
	"github.com/jhoicas/bookshop-pos/internal/domain/repository"
)

// BillUseCase historial de facturas y armado del borrador hasta su envío.
type BillUseCase struct {
	bills     repository.BillRepository
	customers repository.CustomerRepository
	items     repository.ItemRepository
	plan      phone.Plan
	journal   Journal
}

// NewBillUseCase construye el caso de uso.
func NewBillUseCase(
	bills repository.BillRepository,
	customers repository.CustomerRepository,
	items repository.ItemRepository,
	plan phone.Plan,
) *BillUseCase {
	return &BillUseCase{bills: bills, customers: customers, items: items, plan: plan}
}

// WithJournal activa el diario local de facturas emitidas.
func (uc *BillUseCase) WithJournal(j Journal) *BillUseCase {
	uc.journal = j
	return uc
}

// Plan plan telefónico usado en la búsqueda de clientes.
func (uc *BillUseCase) Plan() phone.Plan { return uc.plan }

// List historial de facturas en el orden del backend.
func (uc *BillUseCase) List(ctx context.Context) ([]entity.Bill, error) {
	list, err := uc.bills.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("facturas: listar: %w", err)
	}
	return list, nil
}

// Get factura con sus líneas y el total calculado por el servidor.
func (uc *BillUseCase) Get(ctx context.Context, id int) (*entity.Bill, error) {
	b, err := uc.bills.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("facturas: obtener %d: %w", id, err)
	}
	return b, nil
}

// Catalog artículos disponibles para el selector del borrador.
func (uc *BillUseCase) Catalog(ctx context.Context) ([]entity.Item, error) {
	list, err := uc.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("facturas: catálogo: %w", err)
	}
	return list, nil
}

// LookupCustomer resuelve el cliente del borrador por teléfono local. Si el listado remoto
// falla el borrador no cambia.
func (uc *BillUseCase) LookupCustomer(ctx context.Context, draft *billing.Composer, input string) error {
	customers, err := uc.customers.List(ctx)
	if err != nil {
		return fmt.Errorf("facturas: buscar cliente: %w", err)
	}
	return draft.ResolveCustomer(uc.plan, input, customers)
}

// AddLine agrega al borrador el artículo itemID con la cantidad del formulario.
func (uc *BillUseCase) AddLine(ctx context.Context, draft *billing.Composer, itemID, quantity string) error {
	catalog, err := uc.Catalog(ctx)
	if err != nil {
		return err
	}
	return draft.AddFromCatalog(catalog, itemID, quantity)
}

// Submit envía el borrador como pedido a nombre de user. Sin cliente o sin líneas no hay
// llamada remota. Si el backend acepta, el borrador se vacía; si no, queda intacto.
func (uc *BillUseCase) Submit(ctx context.Context, draft *billing.Composer, user *entity.User) (*entity.Bill, error) {
	userID := 0
	if user != nil {
		userID = user.ID
	}
	order, err := draft.Order(userID)
	if err != nil {
		return nil, err
	}
	bill, err := uc.bills.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("facturas: crear: %w", err)
	}
	draft.Reset()
	if uc.journal != nil {
		if jerr := uc.journal.Record(ctx, bill); jerr != nil {
			log.Warn().Err(jerr).Int("bill_id", bill.ID).Msg("diario de facturas: no se pudo registrar")
		}
	}
	return bill, nil
}

// Today totales del diario local desde la medianoche de now. ok=false si no hay diario.
func (uc *BillUseCase) Today(ctx context.Context, now time.Time) (totals JournalTotals, ok bool, err error) {
	if uc.journal == nil {
		return JournalTotals{}, false, nil
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	totals, err = uc.journal.Totals(ctx, midnight)
	if err != nil {
		return JournalTotals{}, true, err
	}
	return totals, true, nil
}
