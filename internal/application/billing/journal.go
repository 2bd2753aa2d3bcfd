package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
)

// Journal diario local de las facturas emitidas desde este punto de venta.
type Journal interface {
	Record(ctx context.Context, bill *entity.Bill) error
	Totals(ctx context.Context, since time.Time) (JournalTotals, error)
}

// JournalTotals facturas y monto registrados desde una fecha.
type JournalTotals struct {
	Bills int             `json:"bills"`
	Total decimal.Decimal `json:"total"`
}
