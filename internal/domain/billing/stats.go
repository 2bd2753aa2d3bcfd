package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
)

// Summary indicadores del historial de facturas.
type Summary struct {
	Bills           int             `json:"bills"`
	Revenue         decimal.Decimal `json:"revenue"`
	LastWeek        int             `json:"lastWeek"`
	UniqueCustomers int             `json:"uniqueCustomers"`
}

// Summarize calcula los indicadores con los totales del servidor. LastWeek cuenta las facturas
// de los últimos 7 días respecto de now; las fechas vacías no cuentan.
func Summarize(bills []entity.Bill, now time.Time) Summary {
	s := Summary{Revenue: decimal.Zero}
	weekAgo := now.Add(-7 * 24 * time.Hour)
	customers := make(map[int]struct{})
	for _, b := range bills {
		s.Bills++
		s.Revenue = s.Revenue.Add(b.Total)
		if !b.Date.IsZero() && !b.Date.Before(weekAgo) {
			s.LastWeek++
		}
		if b.Customer != nil && b.Customer.ID > 0 {
			customers[b.Customer.ID] = struct{}{}
		}
	}
	s.UniqueCustomers = len(customers)
	return s
}
