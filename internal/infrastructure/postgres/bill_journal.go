package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/bookshop-pos/internal/application/billing"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
)

var _ appbilling.Journal = (*BillJournal)(nil)

// BillJournal implementa billing.Journal sobre pos_bill_journal.
type BillJournal struct {
	pool *pgxpool.Pool
}

// NewBillJournal construye el diario.
func NewBillJournal(pool *pgxpool.Pool) *BillJournal {
	return &BillJournal{pool: pool}
}

// Record registra la factura creada. Registrar dos veces la misma factura no es error.
func (j *BillJournal) Record(ctx context.Context, bill *entity.Bill) error {
	var userID, customerID int
	if bill.User != nil {
		userID = bill.User.ID
	}
	if bill.Customer != nil {
		customerID = bill.Customer.ID
	}
	_, err := j.pool.Exec(ctx, `
		INSERT INTO pos_bill_journal (bill_id, user_id, customer_id, lines, total)
		VALUES ($1, $2, $3, $4, $5)`,
		bill.ID, userID, customerID, len(bill.BillItems), bill.Total)
	if err != nil {
		if billAlreadyRecorded(err) {
			return nil
		}
		return fmt.Errorf("diario: registrar factura %d: %w", bill.ID, err)
	}
	return nil
}

// Totals facturas y suma de totales desde since.
func (j *BillJournal) Totals(ctx context.Context, since time.Time) (appbilling.JournalTotals, error) {
	out := appbilling.JournalTotals{Total: decimal.Zero}
	err := j.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM pos_bill_journal
		WHERE recorded_at >= $1`, since).Scan(&out.Bills, &out.Total)
	if err != nil {
		return appbilling.JournalTotals{}, fmt.Errorf("diario: totales: %w", err)
	}
	return out, nil
}
