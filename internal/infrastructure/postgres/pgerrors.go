package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation = "23505"
	billJournalPKey     = "pos_bill_journal_pkey"
)

// billAlreadyRecorded indica que la factura ya figura en el diario. Otras violaciones de
// unicidad no cuentan: se reportan como error.
func billAlreadyRecorded(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == billJournalPKey
}
