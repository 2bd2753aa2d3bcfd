package billing

import (
	"context"

	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
)

// ReceiptGenerator genera el comprobante imprimible de una factura ya creada.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, bill *entity.Bill) ([]byte, error)
}
