package billing

import (
	"context"
	"fmt"
)

// ReceiptUseCase genera el PDF de una factura existente.
type ReceiptUseCase struct {
	bills     *BillUseCase
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(bills *BillUseCase, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{bills: bills, generator: generator}
}

// Receipt devuelve el PDF y el nombre de archivo sugerido.
func (uc *ReceiptUseCase) Receipt(ctx context.Context, id int) ([]byte, string, error) {
	bill, err := uc.bills.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateReceipt(ctx, bill)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("bill_%d.pdf", bill.ID), nil
}
