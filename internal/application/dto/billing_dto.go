package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
)

// PhoneLookupForm búsqueda de cliente por teléfono local.
type PhoneLookupForm struct {
	Phone string `json:"phone" form:"phone"`
}

// AddLineForm agrega un artículo al borrador.
type AddLineForm struct {
	ItemID   string `json:"itemId" form:"itemId"`
	Quantity string `json:"quantity" form:"quantity"`
}

// DraftResponse estado del borrador de factura. Total es solo vista previa.
type DraftResponse struct {
	PhoneInput string            `json:"phoneInput,omitempty"`
	Customer   *entity.Customer  `json:"customer,omitempty"`
	Lines      []entity.BillLine `json:"lines"`
	Units      int               `json:"units"`
	Total      decimal.Decimal   `json:"total"`
	Items      []entity.Item     `json:"items"`
}
