package entity

import "github.com/shopspring/decimal"

// Item artículo a la venta (libros, papelería). Stock lo descuenta el backend al facturar.
type Item struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Stock int             `json:"stock"`
	Price decimal.Decimal `json:"price"`
}
