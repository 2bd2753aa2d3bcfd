package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BillLine línea de una factura o de un carrito pendiente.
type BillLine struct {
	ItemID    int             `json:"itemId"`
	ItemName  string          `json:"itemName"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	SubTotal  decimal.Decimal `json:"subTotal"`
}

// Bill factura creada por el backend. Inmutable desde el cliente; Total es el valor autoritativo del servidor.
type Bill struct {
	ID        int             `json:"id"`
	Date      Timestamp       `json:"date"`
	User      *User           `json:"user,omitempty"`
	Customer  *Customer       `json:"customer,omitempty"`
	BillItems []BillLine      `json:"billItems"`
	Total     decimal.Decimal `json:"total"`
}

// LinesTotal suma los subtotales de las líneas (para comprobar contra Total).
func (b Bill) LinesTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range b.BillItems {
		sum = sum.Add(l.SubTotal)
	}
	return sum
}

// Timestamp fecha tal como la serializa el backend: epoch en milisegundos o texto ISO-8601
// (con o sin zona, a veces con sufijo "[UTC]").
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON acepta número (epoch ms), texto o null.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if b[0] != '"' {
		var ms int64
		if err := json.Unmarshal(b, &ms); err != nil {
			return fmt.Errorf("fecha: %w", err)
		}
		t.Time = time.UnixMilli(ms).UTC()
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("fecha: %w", err)
	}
	if i := strings.IndexByte(s, '['); i > 0 {
		s = s[:i]
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("fecha: formato no reconocido %q", s)
}

// MarshalJSON serializa en RFC3339 (o null si está vacía).
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}
