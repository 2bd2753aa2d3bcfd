// Package pdf genera el comprobante imprimible de una factura de la librería.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Tienda            │  Bill # + Fecha   │
//	│  CLIENTE / CAJERO                              │
//	│  TABLA: Artículo | Cant | P.Unit | Subtotal    │
//	│  TOTAL                                         │
//	│  FOOTER: QR de referencia + leyenda            │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/bookshop-pos/internal/application/billing"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appbilling.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa billing.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct {
	shopName string
	money    func(decimal.Decimal) string
	phone    func(string) string
}

// NewReceiptGenerator construye el generador. money formatea montos y phone números de
// teléfono; nil usa el formato plano.
func NewReceiptGenerator(shopName string, money func(decimal.Decimal) string, phone func(string) string) *ReceiptGenerator {
	if money == nil {
		money = func(d decimal.Decimal) string { return d.StringFixed(2) }
	}
	if phone == nil {
		phone = func(s string) string { return s }
	}
	return &ReceiptGenerator{shopName: shopName, money: money, phone: phone}
}

// GenerateReceipt genera el PDF y devuelve sus bytes. El total es el del servidor.
func (g *ReceiptGenerator) GenerateReceipt(_ context.Context, bill *entity.Bill) ([]byte, error) {
	if bill == nil {
		return nil, fmt.Errorf("pdf: factura vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Bill #%d", bill.ID), true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(bill))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.partiesRow(bill))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.lineRows(bill.BillItems)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(bill))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(bill))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(bill *entity.Bill) core.Row {
	date := "-"
	if !bill.Date.IsZero() {
		date = bill.Date.Format("2006-01-02 15:04")
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.shopName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(5).Add(
			text.New("Bill #"+strconv.Itoa(bill.ID), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1}),
			text.New(date, props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}),
		),
	)
}

func (g *ReceiptGenerator) partiesRow(bill *entity.Bill) core.Row {
	customer, phone := "-", ""
	if bill.Customer != nil {
		customer = bill.Customer.FullName()
		phone = g.phone(bill.Customer.PhoneNumber)
	}
	cashier := "-"
	if bill.User != nil {
		cashier = bill.User.FullName()
	}
	return row.New(14).Add(
		col.New(7).Add(
			text.New("CUSTOMER", props.Text{Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1}),
			text.New(customer, props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
			text.New(phone, props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("CASHIER", props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(cashier, props.Text{Size: 9, Align: align.Right, Top: 5}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("Item", 5, align.Left),
		h("Qty", 2, align.Center),
		h("Unit price", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func (g *ReceiptGenerator) lineRows(lines []entity.BillLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(6).Add(
			col.New(5).Add(text.New(l.ItemName, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.money(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(g.money(l.SubTotal), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

func (g *ReceiptGenerator) totalRow(bill *entity.Bill) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(g.money(bill.Total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
	)
}

// footerRow QR con la referencia de la factura para buscarla en el historial.
func footerRow(bill *entity.Bill) core.Row {
	ref := fmt.Sprintf("BILL:%d;TOTAL:%s", bill.ID, bill.Total.StringFixed(2))
	return row.New(30).Add(
		col.New(4).Add(code.NewQr(ref, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Thank you for your purchase!", props.Text{Style: fontstyle.Bold, Size: 10, Top: 6, Left: 3, Color: colorPrimary}),
			text.New("Keep this receipt for returns and exchanges.", props.Text{Size: 8, Top: 14, Left: 3, Color: colorGray}),
		),
	)
}
