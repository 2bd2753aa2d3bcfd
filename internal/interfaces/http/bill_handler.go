package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	appbilling "github.com/jhoicas/bookshop-pos/internal/application/billing"
	"github.com/jhoicas/bookshop-pos/internal/application/view"
	"github.com/jhoicas/bookshop-pos/internal/domain"
	"github.com/jhoicas/bookshop-pos/internal/domain/billing"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
)

const (
	tplBills    = "bills/index"
	tplBillShow = "bills/show"
)

// BillHistory modelo de /bills.
type BillHistory struct {
	Rows    []entity.Bill   `json:"rows"`
	Summary billing.Summary `json:"summary"`
}

// BillHandler historial, detalle y recibo PDF de facturas.
type BillHandler struct {
	bills    *appbilling.BillUseCase
	receipts *appbilling.ReceiptUseCase
	r        *Renderer
	now      func() time.Time
}

// NewBillHandler construye el handler.
func NewBillHandler(bills *appbilling.BillUseCase, receipts *appbilling.ReceiptUseCase, r *Renderer) *BillHandler {
	return &BillHandler{bills: bills, receipts: receipts, r: r, now: time.Now}
}

// List GET /bills
// @Summary Historial de facturas
// @Tags bills
// @Produce json,html
// @Success 200 {object} http.Page
// @Failure 502 {object} http.Page
// @Router /bills [get]
func (h *BillHandler) List(c *fiber.Ctx) error {
	lv := view.Mount(c.UserContext(), h.bills.List)
	p := Page{Title: "Bill History", Data: BillHistory{Rows: lv.Rows, Summary: billing.Summarize(lv.Rows, h.now())}}
	if lv.Failed() {
		return h.r.Fail(c, lv.Err, tplBills, p)
	}
	return h.r.Render(c, fiber.StatusOK, tplBills, p)
}

// Show GET /bills/:id. Muestra la factura tal como la devuelve el servidor.
// @Summary Detalle de factura
// @Tags bills
// @Produce json,html
// @Param id path int true "id de la factura"
// @Success 200 {object} http.Page
// @Failure 404 {object} http.Page
// @Router /bills/{id} [get]
func (h *BillHandler) Show(c *fiber.Ctx) error {
	id, err := billID(c)
	if err != nil {
		return h.r.Fail(c, err, tplBillShow, Page{Title: "Bill"})
	}
	bill, err := h.bills.Get(c.UserContext(), id)
	if err != nil {
		return h.r.Fail(c, err, tplBillShow, Page{Title: "Bill"})
	}
	return h.r.Render(c, fiber.StatusOK, tplBillShow, Page{Title: fmt.Sprintf("Bill #%d", bill.ID), Data: bill})
}

// Receipt GET /bills/:id/receipt.pdf
// @Summary Recibo PDF de la factura
// @Tags bills
// @Produce application/pdf
// @Param id path int true "id de la factura"
// @Success 200 {file} binary
// @Failure 404 {object} http.Page
// @Router /bills/{id}/receipt.pdf [get]
func (h *BillHandler) Receipt(c *fiber.Ctx) error {
	id, err := billID(c)
	if err != nil {
		return h.r.Fail(c, err, tplBillShow, Page{Title: "Bill"})
	}
	pdf, filename, err := h.receipts.Receipt(c.UserContext(), id)
	if err != nil {
		return h.r.Fail(c, err, tplBillShow, Page{Title: "Bill"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdf)
}

func billID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}
