package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	appbilling "github.com/jhoicas/bookshop-pos/internal/application/billing"
	"github.com/jhoicas/bookshop-pos/internal/application/dto"
	"github.com/jhoicas/bookshop-pos/internal/domain"
	"github.com/jhoicas/bookshop-pos/internal/domain/billing"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
	"github.com/jhoicas/bookshop-pos/pkg/i18n"
)

const (
	tplComposer  = "bills/new"
	pathComposer = "/bills/new"
)

// ComposerHandler armado de una factura nueva. El borrador vive en la sesión.
type ComposerHandler struct {
	bills *appbilling.BillUseCase
	r     *Renderer
}

// NewComposerHandler construye el handler.
func NewComposerHandler(bills *appbilling.BillUseCase, r *Renderer) *ComposerHandler {
	return &ComposerHandler{bills: bills, r: r}
}

func draftResponse(d *billing.Composer, catalog []entity.Item) dto.DraftResponse {
	lines := d.Lines
	if lines == nil {
		lines = []entity.BillLine{}
	}
	if catalog == nil {
		catalog = []entity.Item{}
	}
	return dto.DraftResponse{
		PhoneInput: d.PhoneInput,
		Customer:   d.Customer,
		Lines:      lines,
		Units:      d.Units(),
		Total:      d.Total(),
		Items:      catalog,
	}
}

// page renderiza el borrador con el catálogo. Si err no es nil se muestra como aviso con su status.
func (h *ComposerHandler) page(c *fiber.Ctx, err error) error {
	draft := SessionFrom(c).Draft()
	catalog, cerr := h.bills.Catalog(c.UserContext())
	if err == nil {
		err = cerr
	}
	p := Page{Title: "Create a Bill", Data: draftResponse(draft, catalog)}
	if err != nil {
		return h.r.Fail(c, err, tplComposer, p)
	}
	return h.r.Render(c, fiber.StatusOK, tplComposer, p)
}

// back cierra una acción exitosa del borrador.
func (h *ComposerHandler) back(c *fiber.Ctx) error {
	if wantsJSON(c) {
		return h.page(c, nil)
	}
	return c.Redirect(pathComposer, fiber.StatusSeeOther)
}

// Show GET /bills/new
// @Summary Borrador de factura
// @Tags composer
// @Produce json,html
// @Success 200 {object} http.Page
// @Router /bills/new [get]
func (h *ComposerHandler) Show(c *fiber.Ctx) error {
	return h.page(c, nil)
}

// LookupCustomer POST /bills/new/customer. Un intento fallido deja el borrador sin cliente.
// @Summary Elegir cliente por teléfono
// @Tags composer
// @Accept json,x-www-form-urlencoded
// @Param body body dto.PhoneLookupForm true "teléfono local de 9 dígitos"
// @Success 200 {object} http.Page
// @Failure 422 {object} http.Page
// @Router /bills/new/customer [post]
func (h *ComposerHandler) LookupCustomer(c *fiber.Ctx) error {
	var in dto.PhoneLookupForm
	_ = c.BodyParser(&in)
	sess := SessionFrom(c)
	draft := sess.Draft()
	err := h.bills.LookupCustomer(c.UserContext(), draft, in.Phone)
	sess.SetDraft(draft)
	if err != nil {
		return h.page(c, err)
	}
	return h.back(c)
}

// AddLine POST /bills/new/items
// @Summary Agregar artículo al borrador
// @Tags composer
// @Accept json,x-www-form-urlencoded
// @Param body body dto.AddLineForm true "artículo y cantidad"
// @Success 200 {object} http.Page
// @Failure 422 {object} http.Page
// @Router /bills/new/items [post]
func (h *ComposerHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddLineForm
	_ = c.BodyParser(&in)
	sess := SessionFrom(c)
	draft := sess.Draft()
	if err := h.bills.AddLine(c.UserContext(), draft, in.ItemID, in.Quantity); err != nil {
		return h.page(c, err)
	}
	sess.SetDraft(draft)
	return h.back(c)
}

// RemoveLine POST /bills/new/items/:index/delete
// @Summary Quitar una línea del borrador
// @Tags composer
// @Param index path int true "posición de la línea"
// @Success 200 {object} http.Page
// @Failure 422 {object} http.Page
// @Router /bills/new/items/{index}/delete [post]
func (h *ComposerHandler) RemoveLine(c *fiber.Ctx) error {
	sess := SessionFrom(c)
	draft := sess.Draft()
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return h.page(c, domain.NewValidationError(domain.MsgLineOutOfRange))
	}
	if err := draft.RemoveAt(index); err != nil {
		return h.page(c, err)
	}
	sess.SetDraft(draft)
	return h.back(c)
}

// Clear POST /bills/new/clear descarta el borrador.
// @Summary Descartar el borrador
// @Tags composer
// @Success 303
// @Router /bills/new/clear [post]
func (h *ComposerHandler) Clear(c *fiber.Ctx) error {
	sess := SessionFrom(c)
	sess.SetDraft(nil)
	if wantsJSON(c) {
		return h.page(c, nil)
	}
	sess.Flash("success", h.r.Translator().T(i18n.MsgDraftCleared))
	return c.Redirect(pathComposer, fiber.StatusSeeOther)
}

// Submit POST /bills/new envía el borrador. Si el backend lo rechaza el borrador se conserva.
// @Summary Emitir la factura
// @Tags composer
// @Produce json,html
// @Success 201 {object} entity.Bill
// @Failure 422 {object} http.Page
// @Failure 502 {object} http.Page
// @Router /bills/new [post]
func (h *ComposerHandler) Submit(c *fiber.Ctx) error {
	sess := SessionFrom(c)
	draft := sess.Draft()
	bill, err := h.bills.Submit(c.UserContext(), draft, CurrentUser(c))
	if err != nil {
		return h.page(c, err)
	}
	sess.SetDraft(nil)
	return h.r.Done(c, fiber.StatusCreated, i18n.MsgBillCreated, fmt.Sprintf("/bills/%d", bill.ID), bill)
}
