package http

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bookshop-pos/internal/application/view"
	"github.com/jhoicas/bookshop-pos/internal/domain"
	"github.com/jhoicas/bookshop-pos/pkg/i18n"
)

// Resource operaciones remotas de un recurso administrable desde una pantalla de listado.
type Resource[T any, F any] struct {
	Name   string // segmento de ruta y carpeta de plantillas: "customers"
	Title  string
	List   func(ctx context.Context) ([]T, error)
	Create func(ctx context.Context, in F) (*T, error)
	Update func(ctx context.Context, id int, in F) (*T, error)
	Delete func(ctx context.Context, id int) error
	IDOf   func(T) int
	FormOf func(T) F
}

// CrudPage modelo de la pantalla de listado: filas, formulario abierto y confirmación de baja.
type CrudPage[T any, F any] struct {
	Rows    []T `json:"rows"`
	Form    *F  `json:"form,omitempty"`
	EditID  int `json:"editId,omitempty"`
	Confirm *T  `json:"confirm,omitempty"`
}

// CrudHandler listado, alta, edición y baja con la misma forma para clientes, artículos y usuarios.
type CrudHandler[T any, F any] struct {
	res Resource[T, F]
	r   *Renderer
}

// NewCrudHandler construye el handler del recurso.
func NewCrudHandler[T any, F any](res Resource[T, F], r *Renderer) *CrudHandler[T, F] {
	return &CrudHandler[T, F]{res: res, r: r}
}

// Register monta las rutas del recurso en router (ya protegido por el guard).
func (h *CrudHandler[T, F]) Register(router fiber.Router) {
	router.Get("/", h.Index)
	router.Get("/new", h.New)
	router.Post("/", h.Create)
	router.Get("/:id/edit", h.Edit)
	router.Get("/:id/delete", h.ConfirmDelete)
	router.Post("/:id/delete", h.Delete)
	router.Post("/:id", h.Update)
}

func (h *CrudHandler[T, F]) tpl() string  { return h.res.Name + "/index" }
func (h *CrudHandler[T, F]) base() string { return "/" + h.res.Name }

func (h *CrudHandler[T, F]) mount(c *fiber.Ctx) *view.ListView[T] {
	return view.Mount(c.UserContext(), h.res.List)
}

// show renderiza la pantalla; si la carga o la mutación fallaron, con el error correspondiente.
func (h *CrudHandler[T, F]) show(c *fiber.Ctx, lv *view.ListView[T], data CrudPage[T, F]) error {
	data.Rows = lv.Rows
	p := Page{Title: h.res.Title, Data: data}
	if lv.Failed() {
		return h.r.Fail(c, lv.Err, h.tpl(), p)
	}
	return h.r.Render(c, fiber.StatusOK, h.tpl(), p)
}

// find busca el registro :id en la colección recién cargada.
func (h *CrudHandler[T, F]) find(c *fiber.Ctx, lv *view.ListView[T]) (T, int, error) {
	var zero T
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return zero, 0, domain.ErrNotFound
	}
	if lv.Failed() {
		return zero, id, lv.Err
	}
	row, ok := lv.Find(func(t T) bool { return h.res.IDOf(t) == id })
	if !ok {
		return zero, id, domain.ErrNotFound
	}
	return row, id, nil
}

// Index GET /<res>
func (h *CrudHandler[T, F]) Index(c *fiber.Ctx) error {
	return h.show(c, h.mount(c), CrudPage[T, F]{})
}

// New GET /<res>/new
func (h *CrudHandler[T, F]) New(c *fiber.Ctx) error {
	var form F
	return h.show(c, h.mount(c), CrudPage[T, F]{Form: &form})
}

// Create POST /<res>
func (h *CrudHandler[T, F]) Create(c *fiber.Ctx) error {
	lv := h.mount(c)
	var form F
	if err := c.BodyParser(&form); err != nil {
		lv.Err = domain.NewValidationError(domain.MsgFieldsRequired)
		return h.show(c, lv, CrudPage[T, F]{Form: &form})
	}
	var created *T
	ok := lv.Mutate(c.UserContext(), func(ctx context.Context) (err error) {
		created, err = h.res.Create(ctx, form)
		return err
	})
	if !ok {
		return h.show(c, lv, CrudPage[T, F]{Form: &form})
	}
	return h.r.Done(c, fiber.StatusCreated, i18n.MsgCreated, h.base(), created)
}

// Edit GET /<res>/:id/edit
func (h *CrudHandler[T, F]) Edit(c *fiber.Ctx) error {
	lv := h.mount(c)
	row, id, err := h.find(c, lv)
	if err != nil {
		return h.notFound(c, lv, err)
	}
	form := h.res.FormOf(row)
	return h.show(c, lv, CrudPage[T, F]{Form: &form, EditID: id})
}

// Update POST /<res>/:id
func (h *CrudHandler[T, F]) Update(c *fiber.Ctx) error {
	lv := h.mount(c)
	_, id, err := h.find(c, lv)
	if err != nil {
		return h.notFound(c, lv, err)
	}
	var form F
	if err := c.BodyParser(&form); err != nil {
		lv.Err = domain.NewValidationError(domain.MsgFieldsRequired)
		return h.show(c, lv, CrudPage[T, F]{Form: &form, EditID: id})
	}
	var updated *T
	ok := lv.Mutate(c.UserContext(), func(ctx context.Context) (err error) {
		updated, err = h.res.Update(ctx, id, form)
		return err
	})
	if !ok {
		return h.show(c, lv, CrudPage[T, F]{Form: &form, EditID: id})
	}
	return h.r.Done(c, fiber.StatusOK, i18n.MsgUpdated, h.base(), updated)
}

// ConfirmDelete GET /<res>/:id/delete
func (h *CrudHandler[T, F]) ConfirmDelete(c *fiber.Ctx) error {
	lv := h.mount(c)
	row, _, err := h.find(c, lv)
	if err != nil {
		return h.notFound(c, lv, err)
	}
	return h.show(c, lv, CrudPage[T, F]{Confirm: &row})
}

// Delete POST /<res>/:id/delete. Si el backend rechaza la baja se muestra su mensaje y la
// colección sigue como estaba.
func (h *CrudHandler[T, F]) Delete(c *fiber.Ctx) error {
	lv := h.mount(c)
	_, id, err := h.find(c, lv)
	if err != nil {
		return h.notFound(c, lv, err)
	}
	ok := lv.Mutate(c.UserContext(), func(ctx context.Context) error {
		return h.res.Delete(ctx, id)
	})
	if !ok {
		return h.show(c, lv, CrudPage[T, F]{})
	}
	return h.r.Done(c, fiber.StatusOK, i18n.MsgDeleted, h.base(), nil)
}

func (h *CrudHandler[T, F]) notFound(c *fiber.Ctx, lv *view.ListView[T], err error) error {
	lv.Err = err
	return h.show(c, lv, CrudPage[T, F]{})
}
