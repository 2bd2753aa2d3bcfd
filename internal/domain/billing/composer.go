// Package billing arma una factura pendiente en memoria: cliente elegido por teléfono,
// carrito de líneas y total de vista previa. El total autoritativo lo calcula el backend.
package billing

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bookshop-pos/internal/domain"
	"github.com/jhoicas/bookshop-pos/internal/domain/entity"
	"github.com/jhoicas/bookshop-pos/internal/domain/phone"
)

// MaxLineQuantity tope de unidades por línea del carrito.
const MaxLineQuantity = 100000

// Composer borrador de factura. Es serializable para guardarlo en la sesión entre peticiones.
type Composer struct {
	PhoneInput string            `json:"phoneInput,omitempty"`
	Customer   *entity.Customer  `json:"customer,omitempty"`
	Lines      []entity.BillLine `json:"lines,omitempty"`
}

// OrderItem línea del pedido enviado al backend; el precio lo resuelve el servidor.
type OrderItem struct {
	ItemID   int `json:"itemId"`
	Quantity int `json:"quantity"`
}

// Order cuerpo de creación de factura.
type Order struct {
	UserID     int         `json:"userId,omitempty"`
	CustomerID int         `json:"customerId"`
	Items      []OrderItem `json:"items"`
}

// ResolveCustomer valida el teléfono local, antepone el código de país y busca coincidencia
// exacta en customers. Si falla, el cliente seleccionado queda vacío.
func (c *Composer) ResolveCustomer(plan phone.Plan, input string, customers []entity.Customer) error {
	c.PhoneInput = strings.TrimSpace(input)
	c.Customer = nil
	full, err := plan.Normalize(c.PhoneInput)
	if err != nil {
		return err
	}
	for i := range customers {
		if customers[i].PhoneNumber == full {
			found := customers[i]
			c.Customer = &found
			return nil
		}
	}
	return domain.NewValidationError(domain.MsgCustomerNotFound)
}

// AddItem agrega quantity unidades de item. Si el artículo ya está en el carrito se suman
// las cantidades y se recalcula el subtotal con el precio unitario de la línea. Una línea nunca
// supera MaxLineQuantity; si la suma lo haría, la línea queda como estaba.
func (c *Composer) AddItem(item entity.Item, quantity int) error {
	if item.ID <= 0 || quantity <= 0 || quantity > MaxLineQuantity {
		return domain.NewValidationError(domain.MsgInvalidLine)
	}
	for i := range c.Lines {
		l := &c.Lines[i]
		if l.ItemID == item.ID {
			if quantity > MaxLineQuantity-l.Quantity {
				return domain.NewValidationError(domain.MsgInvalidLine)
			}
			l.Quantity += quantity
			l.SubTotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
			return nil
		}
	}
	c.Lines = append(c.Lines, entity.BillLine{
		ItemID:    item.ID,
		ItemName:  item.Name,
		UnitPrice: item.Price,
		Quantity:  quantity,
		SubTotal:  item.Price.Mul(decimal.NewFromInt(int64(quantity))),
	})
	return nil
}

// AddFromCatalog interpreta los campos del formulario (id de artículo y cantidad) y busca el
// artículo en el catálogo ya cargado.
func (c *Composer) AddFromCatalog(catalog []entity.Item, itemID, quantity string) error {
	id, err := strconv.Atoi(strings.TrimSpace(itemID))
	if err != nil {
		return domain.NewValidationError(domain.MsgInvalidLine)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil {
		return domain.NewValidationError(domain.MsgInvalidLine)
	}
	for _, it := range catalog {
		if it.ID == id {
			return c.AddItem(it, qty)
		}
	}
	return domain.NewValidationError(domain.MsgInvalidLine)
}

// RemoveAt elimina la línea en la posición index.
func (c *Composer) RemoveAt(index int) error {
	if index < 0 || index >= len(c.Lines) {
		return domain.NewValidationError(domain.MsgLineOutOfRange)
	}
	c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)
	return nil
}

// Total vista previa: suma de subtotales, recalculada en cada llamada.
func (c *Composer) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.SubTotal)
	}
	return sum
}

// Units cantidad total de unidades en el carrito.
func (c *Composer) Units() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Empty indica si el borrador no tiene cliente ni líneas.
func (c *Composer) Empty() bool {
	return c.Customer == nil && len(c.Lines) == 0 && c.PhoneInput == ""
}

// Reset descarta el borrador.
func (c *Composer) Reset() {
	*c = Composer{}
}

// Order valida que haya cliente y al menos una línea y arma el pedido.
func (c *Composer) Order(userID int) (Order, error) {
	if c.Customer == nil || c.Customer.ID <= 0 {
		return Order{}, domain.NewValidationError(domain.MsgCustomerRequired)
	}
	if len(c.Lines) == 0 {
		return Order{}, domain.NewValidationError(domain.MsgCartEmpty)
	}
	items := make([]OrderItem, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, OrderItem{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	return Order{UserID: userID, CustomerID: c.Customer.ID, Items: items}, nil
}
