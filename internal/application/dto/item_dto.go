package dto

import "github.com/jhoicas/bookshop-pos/internal/domain/entity"

// ItemForm entrada de alta/edición de artículo. Stock y Price llegan como texto del formulario
// y se convierten en el caso de uso.
type ItemForm struct {
	Name  string `json:"name" form:"name" validate:"required,max=200"`
	Stock string `json:"stock" form:"stock" validate:"required,number"`
	Price string `json:"price" form:"price" validate:"required,numeric"`
}

// Normalize recorta espacios.
func (f *ItemForm) Normalize() {
	f.Name = trim(f.Name)
	f.Stock = trim(f.Stock)
	f.Price = trim(f.Price)
}

// ItemFormFrom precarga el formulario de edición.
func ItemFormFrom(it entity.Item) ItemForm {
	return ItemForm{Name: it.Name, Stock: itoa(it.Stock), Price: it.Price.StringFixed(2)}
}
