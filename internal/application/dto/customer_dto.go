package dto

import "github.com/jhoicas/bookshop-pos/internal/domain/entity"

// CustomerForm entrada de alta/edición de cliente. PhoneNumber acepta "+94712345678" o "712345678".
type CustomerForm struct {
	FirstName   string `json:"firstName" form:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" form:"lastName" validate:"required,max=100"`
	Address     string `json:"address" form:"address" validate:"required,max=255"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" validate:"required"`
}

// Normalize recorta espacios.
func (f *CustomerForm) Normalize() {
	f.FirstName = trim(f.FirstName)
	f.LastName = trim(f.LastName)
	f.Address = trim(f.Address)
	f.PhoneNumber = trim(f.PhoneNumber)
}

// CustomerFormFrom precarga el formulario de edición.
func CustomerFormFrom(c entity.Customer) CustomerForm {
	return CustomerForm{FirstName: c.FirstName, LastName: c.LastName, Address: c.Address, PhoneNumber: c.PhoneNumber}
}
