package entity

import "strings"

// Customer representa un cliente de la librería. PhoneNumber siempre incluye el código de país.
type Customer struct {
	ID          int    `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

// FullName nombre para mostrar.
func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
