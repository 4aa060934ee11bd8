// Package partner holds the business partners: customers, suppliers and users.
package partner

import (
	"net/url"

	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TipoContacto separates customers from suppliers
type TipoContacto string

const (
	TipoCliente   TipoContacto = "cliente"
	TipoProveedor TipoContacto = "proveedor"
)

// Categoria is the price tier of a customer
type Categoria string

const (
	CategoriaMayorista Categoria = "Mayorista"
	CategoriaMinorista Categoria = "Minorista"
)

// Contacto is a customer or supplier as returned by the backend.
// Direccion and SaldoContacto are computed server-side.
type Contacto struct {
	ID             int              `json:"id"`
	Tipo           TipoContacto     `json:"tipo"`
	Nombre         string           `json:"nombre"`
	NombreFantasia string           `json:"nombre_fantasia"`
	Email          string           `json:"email"`
	Telefono       string           `json:"telefono"`
	Direccion      string           `json:"direccion"`
	FormaPago      shared.FormaPago `json:"forma_pago"`
	DiasCC         int              `json:"dias_cc"`
	SaldoContacto  decimal.Decimal  `json:"saldo_contacto"`
	Categoria      Categoria        `json:"categoria"`
	Activo         bool             `json:"activo"`
}

// SearchText returns the fields used by client-side search
func (c Contacto) SearchText() []string {
	return []string{c.Nombre, c.NombreFantasia, c.Email, c.Telefono, c.Direccion}
}

// ContactoInput is the payload to create or update a contact.
// The backend composes direccion from calle, numero and ciudad.
type ContactoInput struct {
	Tipo           TipoContacto     `json:"tipo" validate:"required,oneof=cliente proveedor"`
	Nombre         string           `json:"nombre" validate:"required,max=100"`
	NombreFantasia string           `json:"nombre_fantasia,omitempty" validate:"max=100"`
	Email          string           `json:"email" validate:"required,email"`
	Telefono       string           `json:"telefono,omitempty" validate:"max=10"`
	Calle          string           `json:"calle,omitempty"`
	Numero         string           `json:"numero,omitempty"`
	Ciudad         string           `json:"ciudad,omitempty"`
	FormaPago      shared.FormaPago `json:"forma_pago,omitempty" validate:"omitempty,oneof=contado 'cuenta corriente'"`
	DiasCC         int              `json:"dias_cc" validate:"gte=0"`
	Categoria      Categoria        `json:"categoria,omitempty" validate:"omitempty,oneof=Mayorista Minorista"`
	Activo         *bool            `json:"activo,omitempty"`
}

// ContactoPatch is a partial update; nil fields are left untouched
type ContactoPatch struct {
	Nombre         *string           `json:"nombre,omitempty" validate:"omitempty,min=1,max=100"`
	NombreFantasia *string           `json:"nombre_fantasia,omitempty" validate:"omitempty,max=100"`
	Email          *string           `json:"email,omitempty" validate:"omitempty,email"`
	Telefono       *string           `json:"telefono,omitempty" validate:"omitempty,max=10"`
	Calle          *string           `json:"calle,omitempty"`
	Numero         *string           `json:"numero,omitempty"`
	Ciudad         *string           `json:"ciudad,omitempty"`
	FormaPago      *shared.FormaPago `json:"forma_pago,omitempty" validate:"omitempty,oneof=contado 'cuenta corriente'"`
	DiasCC         *int              `json:"dias_cc,omitempty" validate:"omitempty,gte=0"`
	Categoria      *Categoria        `json:"categoria,omitempty" validate:"omitempty,oneof=Mayorista Minorista"`
	Activo         *bool             `json:"activo,omitempty"`
}

// ContactoFilter narrows a contact listing server-side
type ContactoFilter struct {
	Tipo      TipoContacto
	Nombre    string
	Categoria Categoria
	FormaPago shared.FormaPago
}

// Query encodes the filter; empty fields are omitted
func (f ContactoFilter) Query() url.Values {
	q := url.Values{}
	if f.Tipo != "" {
		q.Set("tipo", string(f.Tipo))
	}
	if f.Categoria != "" {
		q.Set("categoria", string(f.Categoria))
	}
	if f.FormaPago != "" {
		q.Set("forma_pago", string(f.FormaPago))
	}
	if f.Nombre != "" {
		q.Set("nombre", f.Nombre)
	}
	return q
}
