// Package catalog holds the product catalog.
package catalog

import (
	"github.com/lupon/admin-client/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Rubro is the product family
type Rubro string

const (
	RubroPolloEntero Rubro = "pollo entero"
	RubroTrozados    Rubro = "trozados y derivados"
	RubroPrefritos   Rubro = "prefritos"
	RubroElaborados  Rubro = "elaborados"
	RubroHuevos      Rubro = "huevos"
	RubroPanificados Rubro = "panificados"
	RubroVegetales   Rubro = "vegetales"
	RubroCerdo       Rubro = "cerdo"
)

// UnidadMedida is the selling unit
type UnidadMedida string

const (
	UnidadKilogramo UnidadMedida = "kg"
	UnidadUnidad    UnidadMedida = "un"
)

// Producto is a catalog item. The retail, wholesale and offer prices are
// derived by the backend from PrecioCompra.
type Producto struct {
	ID                int                 `json:"id"`
	Rubro             Rubro               `json:"rubro"`
	Nombre            string              `json:"nombre"`
	Descripcion       string              `json:"descripcion"`
	UnidadMedida      UnidadMedida        `json:"unidad_medida"`
	PrecioMinorista   decimal.Decimal     `json:"precio_minorista"`
	PrecioMayorista   decimal.Decimal     `json:"precio_mayorista"`
	PrecioOferta      decimal.NullDecimal `json:"precio_oferta"`
	PrecioCompra      decimal.Decimal     `json:"precio_compra"`
	EsOferta          bool                `json:"es_oferta"`
	FechaInicioOferta shared.Date         `json:"fecha_inicio_oferta"`
	FechaFinOferta    shared.Date         `json:"fecha_fin_oferta"`
	Activo            bool                `json:"activo"`
}

// SearchText returns the fields used by client-side search
func (p Producto) SearchText() []string {
	return []string{p.Nombre, p.Descripcion, string(p.Rubro)}
}

// EnOferta reports whether the offer price applies on day
func (p Producto) EnOferta(day shared.Date) bool {
	if !p.EsOferta || !p.PrecioOferta.Valid {
		return false
	}
	if !p.FechaInicioOferta.IsNull() && day.Before(p.FechaInicioOferta.Time) {
		return false
	}
	if !p.FechaFinOferta.IsNull() && day.After(p.FechaFinOferta.Time) {
		return false
	}
	return true
}

// ProductoInput is the payload to create or replace a product
type ProductoInput struct {
	Rubro             Rubro           `json:"rubro" validate:"required,oneof='pollo entero' 'trozados y derivados' prefritos elaborados huevos panificados vegetales cerdo"`
	Nombre            string          `json:"nombre" validate:"required,max=100"`
	Descripcion       string          `json:"descripcion,omitempty"`
	UnidadMedida      UnidadMedida    `json:"unidad_medida" validate:"required,oneof=kg un"`
	PrecioCompra      decimal.Decimal `json:"precio_compra" validate:"gte=0"`
	EsOferta          bool            `json:"es_oferta"`
	FechaInicioOferta shared.Date     `json:"fecha_inicio_oferta,omitzero"`
	FechaFinOferta    shared.Date     `json:"fecha_fin_oferta,omitzero"`
	Activo            *bool           `json:"activo,omitempty"`
}

// ProductoPatch is a partial update; nil fields are left untouched
type ProductoPatch struct {
	Nombre            *string          `json:"nombre,omitempty" validate:"omitempty,min=1,max=100"`
	Descripcion       *string          `json:"descripcion,omitempty"`
	PrecioCompra      *decimal.Decimal `json:"precio_compra,omitempty" validate:"omitempty,gte=0"`
	EsOferta          *bool            `json:"es_oferta,omitempty"`
	FechaInicioOferta *shared.Date     `json:"fecha_inicio_oferta,omitempty"`
	FechaFinOferta    *shared.Date     `json:"fecha_fin_oferta,omitempty"`
	Activo            *bool            `json:"activo,omitempty"`
}
