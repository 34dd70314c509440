package entity

import "github.com/shopspring/decimal"

// ProductRef referencia a un producto dentro de una posición: o bien un identificador
// sin resolver (tal como llegó en el request) o bien un Product ya materializado.
type ProductRef struct {
	raw      string
	numeric  bool
	resolved *Product
}

// ProductRefByID construye una referencia por identificador crudo. raw no se valida aquí.
func ProductRefByID(raw string) ProductRef {
	return ProductRef{raw: raw}
}

// ProductRefByNumber referencia que llegó como número JSON (p. ej. 3 o 3.0).
func ProductRefByNumber(raw string) ProductRef {
	return ProductRef{raw: raw, numeric: true}
}

// ResolvedProductRef construye una referencia a un producto ya cargado.
func ResolvedProductRef(p *Product) ProductRef {
	return ProductRef{resolved: p}
}

// Resolved devuelve el producto si la referencia ya está resuelta.
func (r ProductRef) Resolved() (*Product, bool) {
	return r.resolved, r.resolved != nil
}

// Numeric indica si el identificador llegó como número JSON.
func (r ProductRef) Numeric() bool {
	return r.numeric
}

// Raw devuelve el identificador tal como llegó (vacío en referencias resueltas).
func (r ProductRef) Raw() string {
	return r.raw
}

// PositionInput posición solicitada en una escritura de Stock.
// Quantity y Price ya traen los valores por defecto (0) aplicados.
type PositionInput struct {
	Product  ProductRef
	Quantity int
	Price    decimal.Decimal
}
