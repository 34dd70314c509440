package dto

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/logistic-api/internal/domain/entity"
)

// PositionRequest posición en el cuerpo de creación/actualización de un stock.
// Product acepta un id (número o texto) o un objeto producto con "id".
type PositionRequest struct {
	Product  json.RawMessage  `json:"product"`
	Quantity *int             `json:"quantity" validate:"omitempty,min=0,max=2147483647"`
	Price    *decimal.Decimal `json:"price" validate:"omitempty,min=0,lt=10000000000"`
}

// CreateStockRequest entrada para crear un stock con sus posiciones.
type CreateStockRequest struct {
	Address   string            `json:"address" validate:"max=200"`
	Positions []PositionRequest `json:"positions" validate:"dive"`
}

// UpdateStockRequest entrada para actualizar un stock.
// Positions nil (clave ausente) deja las posiciones intactas; una lista vacía las borra todas.
type UpdateStockRequest struct {
	Address   *string            `json:"address" validate:"omitempty,max=200"`
	Positions *[]PositionRequest `json:"positions" validate:"omitempty,dive"`
}

// ReplaceStockRequest entrada de PUT: address obligatorio; positions con la misma semántica que en PATCH.
type ReplaceStockRequest struct {
	Address   *string            `json:"address" validate:"required,max=200"`
	Positions *[]PositionRequest `json:"positions" validate:"omitempty,dive"`
}

// StockListRequest filtros del listado de stocks.
type StockListRequest struct {
	ProductID *int64
	Search    string
	Ordering  string
	Page      PageRequest
}

// PositionResponse posición renderizada; price con dos decimales.
type PositionResponse struct {
	Product  int64  `json:"product"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// StockResponse salida de un stock con sus posiciones y productos (filtrados de forma consistente).
type StockResponse struct {
	ID        int64              `json:"id"`
	Address   string             `json:"address"`
	Positions []PositionResponse `json:"positions"`
	Products  []ProductResponse  `json:"products"`
}

// StockListResponse lista paginada de stocks.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ToPositionInputs aplica los valores por defecto (0) y convierte a entradas de dominio.
func ToPositionInputs(in []PositionRequest) []entity.PositionInput {
	out := make([]entity.PositionInput, 0, len(in))
	for _, p := range in {
		pos := entity.PositionInput{
			Product: ParseProductRef(p.Product),
			Price:   decimal.Zero,
		}
		if p.Quantity != nil {
			pos.Quantity = *p.Quantity
		}
		if p.Price != nil {
			pos.Price = *p.Price
		}
		out = append(out, pos)
	}
	return out
}

// ParseProductRef interpreta el valor crudo de "product". No valida: el valor
// se resuelve (o se rechaza) en la capa de aplicación.
func ParseProductRef(raw json.RawMessage) entity.ProductRef {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return entity.ProductRefByID("null")
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return entity.ProductRefByID(s)
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return entity.ProductRefByNumber(string(raw))
	case '{':
		var obj struct {
			ID json.RawMessage `json:"id"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil && len(obj.ID) > 0 && obj.ID[0] != '{' {
			return ParseProductRef(obj.ID)
		}
	}
	return entity.ProductRefByID(string(raw))
}
