package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Rangos admitidos por las columnas de stock_positions: quantity INTEGER, price NUMERIC(12,2).
const MaxPositionQuantity = math.MaxInt32

// MaxPositionPrice cota superior exclusiva del precio (ya redondeado a 2 decimales).
var MaxPositionPrice = decimal.New(1, 10)

// Stock representa un almacén (dirección) que contiene posiciones de inventario.
// Es dueño exclusivo de sus StockPosition: al borrarlo se borran sus posiciones.
type Stock struct {
	ID        int64
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockPosition cantidad y precio de un producto en un stock.
// Como máximo existe una posición por par (StockID, ProductID).
type StockPosition struct {
	ID        int64
	StockID   int64
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
	// Product se carga en lecturas con join; nil en escrituras.
	Product *Product
}
