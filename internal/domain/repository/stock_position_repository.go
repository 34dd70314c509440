package repository

import (
	"context"

	"github.com/jhoicas/logistic-api/internal/domain/entity"
)

// StockPositionRepository define el puerto para las posiciones de un stock.
// Usado dentro de transacciones para garantizar consistencia.
type StockPositionRepository interface {
	// CreateBatch inserta todas las posiciones en bloque.
	CreateBatch(ctx context.Context, positions []*entity.StockPosition) error
	// Upsert inserta o sobreescribe quantity/price por (stock, producto). inserted=true si la fila es nueva.
	Upsert(ctx context.Context, position *entity.StockPosition) (inserted bool, err error)
	// DeleteExcept borra las posiciones del stock cuyo producto no está en keep.
	DeleteExcept(ctx context.Context, stockID int64, keep []int64) (int64, error)
	// ListByStocks devuelve las posiciones (con Product cargado) de los stocks dados,
	// opcionalmente solo las del producto productID, en orden de inserción.
	ListByStocks(ctx context.Context, stockIDs []int64, productID *int64) ([]*entity.StockPosition, error)
}
