package repository

import (
	"context"

	"github.com/jhoicas/logistic-api/internal/domain/entity"
)

// Campos de ordenamiento aceptados para stocks. El prefijo "-" invierte el orden.
const (
	StockOrderID      = "id"
	StockOrderAddress = "address"
)

// StockFilter criterios de listado de stocks.
type StockFilter struct {
	// ProductID restringe a stocks con una posición de ese producto.
	ProductID *int64
	// Cada término de Terms debe aparecer en address o en el title de algún producto vinculado.
	Terms    []string
	Ordering string
	Limit    int
	Offset   int
}

// StockRepository define el puerto de persistencia para Stock (DIP).
// GetByID devuelve (nil, nil) si no existe.
type StockRepository interface {
	Create(ctx context.Context, stock *entity.Stock) error
	GetByID(ctx context.Context, id int64) (*entity.Stock, error)
	Update(ctx context.Context, stock *entity.Stock) error
	List(ctx context.Context, filter StockFilter) ([]*entity.Stock, int, error)
	Delete(ctx context.Context, id int64) error
}
