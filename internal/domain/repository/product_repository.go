package repository

import (
	"context"

	"github.com/jhoicas/logistic-api/internal/domain/entity"
)

// ProductFilter criterios de listado de productos.
// Cada término de Terms debe aparecer (sin distinguir mayúsculas) en title o description.
type ProductFilter struct {
	Terms  []string
	Limit  int
	Offset int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	Delete(ctx context.Context, id int64) error
}
