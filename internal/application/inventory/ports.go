package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/logistic-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback: ninguna escritura parcial queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		positionRepo repository.StockPositionRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// WriteMetrics registra duración de escrituras de stock y posiciones afectadas.
type WriteMetrics interface {
	ObserveWrite(op string, duration time.Duration, err error)
	AddPositions(op string, created, updated, deleted int)
}
