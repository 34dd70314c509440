package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/logistic-api/internal/domain"
	"github.com/jhoicas/logistic-api/internal/domain/entity"
	"github.com/jhoicas/logistic-api/internal/domain/repository"
)

var _ repository.StockPositionRepository = (*StockPositionRepo)(nil)

// StockPositionRepo implementación del puerto StockPositionRepository sobre PostgreSQL.
// La tabla tiene UNIQUE (stock_id, product_id).
type StockPositionRepo struct {
	q Querier
}

// NewStockPositionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockPositionRepository(q Querier) *StockPositionRepo {
	return &StockPositionRepo{q: q}
}

// CreateBatch inserta las posiciones de un stock nuevo con COPY. Los IDs quedan asignados por la BD
// y no se recuperan: las lecturas posteriores los cargan.
func (r *StockPositionRepo) CreateBatch(ctx context.Context, positions []*entity.StockPosition) error {
	if len(positions) == 0 {
		return nil
	}
	_, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"stock_positions"},
		[]string{"stock_id", "product_id", "quantity", "price"},
		pgx.CopyFromSlice(len(positions), func(i int) ([]any, error) {
			p := positions[i]
			return []any{p.StockID, p.ProductID, p.Quantity, p.Price}, nil
		}),
	)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		case isOutOfRange(err):
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("copy stock positions: %w", err)
	}
	return nil
}

// Upsert inserta la posición o, si ya existe para (stock, producto), sobreescribe quantity y price.
// inserted indica si la fila es nueva (xmax = 0 en la fila devuelta).
func (r *StockPositionRepo) Upsert(ctx context.Context, position *entity.StockPosition) (bool, error) {
	query := `
		INSERT INTO stock_positions (stock_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (stock_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, price = EXCLUDED.price
		RETURNING id, (xmax = 0) AS inserted`
	var inserted bool
	err := r.q.QueryRow(ctx, query, position.StockID, position.ProductID, position.Quantity, position.Price).
		Scan(&position.ID, &inserted)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return false, domain.ErrNotFound
		case isOutOfRange(err):
			return false, domain.ErrInvalidInput
		}
		return false, fmt.Errorf("upsert stock position: %w", err)
	}
	return inserted, nil
}

// DeleteExcept borra las posiciones del stock cuyo producto no está en keep. keep vacío borra todas.
func (r *StockPositionRepo) DeleteExcept(ctx context.Context, stockID int64, keep []int64) (int64, error) {
	if keep == nil {
		keep = []int64{}
	}
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM stock_positions WHERE stock_id = $1 AND product_id <> ALL($2::bigint[])`,
		stockID, keep,
	)
	if err != nil {
		return 0, fmt.Errorf("delete stock positions: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// ListByStocks devuelve las posiciones de los stocks indicados con su producto, en orden de inserción.
// productID, si no es nil, restringe al producto.
func (r *StockPositionRepo) ListByStocks(ctx context.Context, stockIDs []int64, productID *int64) ([]*entity.StockPosition, error) {
	if len(stockIDs) == 0 {
		return []*entity.StockPosition{}, nil
	}
	query := `
		SELECT sp.id, sp.stock_id, sp.product_id, sp.quantity, sp.price,
		       p.id, p.title, p.description, p.created_at, p.updated_at
		FROM stock_positions sp
		JOIN products p ON p.id = sp.product_id
		WHERE sp.stock_id = ANY($1::bigint[])
		  AND ($2::bigint IS NULL OR sp.product_id = $2)
		ORDER BY sp.id`
	rows, err := r.q.Query(ctx, query, stockIDs, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock positions: %w", err)
	}
	defer rows.Close()

	list := []*entity.StockPosition{}
	for rows.Next() {
		var (
			sp entity.StockPosition
			p  entity.Product
		)
		if err := rows.Scan(
			&sp.ID, &sp.StockID, &sp.ProductID, &sp.Quantity, &sp.Price,
			&p.ID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock position: %w", err)
		}
		sp.Product = &p
		list = append(list, &sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stock positions: %w", err)
	}
	return list, nil
}
