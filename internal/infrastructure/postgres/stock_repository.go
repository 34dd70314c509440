package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/logistic-api/internal/domain"
	"github.com/jhoicas/logistic-api/internal/domain/entity"
	"github.com/jhoicas/logistic-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre PostgreSQL.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Create persiste un nuevo stock y asigna su ID.
func (r *StockRepo) Create(ctx context.Context, stock *entity.Stock) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO stocks (address, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id`,
		stock.Address, stock.CreatedAt, stock.UpdatedAt,
	).Scan(&stock.ID)
	if err != nil {
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// GetByID obtiene un stock por ID. (nil, nil) si no existe.
func (r *StockRepo) GetByID(ctx context.Context, id int64) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(ctx,
		`SELECT id, address, created_at, updated_at FROM stocks WHERE id = $1`, id,
	).Scan(&s.ID, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Update actualiza la dirección del stock.
func (r *StockRepo) Update(ctx context.Context, stock *entity.Stock) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stocks SET address = $2, updated_at = $3 WHERE id = $1`,
		stock.ID, stock.Address, stock.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista stocks con filtro por producto contenido, búsqueda en address y títulos de sus productos,
// orden (id, address, con "-" descendente) y paginación.
func (r *StockRepo) List(ctx context.Context, filter repository.StockFilter) ([]*entity.Stock, int, error) {
	where, args := stockWhere(filter)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stocks s`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stocks: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT s.id, s.address, s.created_at, s.updated_at
		FROM stocks s%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`, where, stockOrderBy(filter.Ordering), len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stocks: %w", err)
	}
	defer rows.Close()

	list := []*entity.Stock{}
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ID, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list stocks: %w", err)
	}
	return list, total, nil
}

// Delete elimina el stock; sus posiciones se borran por ON DELETE CASCADE.
func (r *StockRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stocks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func stockWhere(filter repository.StockFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.ProductID != nil {
		args = append(args, *filter.ProductID)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM stock_positions sp WHERE sp.stock_id = s.id AND sp.product_id = $%d)", len(args)))
	}
	for _, t := range filter.Terms {
		args = append(args, likePattern(t))
		conds = append(conds, fmt.Sprintf(`(s.address ILIKE $%[1]d OR EXISTS (
			SELECT 1 FROM stock_positions sp JOIN products p ON p.id = sp.product_id
			WHERE sp.stock_id = s.id AND p.title ILIKE $%[1]d))`, len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func stockOrderBy(ordering string) string {
	dir := "ASC"
	if strings.HasPrefix(ordering, "-") {
		dir = "DESC"
	}
	if strings.TrimPrefix(ordering, "-") == repository.StockOrderAddress {
		return "s.address " + dir + ", s.id " + dir
	}
	return "s.id " + dir
}
