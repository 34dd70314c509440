package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/logistic-api/internal/domain"
	"github.com/jhoicas/logistic-api/internal/domain/entity"
	"github.com/jhoicas/logistic-api/internal/domain/repository"
)

var _ repository.StockPositionRepository = (*StockPositionRepo)(nil)

// StockPositionRepo StockPositionRepository en memoria; respeta la unicidad (stock, producto).
type StockPositionRepo struct {
	access
}

// NewStockPositionRepository construye el repositorio fuera de transacción.
func NewStockPositionRepository(store *Store) *StockPositionRepo {
	return &StockPositionRepo{access{store: store}}
}

// CreateBatch inserta todas las posiciones; falla completo si alguna viola la unicidad o las FKs.
func (r *StockPositionRepo) CreateBatch(_ context.Context, positions []*entity.StockPosition) error {
	return r.do(func(st *state) error {
		seen := map[[2]int64]bool{}
		for _, p := range positions {
			key := [2]int64{p.StockID, p.ProductID}
			if seen[key] || findPosition(st, p.StockID, p.ProductID) != nil {
				return fmt.Errorf("posición duplicada (stock %d, producto %d)", p.StockID, p.ProductID)
			}
			if err := checkRefs(st, p); err != nil {
				return err
			}
			seen[key] = true
		}
		for _, p := range positions {
			st.positionSeq++
			p.ID = st.positionSeq
			st.positions[p.ID] = withoutProduct(p)
		}
		return nil
	})
}

// Upsert inserta o sobreescribe quantity/price de la posición (stock, producto).
func (r *StockPositionRepo) Upsert(_ context.Context, position *entity.StockPosition) (bool, error) {
	inserted := false
	err := r.do(func(st *state) error {
		if err := checkRefs(st, position); err != nil {
			return err
		}
		if existing := findPosition(st, position.StockID, position.ProductID); existing != nil {
			existing.Quantity = position.Quantity
			existing.Price = position.Price
			st.positions[existing.ID] = *existing
			position.ID = existing.ID
			return nil
		}
		st.positionSeq++
		position.ID = st.positionSeq
		st.positions[position.ID] = withoutProduct(position)
		inserted = true
		return nil
	})
	return inserted, err
}

// DeleteExcept borra las posiciones del stock cuyo producto no está en keep.
func (r *StockPositionRepo) DeleteExcept(_ context.Context, stockID int64, keep []int64) (int64, error) {
	var deleted int64
	err := r.do(func(st *state) error {
		kept := make(map[int64]bool, len(keep))
		for _, id := range keep {
			kept[id] = true
		}
		for id, pos := range st.positions {
			if pos.StockID == stockID && !kept[pos.ProductID] {
				delete(st.positions, id)
				deleted++
			}
		}
		return nil
	})
	return deleted, err
}

// ListByStocks devuelve las posiciones con su Product, en orden de inserción.
func (r *StockPositionRepo) ListByStocks(_ context.Context, stockIDs []int64, productID *int64) ([]*entity.StockPosition, error) {
	var out []*entity.StockPosition
	err := r.do(func(st *state) error {
		wanted := make(map[int64]bool, len(stockIDs))
		for _, id := range stockIDs {
			wanted[id] = true
		}
		for _, pos := range st.positions {
			if !wanted[pos.StockID] || (productID != nil && pos.ProductID != *productID) {
				continue
			}
			if p, ok := st.products[pos.ProductID]; ok {
				pos.Product = &p
			}
			out = append(out, &pos)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return nil
	})
	return out, err
}

func findPosition(st *state, stockID, productID int64) *entity.StockPosition {
	for _, pos := range st.positions {
		if pos.StockID == stockID && pos.ProductID == productID {
			return &pos
		}
	}
	return nil
}

func checkRefs(st *state, p *entity.StockPosition) error {
	if _, ok := st.stocks[p.StockID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := st.products[p.ProductID]; !ok {
		return domain.ErrNotFound
	}
	return nil
}

func withoutProduct(p *entity.StockPosition) entity.StockPosition {
	c := *p
	c.Product = nil
	return c
}
