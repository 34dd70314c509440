package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/logistic-api/internal/application/search"
	"github.com/jhoicas/logistic-api/internal/domain"
	"github.com/jhoicas/logistic-api/internal/domain/entity"
	"github.com/jhoicas/logistic-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo StockRepository en memoria.
type StockRepo struct {
	access
}

// NewStockRepository construye el repositorio fuera de transacción.
func NewStockRepository(store *Store) *StockRepo {
	return &StockRepo{access{store: store}}
}

// Create asigna ID y guarda el stock.
func (r *StockRepo) Create(_ context.Context, stock *entity.Stock) error {
	return r.do(func(st *state) error {
		st.stockSeq++
		stock.ID = st.stockSeq
		st.stocks[stock.ID] = *stock
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *StockRepo) GetByID(_ context.Context, id int64) (*entity.Stock, error) {
	var out *entity.Stock
	err := r.do(func(st *state) error {
		if s, ok := st.stocks[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

// Update sobreescribe los campos simples del stock.
func (r *StockRepo) Update(_ context.Context, stock *entity.Stock) error {
	return r.do(func(st *state) error {
		if _, ok := st.stocks[stock.ID]; !ok {
			return domain.ErrNotFound
		}
		st.stocks[stock.ID] = *stock
		return nil
	})
}

// List aplica filtro por producto, búsqueda, orden y paginación.
func (r *StockRepo) List(_ context.Context, filter repository.StockFilter) ([]*entity.Stock, int, error) {
	var (
		list  []*entity.Stock
		total int
	)
	err := r.do(func(st *state) error {
		titles := map[int64][]string{}
		holds := map[int64]bool{}
		for _, pos := range st.positions {
			if p, ok := st.products[pos.ProductID]; ok {
				titles[pos.StockID] = append(titles[pos.StockID], p.Title)
			}
			if filter.ProductID != nil && pos.ProductID == *filter.ProductID {
				holds[pos.StockID] = true
			}
		}
		all := make([]*entity.Stock, 0, len(st.stocks))
		for _, s := range st.stocks {
			if filter.ProductID != nil && !holds[s.ID] {
				continue
			}
			fields := append([]string{s.Address}, titles[s.ID]...)
			if !search.Matches(filter.Terms, fields...) {
				continue
			}
			all = append(all, &s)
		}
		sortStocks(all, filter.Ordering)
		total = len(all)
		list = paginate(all, filter.Limit, filter.Offset)
		return nil
	})
	return list, total, err
}

// Delete elimina el stock y sus posiciones.
func (r *StockRepo) Delete(_ context.Context, id int64) error {
	return r.do(func(st *state) error {
		if _, ok := st.stocks[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.stocks, id)
		for pid, pos := range st.positions {
			if pos.StockID == id {
				delete(st.positions, pid)
			}
		}
		return nil
	})
}

func sortStocks(list []*entity.Stock, ordering string) {
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")
	less := func(a, b *entity.Stock) bool {
		if field == repository.StockOrderAddress && a.Address != b.Address {
			return a.Address < b.Address
		}
		return a.ID < b.ID
	}
	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return less(list[j], list[i])
		}
		return less(list[i], list[j])
	})
}
