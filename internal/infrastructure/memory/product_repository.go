package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/logistic-api/internal/application/search"
	"github.com/jhoicas/logistic-api/internal/domain"
	"github.com/jhoicas/logistic-api/internal/domain/entity"
	"github.com/jhoicas/logistic-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo ProductRepository en memoria.
type ProductRepo struct {
	access
}

// NewProductRepository construye el repositorio fuera de transacción.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{access{store: store}}
}

// Create asigna ID y guarda el producto.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.do(func(st *state) error {
		st.productSeq++
		product.ID = st.productSeq
		st.products[product.ID] = *product
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// Update sobreescribe title y description.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.do(func(st *state) error {
		if _, ok := st.products[product.ID]; !ok {
			return domain.ErrNotFound
		}
		st.products[product.ID] = *product
		return nil
	})
}

// List filtra por términos en title/description y pagina ordenando por id.
func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, int, error) {
	var (
		list  []*entity.Product
		total int
	)
	err := r.do(func(st *state) error {
		all := make([]*entity.Product, 0, len(st.products))
		for _, p := range st.products {
			if !search.Matches(filter.Terms, p.Title, p.Description) {
				continue
			}
			all = append(all, &p)
		}
		sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
		total = len(all)
		list = paginate(all, filter.Limit, filter.Offset)
		return nil
	})
	return list, total, err
}

// Delete elimina el producto; ErrConflict si hay posiciones que lo referencian.
func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	return r.do(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		for _, pos := range st.positions {
			if pos.ProductID == id {
				return domain.ErrConflict
			}
		}
		delete(st.products, id)
		return nil
	})
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
