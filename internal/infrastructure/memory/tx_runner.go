package memory

import (
	"context"

	"github.com/jhoicas/logistic-api/internal/application/inventory"
	"github.com/jhoicas/logistic-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn con el almacén bloqueado; si fn falla restaura el snapshot previo.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run equivalente en memoria de BEGIN / COMMIT / ROLLBACK.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	positionRepo repository.StockPositionRepository,
	productRepo repository.ProductRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshot := r.store.st.clone()
	tx := access{store: r.store, inTx: true}
	if err := fn(&StockRepo{tx}, &StockPositionRepo{tx}, &ProductRepo{tx}); err != nil {
		r.store.st = snapshot
		return err
	}
	return nil
}
