package inventory

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/logistic-api/internal/domain"
	"github.com/jhoicas/logistic-api/internal/domain/entity"
	"github.com/jhoicas/logistic-api/internal/domain/repository"
)

// ResolveProduct devuelve el producto referenciado. Una referencia ya resuelta se devuelve tal cual;
// un id se busca en products. Si el id no es entero o no existe devuelve *domain.InvalidProductError.
func ResolveProduct(ctx context.Context, products repository.ProductRepository, ref entity.ProductRef) (*entity.Product, error) {
	if p, ok := ref.Resolved(); ok {
		return p, nil
	}
	id, ok := parseID(ref)
	if !ok {
		return nil, &domain.InvalidProductError{Value: ref.Raw()}
	}
	p, err := products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.InvalidProductError{Value: ref.Raw()}
	}
	return p, nil
}

// parseID acepta enteros positivos. Un número JSON con parte fraccionaria nula (3.0, 3e0)
// vale como entero; 3.5 o el texto "3.0" no.
func parseID(ref entity.ProductRef) (int64, bool) {
	raw := strings.TrimSpace(ref.Raw())
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil && ref.Numeric() {
		d, derr := decimal.NewFromString(raw)
		if derr != nil || !d.IsInteger() || !d.Equal(decimal.NewFromInt(d.IntPart())) {
			return 0, false
		}
		id, err = d.IntPart(), nil
	}
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
