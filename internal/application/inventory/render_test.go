package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/logistic-api/internal/application/inventory"
	"github.com/jhoicas/logistic-api/internal/domain/entity"
)

func TestRenderStocks(t *testing.T) {
	a := &entity.Product{ID: 1, Title: "A"}
	b := &entity.Product{ID: 2, Title: "B"}
	stocks := []*entity.Stock{{ID: 10, Address: "X"}, {ID: 11, Address: "Y"}}
	positions := []*entity.StockPosition{
		{ID: 1, StockID: 10, ProductID: 2, Quantity: 1, Price: decimal.RequireFromString("3.1"), Product: b},
		{ID: 2, StockID: 10, ProductID: 1, Quantity: 2, Price: decimal.Zero, Product: a},
	}

	out := inventory.RenderStocks(stocks, positions, nil)
	require.Len(t, out, 2)
	require.Len(t, out[0].Positions, 2)
	assert.Equal(t, "3.10", out[0].Positions[0].Price)
	assert.Equal(t, "0.00", out[0].Positions[1].Price)
	assert.Equal(t, int64(2), out[0].Products[0].ID)
	assert.Equal(t, int64(1), out[0].Products[1].ID)
	assert.NotNil(t, out[1].Positions)
	assert.Empty(t, out[1].Positions)
	assert.NotNil(t, out[1].Products)

	filter := int64(1)
	out = inventory.RenderStocks(stocks, positions, &filter)
	require.Len(t, out[0].Positions, 1)
	require.Len(t, out[0].Products, 1)
	assert.Equal(t, int64(1), out[0].Positions[0].Product)
	assert.Equal(t, "A", out[0].Products[0].Title)
}
