package inventory

import (
	"github.com/jhoicas/logistic-api/internal/application/dto"
	"github.com/jhoicas/logistic-api/internal/domain/entity"
)

// RenderStocks arma la representación de cada stock a partir de sus posiciones.
// filterProductID, si no es nil, restringe a la vez "positions" y "products" al mismo producto;
// nil devuelve el conjunto completo. products son los productos distintos de las posiciones,
// en orden de primera aparición.
func RenderStocks(stocks []*entity.Stock, positions []*entity.StockPosition, filterProductID *int64) []dto.StockResponse {
	byStock := make(map[int64][]*entity.StockPosition, len(stocks))
	for _, p := range positions {
		if filterProductID != nil && p.ProductID != *filterProductID {
			continue
		}
		byStock[p.StockID] = append(byStock[p.StockID], p)
	}

	out := make([]dto.StockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, renderStock(s, byStock[s.ID]))
	}
	return out
}

func renderStock(s *entity.Stock, positions []*entity.StockPosition) dto.StockResponse {
	resp := dto.StockResponse{
		ID:        s.ID,
		Address:   s.Address,
		Positions: make([]dto.PositionResponse, 0, len(positions)),
		Products:  make([]dto.ProductResponse, 0, len(positions)),
	}
	seen := make(map[int64]bool, len(positions))
	for _, p := range positions {
		resp.Positions = append(resp.Positions, dto.PositionResponse{
			Product:  p.ProductID,
			Quantity: p.Quantity,
			Price:    p.Price.StringFixed(2),
		})
		if p.Product == nil || seen[p.ProductID] {
			continue
		}
		seen[p.ProductID] = true
		resp.Products = append(resp.Products, dto.ProductResponse{
			ID:          p.Product.ID,
			Title:       p.Product.Title,
			Description: p.Product.Description,
		})
	}
	return resp
}
