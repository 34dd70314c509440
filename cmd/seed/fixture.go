package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/logistic-api/internal/application/dto"
	"github.com/jhoicas/logistic-api/internal/application/inventory"
	"github.com/jhoicas/logistic-api/internal/application/usecase"
	"github.com/jhoicas/logistic-api/internal/domain/entity"
)

// fixture productos con una clave local y stocks cuyas posiciones referencian esa clave.
type fixture struct {
	Products []struct {
		Key         string `json:"key"`
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"products"`
	Stocks []struct {
		Address   string `json:"address"`
		Positions []struct {
			Product  string          `json:"product"`
			Quantity int             `json:"quantity"`
			Price    decimal.Decimal `json:"price"`
		} `json:"positions"`
	} `json:"stocks"`
}

type result struct {
	Products int
	Stocks   int
}

func readFixture(r io.Reader) (*fixture, error) {
	var fx fixture
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &fx, nil
}

// load crea los productos y luego los stocks. Las posiciones llevan el producto ya resuelto,
// así que no se vuelve a consultar por id.
func load(ctx context.Context, fx *fixture, products *usecase.ProductUseCase, stocks *inventory.StockUseCase) (result, error) {
	var res result
	byKey := make(map[string]*entity.Product, len(fx.Products))
	for _, p := range fx.Products {
		if _, dup := byKey[p.Key]; dup {
			return res, fmt.Errorf("clave de producto repetida: %q", p.Key)
		}
		description := p.Description
		out, err := products.Create(ctx, dto.CreateProductRequest{Title: p.Title, Description: &description})
		if err != nil {
			return res, fmt.Errorf("producto %q: %w", p.Key, err)
		}
		byKey[p.Key] = &entity.Product{ID: out.ID, Title: out.Title, Description: out.Description}
		res.Products++
	}

	for i, s := range fx.Stocks {
		in := inventory.CreateStockInput{Address: s.Address}
		for _, pos := range s.Positions {
			p, ok := byKey[pos.Product]
			if !ok {
				return res, fmt.Errorf("stock %d: producto desconocido %q", i, pos.Product)
			}
			in.Positions = append(in.Positions, entity.PositionInput{
				Product:  entity.ResolvedProductRef(p),
				Quantity: pos.Quantity,
				Price:    pos.Price,
			})
		}
		if _, err := stocks.Create(ctx, in); err != nil {
			return res, fmt.Errorf("stock %d: %w", i, err)
		}
		res.Stocks++
	}
	return res, nil
}
