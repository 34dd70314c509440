package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/logistic-api/internal/application/dto"
	"github.com/jhoicas/logistic-api/internal/application/usecase"
	"github.com/jhoicas/logistic-api/internal/domain"
	"github.com/jhoicas/logistic-api/internal/domain/entity"
	"github.com/jhoicas/logistic-api/internal/infrastructure/memory"
)

func strPtr(s string) *string { return &s }

func TestProductUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()))

	created, err := uc.Create(ctx, dto.CreateProductRequest{Title: "Café", Description: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "", created.Description)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Description: strPtr("tostado")})
	require.NoError(t, err)
	assert.Equal(t, "Café", updated.Title)
	assert.Equal(t, "tostado", updated.Description)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()))

	_, err := uc.Create(ctx, dto.CreateProductRequest{Title: "  ", Description: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := uc.Create(ctx, dto.CreateProductRequest{Title: "x", Description: strPtr("y")})
	require.NoError(t, err)
	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{Title: strPtr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(ctx, 99, dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_ListBusquedaYPaginacion(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()))
	for _, title := range []string{"Томаты красные", "Огурцы", "Томаты жёлтые"} {
		_, err := uc.Create(ctx, dto.CreateProductRequest{Title: title, Description: strPtr("овощи")})
		require.NoError(t, err)
	}

	list, err := uc.List(ctx, dto.ProductListRequest{Search: "томаты, жёлтые"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Томаты жёлтые", list.Items[0].Title)

	list, err = uc.List(ctx, dto.ProductListRequest{Page: dto.PageRequest{Limit: 2, Offset: 1}})
	require.NoError(t, err)
	assert.Equal(t, 3, list.Page.Total)
	require.Len(t, list.Items, 2)
	assert.Equal(t, int64(2), list.Items[0].ID)

	list, err = uc.List(ctx, dto.ProductListRequest{Page: dto.PageRequest{Offset: 10}})
	require.NoError(t, err)
	assert.NotNil(t, list.Items)
	assert.Empty(t, list.Items)
}

func TestProductUseCase_DeleteReferenciado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(memory.NewProductRepository(store))

	p, err := uc.Create(ctx, dto.CreateProductRequest{Title: "x", Description: strPtr("y")})
	require.NoError(t, err)
	stock := &entity.Stock{Address: "A"}
	require.NoError(t, memory.NewStockRepository(store).Create(ctx, stock))
	_, err = memory.NewStockPositionRepository(store).Upsert(ctx, &entity.StockPosition{StockID: stock.ID, ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, p.ID), domain.ErrConflict)
}

func TestToProductResponse_Nil(t *testing.T) {
	assert.Nil(t, usecase.ToProductResponse(nil))
}
